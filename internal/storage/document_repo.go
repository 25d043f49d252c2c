package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks documind/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DocumentStore defines the interface for document storage operations.
// Every method is scoped by the owning user id; a document that exists
// but belongs to another user behaves exactly like a missing one.
type DocumentStore interface {
	// Insert inserts a new document row. The record's ID must be set.
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID returns a user's document by id. Returns ErrNotFound if it
	// does not exist or belongs to a different user.
	GetByID(ctx context.Context, userID, id string) (*DocumentRecord, error)
	// GetByUserAndHash returns the user's document with the given content
	// hash, used for duplicate-upload detection. Returns ErrNotFound on miss.
	GetByUserAndHash(ctx context.Context, userID, hash string) (*DocumentRecord, error)
	// ListByUser returns all of a user's documents, newest first.
	ListByUser(ctx context.Context, userID string) ([]*DocumentRecord, error)
	// CountCreatedSince counts the user's documents created at or after t.
	CountCreatedSince(ctx context.Context, userID string, t time.Time) (int, error)
	// UpdateSummary stores a generated summary (JSON) on the document and
	// bumps updated_at. Returns ErrNotFound if the document is not the user's.
	UpdateSummary(ctx context.Context, userID, id, summary string) error
	// Delete removes a user's document; chunks cascade. Returns ErrNotFound
	// if the document is not the user's.
	Delete(ctx context.Context, userID, id string) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = "id, user_id, file_name, file_type, file_size, file_hash, COALESCE(summary, ''), COALESCE(metadata, ''), created_at, updated_at"

// Insert inserts a new document row.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, user_id, file_name, file_type, file_size, file_hash, summary, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)`,
		doc.ID, doc.UserID, doc.FileName, doc.FileType, doc.FileSize, doc.FileHash,
		doc.Summary, doc.Metadata, doc.CreatedAt.UTC(), doc.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID returns a user's document by id.
func (r *DocumentRepo) GetByID(ctx context.Context, userID, id string) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ? AND user_id = ?",
		id, userID,
	)
	return scanDocument(row)
}

// GetByUserAndHash returns the user's document with the given content hash.
func (r *DocumentRepo) GetByUserAndHash(ctx context.Context, userID, hash string) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE user_id = ? AND file_hash = ?",
		userID, hash,
	)
	return scanDocument(row)
}

// ListByUser returns all of a user's documents, newest first.
func (r *DocumentRepo) ListByUser(ctx context.Context, userID string) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE user_id = ? ORDER BY created_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

// CountCreatedSince counts the user's documents created at or after t.
func (r *DocumentRepo) CountCreatedSince(ctx context.Context, userID string, t time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE user_id = ? AND created_at >= ?",
		userID, t.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// UpdateSummary stores a generated summary on the document.
func (r *DocumentRepo) UpdateSummary(ctx context.Context, userID, id, summary string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET summary = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		summary, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user's document; chunks cascade via foreign key.
func (r *DocumentRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*DocumentRecord, error) {
	var doc DocumentRecord
	err := row.Scan(
		&doc.ID, &doc.UserID, &doc.FileName, &doc.FileType, &doc.FileSize,
		&doc.FileHash, &doc.Summary, &doc.Metadata, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	return &doc, nil
}
