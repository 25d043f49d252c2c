package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks documind/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// insertBatchSize is the number of chunk rows written per statement.
// Batches are executed in index order inside one transaction so a
// failure never leaves an out-of-order partial prefix.
const insertBatchSize = 100

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// InsertBatch inserts chunks in index order, in fixed-size batches
	// inside a single transaction. A failure aborts the remaining batches
	// and rolls back the transaction.
	InsertBatch(ctx context.Context, chunks []*ChunkRecord) error
	// ListByDocument returns a user's document chunks ordered by chunk_index.
	// limit <= 0 means all chunks. Returns an empty slice when the document
	// has no chunks; ownership misses surface as no rows.
	ListByDocument(ctx context.Context, userID, documentID string, limit int) ([]*ChunkRecord, error)
	// ListIDsByDocument returns all chunk IDs for a user's document, ordered
	// by chunk_index. Used to collect vector point ids before deletion.
	ListIDsByDocument(ctx context.Context, userID, documentID string) ([]string, error)
	// GetByID gets a user's chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, userID, id string) (*ChunkRecord, error)
	// DeleteByDocument deletes all chunks for a user's document.
	DeleteByDocument(ctx context.Context, userID, documentID string) error
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// InsertBatch inserts chunks in index order in fixed-size batches.
func (r *ChunkRepo) InsertBatch(ctx context.Context, chunks []*ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(chunks); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		var sb strings.Builder
		sb.WriteString("INSERT INTO chunks (id, document_id, chunk_index, content, token_count, created_at) VALUES ")
		args := make([]any, 0, len(batch)*6)
		for i, chunk := range batch {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?, ?, ?)")
			args = append(args, chunk.ID, chunk.DocumentID, chunk.ChunkIndex, chunk.Content, chunk.TokenCount, chunk.CreatedAt.UTC())
		}

		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("failed to insert chunk batch starting at index %d: %w", batch[0].ChunkIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk batches: %w", err)
	}
	return nil
}

// ListByDocument returns a user's document chunks ordered by chunk_index.
func (r *ChunkRepo) ListByDocument(ctx context.Context, userID, documentID string, limit int) ([]*ChunkRecord, error) {
	query := `SELECT c.id, c.document_id, c.chunk_index, c.content, c.token_count, c.created_at
		FROM chunks c JOIN documents d ON d.id = c.document_id
		WHERE c.document_id = ? AND d.user_id = ?
		ORDER BY c.chunk_index`
	args := []any{documentID, userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []*ChunkRecord
	for rows.Next() {
		var chunk ChunkRecord
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &chunk.TokenCount, &chunk.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, &chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return chunks, nil
}

// ListIDsByDocument returns all chunk IDs for a user's document, ordered by chunk_index.
func (r *ChunkRepo) ListIDsByDocument(ctx context.Context, userID, documentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id FROM chunks c JOIN documents d ON d.id = c.document_id
		 WHERE c.document_id = ? AND d.user_id = ? ORDER BY c.chunk_index`,
		documentID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chunk ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// GetByID gets a user's chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, userID, id string) (*ChunkRecord, error) {
	var chunk ChunkRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT c.id, c.document_id, c.chunk_index, c.content, c.token_count, c.created_at
		 FROM chunks c JOIN documents d ON d.id = c.document_id
		 WHERE c.id = ? AND d.user_id = ?`,
		id, userID,
	).Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &chunk.TokenCount, &chunk.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}
	return &chunk, nil
}

// DeleteByDocument deletes all chunks for a user's document.
func (r *ChunkRepo) DeleteByDocument(ctx context.Context, userID, documentID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM chunks WHERE document_id = ?
		 AND document_id IN (SELECT id FROM documents WHERE id = ? AND user_id = ?)`,
		documentID, documentID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete chunks by document: %w", err)
	}
	return nil
}
