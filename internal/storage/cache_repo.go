package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_cache_store.go -package=mocks documind/internal/storage CacheStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CacheStore defines the interface for persisted analysis results.
// Entries have no expiry; they live until overwritten or invalidated.
type CacheStore interface {
	// Get returns the entry for the given key. Returns ErrNotFound on miss.
	Get(ctx context.Context, cacheKey string) (*CacheRecord, error)
	// Put inserts or overwrites the entry for the given key.
	Put(ctx context.Context, rec *CacheRecord) error
	// DeleteIntersecting removes every entry whose document-id set contains
	// any of the given ids.
	DeleteIntersecting(ctx context.Context, docIDs []string) error
}

// CacheRepo provides methods for analysis-cache operations.
// It implements the CacheStore interface.
type CacheRepo struct {
	db *sql.DB
}

// NewCacheRepo creates a new CacheRepo.
func NewCacheRepo(db *sql.DB) *CacheRepo {
	return &CacheRepo{db: db}
}

// Get returns the entry for the given key.
func (r *CacheRepo) Get(ctx context.Context, cacheKey string) (*CacheRecord, error) {
	var rec CacheRecord
	var docIDs string
	err := r.db.QueryRowContext(ctx,
		"SELECT cache_key, doc_ids, analysis_type, payload, created_at FROM analysis_cache WHERE cache_key = ?",
		cacheKey,
	).Scan(&rec.CacheKey, &docIDs, &rec.AnalysisType, &rec.Payload, &rec.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entry: %w", err)
	}
	rec.DocIDs = strings.Split(docIDs, ",")
	return &rec, nil
}

// Put inserts or overwrites the entry for the given key.
func (r *CacheRepo) Put(ctx context.Context, rec *CacheRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO analysis_cache (cache_key, doc_ids, analysis_type, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		rec.CacheKey, strings.Join(rec.DocIDs, ","), rec.AnalysisType, rec.Payload, createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

// DeleteIntersecting removes every entry whose document-id set contains
// any of the given ids. The doc_ids column stores a comma-joined sorted
// list, so membership reduces to a delimited substring match.
func (r *CacheRepo) DeleteIntersecting(ctx context.Context, docIDs []string) error {
	for _, id := range docIDs {
		if id == "" {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			"DELETE FROM analysis_cache WHERE ',' || doc_ids || ',' LIKE '%,' || ? || ',%'",
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to invalidate cache entries for document %s: %w", id, err)
		}
	}
	return nil
}
