package cache

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_cache.go -package=mocks documind/internal/cache AnalysisCache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"documind/internal/contextutil"
	"documind/internal/storage"
)

// AnalysisCache stores computed analysis results keyed by the canonical
// document-id set plus analysis type. Entries never expire on their own;
// they are overwritten by forced regeneration or removed by explicit
// invalidation when a participating document is deleted or updated.
type AnalysisCache interface {
	// Get returns the cached payload for the given documents and type.
	// The second return reports whether an entry was present; a miss is
	// not an error.
	Get(ctx context.Context, docIDs []string, analysisType string) (string, bool, error)
	// Set stores the payload, overwriting any previous entry.
	Set(ctx context.Context, docIDs []string, analysisType, payload string) error
	// Invalidate removes every entry whose document set intersects the
	// given ids. The document delete and update paths must call this;
	// skipping it leaves stale analyses keyed to dead documents.
	Invalidate(ctx context.Context, docIDs []string) error
}

// analysisCache implements AnalysisCache on top of the persisted cache store.
type analysisCache struct {
	store storage.CacheStore
}

// NewAnalysisCache creates a new AnalysisCache.
func NewAnalysisCache(store storage.CacheStore) AnalysisCache {
	return &analysisCache{store: store}
}

// Get returns the cached payload for the given documents and type.
func (c *analysisCache) Get(ctx context.Context, docIDs []string, analysisType string) (string, bool, error) {
	rec, err := c.store.Get(ctx, Key(docIDs, analysisType))
	if errors.Is(err, storage.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read analysis cache: %w", err)
	}
	return rec.Payload, true, nil
}

// Set stores the payload, overwriting any previous entry.
func (c *analysisCache) Set(ctx context.Context, docIDs []string, analysisType, payload string) error {
	rec := &storage.CacheRecord{
		CacheKey:     Key(docIDs, analysisType),
		DocIDs:       SortedIDs(docIDs),
		AnalysisType: analysisType,
		Payload:      payload,
		CreatedAt:    time.Now(),
	}
	if err := c.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("failed to write analysis cache: %w", err)
	}
	return nil
}

// Invalidate removes every entry whose document set intersects the given ids.
func (c *analysisCache) Invalidate(ctx context.Context, docIDs []string) error {
	logger := contextutil.LoggerFromContext(ctx)

	ids := SortedIDs(docIDs)
	if len(ids) == 0 {
		return nil
	}
	if err := c.store.DeleteIntersecting(ctx, ids); err != nil {
		return fmt.Errorf("failed to invalidate analysis cache: %w", err)
	}
	logger.InfoContext(ctx, "invalidated analysis cache", "doc_ids", ids)
	return nil
}
