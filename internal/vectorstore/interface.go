package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks documind/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// Query describes an approximate-nearest-neighbor search.
// ScoreThreshold is the similarity floor; results below it are dropped
// by the index, not by the caller. UserID scopes the search to one
// owner's points. DocumentIDs, when non-empty, restricts matches to the
// given documents.
type Query struct {
	Vector         []float32
	TopK           int
	ScoreThreshold float32
	UserID         string
	DocumentIDs    []string
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search for the given query.
	Search(ctx context.Context, collection string, query Query) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}
