package retriever

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks documind/internal/retriever Retriever
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks documind/internal/retriever Embedder

import (
	"context"
	"errors"
	"fmt"

	"documind/internal/contextutil"
	"documind/internal/storage"
	"documind/internal/vectorstore"
)

const (
	// MaxTopK caps how many chunks one search may return.
	MaxTopK = 50
	// UnknownDocumentTitle is the last-resort display title when a
	// matched chunk's document metadata carries neither title nor file name.
	UnknownDocumentTitle = "Unknown Document"
)

// SearchOptions tune a similarity search. Out-of-range values are
// clamped, not rejected: TopK into [1,50], MinSimilarity into [0,1].
type SearchOptions struct {
	TopK          int
	MinSimilarity float32
	DocumentIDs   []string
}

// RetrievedChunk is one ranked result with document provenance.
type RetrievedChunk struct {
	ChunkID       string
	DocumentID    string
	DocumentTitle string
	Content       string
	ChunkIndex    int
	Similarity    float32
}

// Embedder maps a batch of strings to fixed-length vectors.
// This interface is defined from the retriever's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Retriever finds semantically relevant chunks for a query.
type Retriever interface {
	// Search embeds the query and runs approximate nearest-neighbor search,
	// returning chunks ordered by descending similarity. Zero matches is a
	// valid empty result, not an error; an embedding failure fails the
	// whole search.
	Search(ctx context.Context, userID, query string, opts SearchOptions) ([]RetrievedChunk, error)
	// DocumentChunks returns a document's own chunks in index order with
	// similarity fixed at 1.0. limit <= 0 returns all chunks. Used where
	// retrieval-by-similarity is not applicable (summaries, insights).
	DocumentChunks(ctx context.Context, userID, documentID string, limit int) ([]RetrievedChunk, error)
}

// retriever implements the Retriever interface.
type retriever struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	documents   storage.DocumentStore
	chunks      storage.ChunkStore
}

// New creates a new Retriever.
func New(
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
) Retriever {
	return &retriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		documents:   documents,
		chunks:      chunks,
	}
}

// Search embeds the query and runs approximate nearest-neighbor search.
func (r *retriever) Search(ctx context.Context, userID, query string, opts SearchOptions) ([]RetrievedChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	opts = clamp(opts)

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := r.vectorStore.Search(ctx, r.collection, vectorstore.Query{
		Vector:         embeddings[0],
		TopK:           opts.TopK,
		ScoreThreshold: opts.MinSimilarity,
		UserID:         userID,
		DocumentIDs:    opts.DocumentIDs,
	})
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed", "error", err)
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	retrieved := make([]RetrievedChunk, 0, len(results))
	for _, result := range results {
		chunk, err := r.chunks.GetByID(ctx, userID, result.PointID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Vector point outlived its row; skip rather than fail the search
				logger.WarnContext(ctx, "matched chunk missing from storage", "chunk_id", result.PointID)
				continue
			}
			return nil, fmt.Errorf("failed to fetch chunk %s: %w", result.PointID, err)
		}

		retrieved = append(retrieved, RetrievedChunk{
			ChunkID:       chunk.ID,
			DocumentID:    chunk.DocumentID,
			DocumentTitle: r.documentTitle(ctx, userID, chunk.DocumentID, result.Meta),
			Content:       chunk.Content,
			ChunkIndex:    chunk.ChunkIndex,
			Similarity:    result.Score,
		})
	}

	logger.InfoContext(ctx, "search completed",
		"top_k", opts.TopK,
		"min_similarity", opts.MinSimilarity,
		"results", len(retrieved),
	)
	return retrieved, nil
}

// DocumentChunks returns a document's own chunks in index order.
func (r *retriever) DocumentChunks(ctx context.Context, userID, documentID string, limit int) ([]RetrievedChunk, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}

	doc, err := r.documents.GetByID(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	records, err := r.chunks.ListByDocument(ctx, userID, documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}

	title := doc.FileName
	if title == "" {
		title = UnknownDocumentTitle
	}

	retrieved := make([]RetrievedChunk, 0, len(records))
	for _, record := range records {
		retrieved = append(retrieved, RetrievedChunk{
			ChunkID:       record.ID,
			DocumentID:    record.DocumentID,
			DocumentTitle: title,
			Content:       record.Content,
			ChunkIndex:    record.ChunkIndex,
			Similarity:    1.0,
		})
	}
	return retrieved, nil
}

// documentTitle resolves a display title: payload title, then file name,
// then the literal unknown-document fallback.
func (r *retriever) documentTitle(ctx context.Context, userID, documentID string, meta map[string]any) string {
	if title, ok := meta["title"].(string); ok && title != "" {
		return title
	}
	if doc, err := r.documents.GetByID(ctx, userID, documentID); err == nil && doc.FileName != "" {
		return doc.FileName
	}
	return UnknownDocumentTitle
}

// clamp forces options into their valid ranges.
func clamp(opts SearchOptions) SearchOptions {
	if opts.TopK < 1 {
		opts.TopK = 1
	}
	if opts.TopK > MaxTopK {
		opts.TopK = MaxTopK
	}
	if opts.MinSimilarity < 0 {
		opts.MinSimilarity = 0
	}
	if opts.MinSimilarity > 1 {
		opts.MinSimilarity = 1
	}
	return opts
}
