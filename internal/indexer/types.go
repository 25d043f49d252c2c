package indexer

// Chunk represents a token-bounded segment of extracted document text.
type Chunk struct {
	// Index is the zero-based position within the document. Indices are
	// contiguous after degenerate pieces are dropped.
	Index int
	// Content is the chunk text; never empty after trimming.
	Content string
	// TokenCount is the approximate token count of Content.
	TokenCount int
}
