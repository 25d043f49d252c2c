package storage

import "time"

// DocumentRecord represents an ingested document in the database.
// Summary and Metadata hold JSON payloads; empty string means unset.
type DocumentRecord struct {
	ID        string // UUID
	UserID    string // Owning user; every query is scoped by this
	FileName  string
	FileType  string // MIME type as received at upload
	FileSize  int64
	FileHash  string // SHA256 hex string of the uploaded bytes
	Summary   string // Cached structured summary (JSON), "" if none
	Metadata  string // Free-form metadata (JSON), "" if none
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChunkRecord represents a token-bounded segment of a document's text.
// Chunks are immutable after creation and are removed only with their
// parent document. The embedding vector itself lives in the vector
// index under the same id.
type ChunkRecord struct {
	ID         string // UUID (same as the vector point ID)
	DocumentID string // Foreign key to documents.id
	ChunkIndex int    // Zero-based, contiguous within a document
	Content    string
	TokenCount int
	CreatedAt  time.Time
}

// CacheRecord represents a persisted analysis result.
type CacheRecord struct {
	CacheKey     string // Canonical key: sorted doc ids + analysis type
	DocIDs       []string
	AnalysisType string
	Payload      string // Structured result (JSON)
	CreatedAt    time.Time
}
