package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"documind/internal/contextutil"
	"documind/internal/retriever"
	"documind/internal/storage"
	"documind/internal/vectorstore"
)

// Pipeline persists an extracted document: chunk, embed, insert rows,
// upsert vectors. The steps are linear and abortive; a failure in any
// step aborts the remainder and is surfaced to the caller, never
// swallowed into a partial silent success.
type Pipeline struct {
	chunker     *TokenChunker
	documents   storage.DocumentStore
	chunks      storage.ChunkStore
	embedder    retriever.Embedder
	vectorStore vectorstore.VectorStore
	collection  string
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunker *TokenChunker,
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
	embedder retriever.Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		chunker:     chunker,
		documents:   documents,
		chunks:      chunks,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
	}
}

// Ingest chunks and embeds the extracted text and persists the document
// with its chunks and vectors. doc must carry ID, UserID and file
// metadata; timestamps are set here.
func (p *Pipeline) Ingest(ctx context.Context, doc *storage.DocumentRecord, text string) error {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := p.chunker.Chunk(text)
	if len(chunks) == 0 {
		return fmt.Errorf("document produced no chunks")
	}

	chunkTexts := make([]string, len(chunks))
	for i, chunk := range chunks {
		chunkTexts[i] = chunk.Content
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, chunkTexts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := p.documents.Insert(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	chunkRecords := make([]*storage.ChunkRecord, len(chunks))
	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		chunkID := uuid.New().String()

		chunkRecords[i] = &storage.ChunkRecord{
			ID:         chunkID,
			DocumentID: doc.ID,
			ChunkIndex: chunk.Index,
			Content:    chunk.Content,
			TokenCount: chunk.TokenCount,
			CreatedAt:  now,
		}

		points[i] = vectorstore.Point{
			ID:  chunkID,
			Vec: embeddings[i],
			Meta: map[string]any{
				"user_id":     doc.UserID,
				"document_id": doc.ID,
				"chunk_index": chunk.Index,
				"title":       doc.FileName,
			},
		}
	}

	if err := p.chunks.InsertBatch(ctx, chunkRecords); err != nil {
		p.cleanup(ctx, doc, nil)
		return fmt.Errorf("failed to insert chunks: %w", err)
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		ids := make([]string, len(chunkRecords))
		for i, record := range chunkRecords {
			ids[i] = record.ID
		}
		p.cleanup(ctx, doc, ids)
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.InfoContext(ctx, "document ingested",
		"document_id", doc.ID,
		"file_name", doc.FileName,
		"chunks", len(chunks),
	)
	return nil
}

// cleanup removes a partially ingested document so a failed upload does
// not leave an invalid document visible. Best effort: the ingestion
// error still propagates regardless.
func (p *Pipeline) cleanup(ctx context.Context, doc *storage.DocumentRecord, vectorIDs []string) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(vectorIDs) > 0 {
		if err := p.vectorStore.Delete(ctx, p.collection, vectorIDs); err != nil {
			logger.WarnContext(ctx, "failed to clean up vectors after aborted ingestion", "document_id", doc.ID, "error", err)
		}
	}
	if err := p.documents.Delete(ctx, doc.UserID, doc.ID); err != nil {
		logger.WarnContext(ctx, "failed to clean up document after aborted ingestion", "document_id", doc.ID, "error", err)
	}
}
