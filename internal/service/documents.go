package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_service.go -package=mocks documind/internal/service DocumentService

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"documind/internal/analysis"
	"documind/internal/cache"
	"documind/internal/contextutil"
	"documind/internal/extract"
	"documind/internal/indexer"
	"documind/internal/quota"
	"documind/internal/storage"
	"documind/internal/vectorstore"
)

// maxUploadBytes bounds a single upload.
const maxUploadBytes = 25 << 20 // 25 MiB

// DocumentService covers the document lifecycle: upload (quota, dedup,
// type gate, ingestion), listing, and deletion with cache invalidation.
type DocumentService interface {
	// Upload ingests a new document. Validation failures, quota
	// exhaustion and duplicate content surface as their taxonomy errors.
	Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (*storage.DocumentRecord, error)
	// Get returns a user's document. ErrNotFound also covers documents
	// owned by other users.
	Get(ctx context.Context, userID, id string) (*storage.DocumentRecord, error)
	// List returns all of a user's documents, newest first.
	List(ctx context.Context, userID string) ([]*storage.DocumentRecord, error)
	// Delete removes a document, its chunks, its vectors, and every
	// cached analysis the document participated in.
	Delete(ctx context.Context, userID, id string) error
	// Quota reports the user's position in the current upload window.
	Quota(ctx context.Context, userID string) (quota.Status, error)
}

// documentService implements DocumentService.
type documentService struct {
	documents   storage.DocumentStore
	chunks      storage.ChunkStore
	extractor   extract.Extractor
	classifier  analysis.Classifier
	limiter     quota.Limiter
	pipeline    *indexer.Pipeline
	vectorStore vectorstore.VectorStore
	collection  string
	results     cache.AnalysisCache
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
	extractor extract.Extractor,
	classifier analysis.Classifier,
	limiter quota.Limiter,
	pipeline *indexer.Pipeline,
	vectorStore vectorstore.VectorStore,
	collection string,
	results cache.AnalysisCache,
) DocumentService {
	return &documentService{
		documents:   documents,
		chunks:      chunks,
		extractor:   extractor,
		classifier:  classifier,
		limiter:     limiter,
		pipeline:    pipeline,
		vectorStore: vectorStore,
		collection:  collection,
		results:     results,
	}
}

// Upload ingests a new document.
func (s *documentService) Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (*storage.DocumentRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	// Validation first, before any network or storage call
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "is required"}
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, &ValidationError{Field: "file_name", Message: "is required"}
	}
	if len(data) == 0 {
		return nil, &ValidationError{Field: "file", Message: "is empty"}
	}
	if len(data) > maxUploadBytes {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("exceeds the maximum size of %d bytes", maxUploadBytes)}
	}

	status, err := s.limiter.Check(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: quota check failed: %v", ErrExternalService, err)
	}
	if !status.Allowed {
		return nil, &QuotaError{Count: status.Count, Limit: status.Limit, ResetDate: status.ResetDate}
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	existing, err := s.documents.GetByUserAndHash(ctx, userID, hash)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrExternalService, err)
	}
	if existing != nil {
		return nil, &ConflictError{ExistingID: existing.ID, ExistingFileName: existing.FileName}
	}

	text, err := s.extractor.Extract(ctx, data, mimeType)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) || errors.Is(err, extract.ErrNoText) {
			return nil, &ValidationError{Field: "file", Message: err.Error()}
		}
		return nil, fmt.Errorf("%w: text extraction failed: %v", ErrExternalService, err)
	}

	// Document-type gate: rejection needs a confident non-technical
	// verdict; classifier failures and low confidence fail open
	verdict := s.classifier.Classify(ctx, text)
	if s.classifier.ShouldReject(verdict) {
		logger.InfoContext(ctx, "upload rejected as non-technical",
			"file_name", fileName,
			"confidence", verdict.Confidence,
		)
		return nil, &ValidationError{Field: "file", Message: "document does not appear to be technical content"}
	}

	doc := &storage.DocumentRecord{
		ID:       uuid.New().String(),
		UserID:   userID,
		FileName: fileName,
		FileType: mimeType,
		FileSize: int64(len(data)),
		FileHash: hash,
	}

	if err := s.pipeline.Ingest(ctx, doc, text); err != nil {
		return nil, fmt.Errorf("%w: ingestion failed: %v", ErrExternalService, err)
	}

	logger.InfoContext(ctx, "document uploaded", "document_id", doc.ID, "file_name", fileName, "size", doc.FileSize)
	return doc, nil
}

// Get returns a user's document.
func (s *documentService) Get(ctx context.Context, userID, id string) (*storage.DocumentRecord, error) {
	if userID == "" || id == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	doc, err := s.documents.GetByID(ctx, userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, WrapError(err, "failed to fetch document")
	}
	return doc, nil
}

// List returns all of a user's documents, newest first.
func (s *documentService) List(ctx context.Context, userID string) ([]*storage.DocumentRecord, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "is required"}
	}
	docs, err := s.documents.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list documents")
	}
	return docs, nil
}

// Delete removes a document and everything derived from it. The cache
// invalidation at the end is a correctness obligation, not an
// optimization: without it, analyses keyed to the deleted document
// would keep being served.
func (s *documentService) Delete(ctx context.Context, userID, id string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" || id == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}

	chunkIDs, err := s.chunks.ListIDsByDocument(ctx, userID, id)
	if err != nil {
		return WrapError(err, "failed to list chunk ids")
	}

	if len(chunkIDs) > 0 {
		if err := s.vectorStore.Delete(ctx, s.collection, chunkIDs); err != nil {
			return fmt.Errorf("%w: failed to delete vectors: %v", ErrExternalService, err)
		}
	}

	if err := s.documents.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete document")
	}

	if err := s.results.Invalidate(ctx, []string{id}); err != nil {
		return WrapError(err, "failed to invalidate analyses")
	}

	logger.InfoContext(ctx, "document deleted", "document_id", id, "chunks", len(chunkIDs))
	return nil
}

// Quota reports the user's position in the current upload window.
func (s *documentService) Quota(ctx context.Context, userID string) (quota.Status, error) {
	if userID == "" {
		return quota.Status{}, &ValidationError{Field: "user_id", Message: "is required"}
	}
	status, err := s.limiter.Check(ctx, userID)
	if err != nil {
		return quota.Status{}, fmt.Errorf("%w: quota check failed: %v", ErrExternalService, err)
	}
	return status, nil
}
