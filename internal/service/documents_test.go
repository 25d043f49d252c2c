package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"testing"
	"time"

	"documind/internal/analysis"
	analysis_mocks "documind/internal/analysis/mocks"
	cache_mocks "documind/internal/cache/mocks"
	"documind/internal/extract"
	extract_mocks "documind/internal/extract/mocks"
	"documind/internal/indexer"
	"documind/internal/quota"
	quota_mocks "documind/internal/quota/mocks"
	retriever_mocks "documind/internal/retriever/mocks"
	"documind/internal/storage"
	storage_mocks "documind/internal/storage/mocks"
	vectorstore_mocks "documind/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

type serviceFixture struct {
	service    DocumentService
	documents  *storage_mocks.MockDocumentStore
	chunks     *storage_mocks.MockChunkStore
	extractor  *extract_mocks.MockExtractor
	classifier *analysis_mocks.MockClassifier
	limiter    *quota_mocks.MockLimiter
	embedder   *retriever_mocks.MockEmbedder
	vectors    *vectorstore_mocks.MockVectorStore
	results    *cache_mocks.MockAnalysisCache
}

func newServiceFixture(ctrl *gomock.Controller) *serviceFixture {
	f := &serviceFixture{
		documents:  storage_mocks.NewMockDocumentStore(ctrl),
		chunks:     storage_mocks.NewMockChunkStore(ctrl),
		extractor:  extract_mocks.NewMockExtractor(ctrl),
		classifier: analysis_mocks.NewMockClassifier(ctrl),
		limiter:    quota_mocks.NewMockLimiter(ctrl),
		embedder:   retriever_mocks.NewMockEmbedder(ctrl),
		vectors:    vectorstore_mocks.NewMockVectorStore(ctrl),
		results:    cache_mocks.NewMockAnalysisCache(ctrl),
	}
	pipeline := indexer.NewPipeline(indexer.NewTokenChunker(0, 0), f.documents, f.chunks, f.embedder, f.vectors, "documents")
	f.service = NewDocumentService(f.documents, f.chunks, f.extractor, f.classifier, f.limiter, pipeline, f.vectors, "documents", f.results)
	return f
}

func allowedQuota() quota.Status {
	return quota.Status{Allowed: true, Count: 1, Limit: 5, ResetDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
}

func TestDocumentService_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)
	data := []byte("raw file bytes")
	hash := fmt.Sprintf("%x", sha256.Sum256(data))

	f.limiter.EXPECT().Check(gomock.Any(), "user-1").Return(allowedQuota(), nil)
	f.documents.EXPECT().GetByUserAndHash(gomock.Any(), "user-1", hash).Return(nil, storage.ErrNotFound)
	f.extractor.EXPECT().Extract(gomock.Any(), data, "text/plain").Return("extracted text content", nil)
	f.classifier.EXPECT().Classify(gomock.Any(), "extracted text content").Return(analysis.Classification{IsTechnical: true, Confidence: 0.9})
	f.classifier.EXPECT().ShouldReject(gomock.Any()).Return(false)

	f.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{0.1}}, nil)
	f.documents.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.chunks.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(nil)
	f.vectors.EXPECT().Upsert(gomock.Any(), "documents", gomock.Any()).Return(nil)

	doc, err := f.service.Upload(context.Background(), "user-1", "notes.txt", "text/plain", data)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if doc.ID == "" {
		t.Error("uploaded document should carry a generated ID")
	}
	if doc.UserID != "user-1" || doc.FileName != "notes.txt" || doc.FileType != "text/plain" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.FileHash != hash {
		t.Errorf("FileHash = %q, want content hash", doc.FileHash)
	}
	if doc.FileSize != int64(len(data)) {
		t.Errorf("FileSize = %d, want %d", doc.FileSize, len(data))
	}
}

func TestDocumentService_Upload_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	tests := []struct {
		name     string
		userID   string
		fileName string
		data     []byte
	}{
		{name: "missing user", userID: "", fileName: "a.txt", data: []byte("x")},
		{name: "missing file name", userID: "user-1", fileName: "  ", data: []byte("x")},
		{name: "empty file", userID: "user-1", fileName: "a.txt", data: nil},
		{name: "oversized file", userID: "user-1", fileName: "a.txt", data: make([]byte, maxUploadBytes+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation failures short-circuit before the quota check.
			_, err := f.service.Upload(context.Background(), tt.userID, tt.fileName, "text/plain", tt.data)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Upload() error = %v, want *ValidationError", err)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Error("validation errors should unwrap to ErrInvalidInput")
			}
		})
	}
}

func TestDocumentService_Upload_QuotaExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	reset := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	f.limiter.EXPECT().Check(gomock.Any(), "user-1").Return(quota.Status{
		Allowed: false, Count: 5, Limit: 5, ResetDate: reset,
	}, nil)

	_, err := f.service.Upload(context.Background(), "user-1", "a.txt", "text/plain", []byte("x"))

	var qerr *QuotaError
	if !errors.As(err, &qerr) {
		t.Fatalf("Upload() error = %v, want *QuotaError", err)
	}
	if qerr.Count != 5 || qerr.Limit != 5 || !qerr.ResetDate.Equal(reset) {
		t.Errorf("QuotaError = %+v", qerr)
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Error("quota errors should unwrap to ErrQuotaExceeded")
	}
}

func TestDocumentService_Upload_DuplicateContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)
	data := []byte("same bytes as before")

	f.limiter.EXPECT().Check(gomock.Any(), "user-1").Return(allowedQuota(), nil)
	f.documents.EXPECT().GetByUserAndHash(gomock.Any(), "user-1", gomock.Any()).Return(&storage.DocumentRecord{
		ID: "doc-orig", FileName: "original.txt",
	}, nil)

	_, err := f.service.Upload(context.Background(), "user-1", "copy.txt", "text/plain", data)

	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("Upload() error = %v, want *ConflictError", err)
	}
	if cerr.ExistingID != "doc-orig" || cerr.ExistingFileName != "original.txt" {
		t.Errorf("ConflictError = %+v, want reference to the original upload", cerr)
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("conflict errors should unwrap to ErrConflict")
	}
}

func TestDocumentService_Upload_ExtractionErrors(t *testing.T) {
	tests := []struct {
		name           string
		extractErr     error
		wantValidation bool
	}{
		{
			name:           "unsupported type is a validation error",
			extractErr:     fmt.Errorf("%w: application/zip", extract.ErrUnsupportedType),
			wantValidation: true,
		},
		{
			name:           "no extractable text is a validation error",
			extractErr:     extract.ErrNoText,
			wantValidation: true,
		},
		{
			name:           "extractor outage is an external-service error",
			extractErr:     errors.New("connection refused"),
			wantValidation: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newServiceFixture(ctrl)
			f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedQuota(), nil)
			f.documents.EXPECT().GetByUserAndHash(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
			f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("", tt.extractErr)

			_, err := f.service.Upload(context.Background(), "user-1", "a.bin", "application/zip", []byte("x"))
			if err == nil {
				t.Fatal("Upload() should fail")
			}
			if tt.wantValidation {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("error = %v, want ErrInvalidInput", err)
				}
			} else if !errors.Is(err, ErrExternalService) {
				t.Errorf("error = %v, want ErrExternalService", err)
			}
		})
	}
}

func TestDocumentService_Upload_NonTechnicalRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedQuota(), nil)
	f.documents.EXPECT().GetByUserAndHash(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
	f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("a short story about llamas", nil)

	verdict := analysis.Classification{IsTechnical: false, Confidence: 0.95}
	f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(verdict)
	f.classifier.EXPECT().ShouldReject(verdict).Return(true)

	_, err := f.service.Upload(context.Background(), "user-1", "story.txt", "text/plain", []byte("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Upload() error = %v, want validation rejection", err)
	}
}

func TestDocumentService_Upload_IngestionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedQuota(), nil)
	f.documents.EXPECT().GetByUserAndHash(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
	f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("text", nil)
	f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(analysis.Classification{IsTechnical: true})
	f.classifier.EXPECT().ShouldReject(gomock.Any()).Return(false)
	f.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, errors.New("embedding service down"))

	_, err := f.service.Upload(context.Background(), "user-1", "a.txt", "text/plain", []byte("x"))
	if !errors.Is(err, ErrExternalService) {
		t.Fatalf("Upload() error = %v, want ErrExternalService", err)
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	f.documents.EXPECT().GetByID(gomock.Any(), "user-1", "doc-1").Return(&storage.DocumentRecord{ID: "doc-1"}, nil)

	doc, err := f.service.Get(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.ID != "doc-1" {
		t.Errorf("doc.ID = %q", doc.ID)
	}
}

func TestDocumentService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	f.documents.EXPECT().GetByID(gomock.Any(), "user-1", "doc-x").Return(nil, storage.ErrNotFound)

	_, err := f.service.Get(context.Background(), "user-1", "doc-x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	gomock.InOrder(
		f.chunks.EXPECT().ListIDsByDocument(gomock.Any(), "user-1", "doc-1").Return([]string{"c-1", "c-2"}, nil),
		f.vectors.EXPECT().Delete(gomock.Any(), "documents", []string{"c-1", "c-2"}).Return(nil),
		f.documents.EXPECT().Delete(gomock.Any(), "user-1", "doc-1").Return(nil),
		f.results.EXPECT().Invalidate(gomock.Any(), []string{"doc-1"}).Return(nil),
	)

	if err := f.service.Delete(context.Background(), "user-1", "doc-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestDocumentService_Delete_NoChunksSkipsVectorDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	f.chunks.EXPECT().ListIDsByDocument(gomock.Any(), "user-1", "doc-1").Return([]string{}, nil)
	f.documents.EXPECT().Delete(gomock.Any(), "user-1", "doc-1").Return(nil)
	f.results.EXPECT().Invalidate(gomock.Any(), []string{"doc-1"}).Return(nil)

	if err := f.service.Delete(context.Background(), "user-1", "doc-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestDocumentService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	f.chunks.EXPECT().ListIDsByDocument(gomock.Any(), "user-1", "doc-x").Return(nil, nil)
	f.documents.EXPECT().Delete(gomock.Any(), "user-1", "doc-x").Return(storage.ErrNotFound)

	if err := f.service.Delete(context.Background(), "user-1", "doc-x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentService_Quota(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newServiceFixture(ctrl)

	f.limiter.EXPECT().Check(gomock.Any(), "user-1").Return(allowedQuota(), nil)

	status, err := f.service.Quota(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Quota() error = %v", err)
	}
	if !status.Allowed || status.Count != 1 || status.Limit != 5 {
		t.Errorf("status = %+v", status)
	}
}
