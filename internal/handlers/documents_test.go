package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"documind/internal/contextutil"
	"documind/internal/quota"
	"documind/internal/service"
	"documind/internal/service/mocks"
	"documind/internal/storage"
)

// asUser attaches the authenticated user id the middleware would set.
func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(contextutil.WithUserID(r.Context(), userID))
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// multipartUpload builds a multipart body with a single "file" part.
func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestDocumentsHandler_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentService(ctrl)
	handler := NewDocumentsHandler(documents)

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	documents.EXPECT().
		Upload(gomock.Any(), "user-1", "report.txt", gomock.Any(), []byte("report body")).
		Return(&storage.DocumentRecord{
			ID:        "doc-1",
			UserID:    "user-1",
			FileName:  "report.txt",
			FileType:  "text/plain",
			FileSize:  11,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil)

	body, contentType := multipartUpload(t, "report.txt", "report body")
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	req = asUser(req, "user-1")
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Upload status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp DocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "doc-1" {
		t.Errorf("ID = %s, want doc-1", resp.ID)
	}
	if resp.HasSummary {
		t.Error("HasSummary should be false for a fresh upload")
	}
}

func TestDocumentsHandler_Upload_MissingFilePart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewDocumentsHandler(mocks.NewMockDocumentService(ctrl))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("note", "no file here")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = asUser(req, "user-1")
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Upload status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDocumentsHandler_Upload_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewDocumentsHandler(mocks.NewMockDocumentService(ctrl))

	body, contentType := multipartUpload(t, "report.txt", "report body")
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Upload status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestDocumentsHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentService(ctrl)
	handler := NewDocumentsHandler(documents)

	documents.EXPECT().List(gomock.Any(), "user-1").Return([]*storage.DocumentRecord{
		{ID: "doc-2", FileName: "b.txt", Summary: `{"overview":"x"}`},
		{ID: "doc-1", FileName: "a.txt"},
	}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/documents", nil), "user-1")
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp []DocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("List returned %d documents, want 2", len(resp))
	}
	if !resp[0].HasSummary {
		t.Error("doc-2 should report has_summary")
	}
	if resp[1].HasSummary {
		t.Error("doc-1 should not report has_summary")
	}
}

func TestDocumentsHandler_List_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentService(ctrl)
	handler := NewDocumentsHandler(documents)

	documents.EXPECT().List(gomock.Any(), "user-1").Return(nil, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/documents", nil), "user-1")
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List status = %d, want %d", w.Code, http.StatusOK)
	}
	// Empty list serializes as [], not null.
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("List body = %q, want []", got)
	}
}

func TestDocumentsHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentService(ctrl)
	handler := NewDocumentsHandler(documents)

	documents.EXPECT().Get(gomock.Any(), "user-1", "doc-1").Return(&storage.DocumentRecord{
		ID: "doc-1", FileName: "a.txt",
	}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/documents/doc-1", nil), "user-1")
	req = withURLParam(req, "id", "doc-1")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Get status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestDocumentsHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentService(ctrl)
	handler := NewDocumentsHandler(documents)

	documents.EXPECT().Get(gomock.Any(), "user-1", "doc-x").Return(nil, service.ErrNotFound)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/documents/doc-x", nil), "user-1")
	req = withURLParam(req, "id", "doc-x")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Get status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDocumentsHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentService(ctrl)
	handler := NewDocumentsHandler(documents)

	documents.EXPECT().Delete(gomock.Any(), "user-1", "doc-1").Return(nil)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/documents/doc-1", nil), "user-1")
	req = withURLParam(req, "id", "doc-1")
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Delete status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestDocumentsHandler_Quota(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentService(ctrl)
	handler := NewDocumentsHandler(documents)

	reset := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	documents.EXPECT().Quota(gomock.Any(), "user-1").Return(quota.Status{
		Allowed: true, Count: 3, Limit: 5, ResetDate: reset,
	}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/quota", nil), "user-1")
	w := httptest.NewRecorder()

	handler.Quota(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Quota status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["allowed"] != true {
		t.Errorf("allowed = %v, want true", resp["allowed"])
	}
	if resp["count"] != float64(3) {
		t.Errorf("count = %v, want 3", resp["count"])
	}
	if resp["limit"] != float64(5) {
		t.Errorf("limit = %v, want 5", resp["limit"])
	}
}
