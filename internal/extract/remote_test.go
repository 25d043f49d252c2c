package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRemoteExtractor_Extract(t *testing.T) {
	fileBytes := []byte("%PDF-1.4 fake pdf bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/extract" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			t.Fatalf("request data is not base64: %v", err)
		}
		if string(decoded) != string(fileBytes) {
			t.Error("request should carry the original file bytes")
		}
		if req.MimeType != "application/pdf" {
			t.Errorf("MimeType = %q, want application/pdf", req.MimeType)
		}

		_ = json.NewEncoder(w).Encode(extractResponse{Text: "Extracted page text.\r\nSecond line.  "})
	}))
	defer server.Close()

	e := NewRemoteExtractor(server.URL)

	got, err := e.Extract(context.Background(), fileBytes, "application/pdf")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "Extracted page text.\nSecond line." {
		t.Errorf("Extract() = %q, want normalized text", got)
	}
}

func TestRemoteExtractor_Extract_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(extractResponse{Error: "document is encrypted"})
	}))
	defer server.Close()

	e := NewRemoteExtractor(server.URL)

	_, err := e.Extract(context.Background(), []byte("x"), "application/pdf")
	if err == nil {
		t.Fatal("Extract() should fail when the service reports an error")
	}
	if !strings.Contains(err.Error(), "document is encrypted") {
		t.Errorf("error = %v, want the service message passed through", err)
	}
}

func TestRemoteExtractor_Extract_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	e := NewRemoteExtractor(server.URL)

	if _, err := e.Extract(context.Background(), []byte("x"), "application/pdf"); err == nil {
		t.Fatal("Extract() should fail on a non-200 status")
	}
}

func TestRemoteExtractor_Extract_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(extractResponse{Text: "   \n  "})
	}))
	defer server.Close()

	e := NewRemoteExtractor(server.URL)

	if _, err := e.Extract(context.Background(), []byte("x"), "application/pdf"); !errors.Is(err, ErrNoText) {
		t.Fatalf("Extract() error = %v, want ErrNoText for empty service output", err)
	}
}
