package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"documind/internal/analysis"
	"documind/internal/analysis/mocks"
)

func TestAnalysisHandler_Chat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	handler := NewAnalysisHandler(analyzer)

	analyzer.EXPECT().
		Chat(gomock.Any(), "user-1", analysis.ChatRequest{
			Question:    "what does the runbook say?",
			DocumentIDs: []string{"doc-1"},
			TopK:        3,
		}).
		Return(analysis.ChatResult{
			Answer: "It says to restart the service.",
			Sources: []analysis.ChatSource{
				{DocumentID: "doc-1", DocumentTitle: "runbook.md", ChunkCount: 2},
			},
		}, nil)

	body := `{"question":"what does the runbook say?","document_ids":["doc-1"],"top_k":3}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)), "user-1")
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Chat status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "It says to restart the service." {
		t.Errorf("Answer = %s", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].ChunkCount != 2 {
		t.Errorf("Sources = %+v", resp.Sources)
	}
}

func TestAnalysisHandler_Chat_BadRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAnalysisHandler(mocks.NewMockAnalyzer(ctrl))

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{"question":`},
		{name: "missing question", body: `{"document_ids":["doc-1"]}`},
		{name: "blank question", body: `{"question":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body)), "user-1")
			w := httptest.NewRecorder()

			handler.Chat(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Chat status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAnalysisHandler_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	handler := NewAnalysisHandler(analyzer)

	analyzer.EXPECT().
		Summarize(gomock.Any(), "user-1", "doc-1", false).
		Return(analysis.SummaryResult{
			Summary: analysis.Summary{Overview: "short overview", WordCount: 120},
			Cached:  true,
		}, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/documents/doc-1/summary", nil), "user-1")
	req = withURLParam(req, "id", "doc-1")
	w := httptest.NewRecorder()

	handler.Summarize(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Summarize status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["overview"] != "short overview" {
		t.Errorf("overview = %v", resp["overview"])
	}
	if resp["cached"] != true {
		t.Errorf("cached = %v, want true", resp["cached"])
	}
}

func TestAnalysisHandler_Summarize_Force(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	handler := NewAnalysisHandler(analyzer)

	analyzer.EXPECT().
		Summarize(gomock.Any(), "user-1", "doc-1", true).
		Return(analysis.SummaryResult{}, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/documents/doc-1/summary?force=true", nil), "user-1")
	req = withURLParam(req, "id", "doc-1")
	w := httptest.NewRecorder()

	handler.Summarize(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Summarize status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAnalysisHandler_Insights_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		expect func(analyzer *mocks.MockAnalyzer)
	}{
		{
			name: "single document",
			body: `{"document_ids":["doc-1"]}`,
			expect: func(analyzer *mocks.MockAnalyzer) {
				analyzer.EXPECT().
					DocumentInsights(gomock.Any(), "user-1", "doc-1", false).
					Return(analysis.InsightsResult{}, nil)
			},
		},
		{
			name: "multiple documents",
			body: `{"document_ids":["doc-1","doc-2"],"force":true}`,
			expect: func(analyzer *mocks.MockAnalyzer) {
				analyzer.EXPECT().
					CrossDocumentInsights(gomock.Any(), "user-1", []string{"doc-1", "doc-2"}, true).
					Return(analysis.InsightsResult{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			handler := NewAnalysisHandler(analyzer)
			tt.expect(analyzer)

			req := asUser(httptest.NewRequest(http.MethodPost, "/api/insights", strings.NewReader(tt.body)), "user-1")
			w := httptest.NewRecorder()

			handler.Insights(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Insights status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
			}
		})
	}
}

func TestAnalysisHandler_Insights_MissingIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAnalysisHandler(mocks.NewMockAnalyzer(ctrl))

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/insights", strings.NewReader(`{}`)), "user-1")
	w := httptest.NewRecorder()

	handler.Insights(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Insights status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Fields["document_ids"] == "" {
		t.Errorf("Fields = %v, want a document_ids entry", resp.Fields)
	}
}

func TestAnalysisHandler_Validate_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		expect func(analyzer *mocks.MockAnalyzer)
	}{
		{
			name: "single document",
			body: `{"document_ids":["doc-1"]}`,
			expect: func(analyzer *mocks.MockAnalyzer) {
				analyzer.EXPECT().
					ValidateDocument(gomock.Any(), "user-1", "doc-1", false).
					Return(analysis.ValidationResult{RiskRating: "low"}, nil)
			},
		},
		{
			name: "multiple documents",
			body: `{"document_ids":["doc-1","doc-2"]}`,
			expect: func(analyzer *mocks.MockAnalyzer) {
				analyzer.EXPECT().
					CrossValidate(gomock.Any(), "user-1", []string{"doc-1", "doc-2"}, false).
					Return(analysis.ValidationResult{Comparable: true}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			handler := NewAnalysisHandler(analyzer)
			tt.expect(analyzer)

			req := asUser(httptest.NewRequest(http.MethodPost, "/api/validation", strings.NewReader(tt.body)), "user-1")
			w := httptest.NewRecorder()

			handler.Validate(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Validate status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
			}
		})
	}
}

func TestAnalysisHandler_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAnalysisHandler(mocks.NewMockAnalyzer(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question":"hi"}`))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Chat status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
