package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"documind/internal/analysis"
	"documind/internal/contextutil"
)

// AnalysisHandler handles HTTP requests for the analysis use-cases.
type AnalysisHandler struct {
	analyzer analysis.Analyzer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer analysis.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Question      string   `json:"question"`
	DocumentIDs   []string `json:"document_ids,omitempty"`
	TopK          int      `json:"top_k,omitempty"`
	MinSimilarity float32  `json:"min_similarity,omitempty"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Answer  string       `json:"answer"`
	Sources []ChatSource `json:"sources"`
}

// ChatSource summarizes one document's contribution to an answer.
type ChatSource struct {
	DocumentID    string `json:"document_id"`
	DocumentTitle string `json:"document_title"`
	ChunkCount    int    `json:"chunk_count"`
}

// Chat handles POST /api/chat.
func (h *AnalysisHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "question is required",
			Category: "validation_error",
			Fields:   map[string]string{"question": "is required"},
		})
		return
	}

	result, err := h.analyzer.Chat(ctx, userID, analysis.ChatRequest{
		Question:      req.Question,
		DocumentIDs:   req.DocumentIDs,
		TopK:          req.TopK,
		MinSimilarity: req.MinSimilarity,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	sources := make([]ChatSource, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, ChatSource{
			DocumentID:    src.DocumentID,
			DocumentTitle: src.DocumentTitle,
			ChunkCount:    src.ChunkCount,
		})
	}
	writeJSON(w, http.StatusOK, ChatResponse{Answer: result.Answer, Sources: sources})
}

// SummaryResponse represents the HTTP response payload for a summary.
type SummaryResponse struct {
	analysis.Summary
	Cached bool `json:"cached"`
}

// Summarize handles POST /api/documents/{id}/summary.
// ?force=true regenerates even when a cached summary exists.
func (h *AnalysisHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	force := r.URL.Query().Get("force") == "true"
	result, err := h.analyzer.Summarize(r.Context(), userID, chi.URLParam(r, "id"), force)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Summary: result.Summary, Cached: result.Cached})
}

// AnalysisRequest represents the HTTP request payload for insights and
// validation, which operate over one or more documents.
type AnalysisRequest struct {
	DocumentIDs []string `json:"document_ids"`
	Force       bool     `json:"force,omitempty"`
}

// InsightsResponse represents the HTTP response payload for insights.
type InsightsResponse struct {
	Insights []analysis.Insight `json:"insights"`
	Cached   bool               `json:"cached"`
}

// Insights handles POST /api/insights. One document id selects the
// single-document path; several select the cross-document path.
func (h *AnalysisHandler) Insights(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeAnalysisRequest(w, r)
	if !ok {
		return
	}

	var result analysis.InsightsResult
	var err error
	if len(req.DocumentIDs) == 1 {
		result, err = h.analyzer.DocumentInsights(r.Context(), userID, req.DocumentIDs[0], req.Force)
	} else {
		result, err = h.analyzer.CrossDocumentInsights(r.Context(), userID, req.DocumentIDs, req.Force)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InsightsResponse{Insights: result.Insights, Cached: result.Cached})
}

// ValidationResponse represents the HTTP response payload for validation.
type ValidationResponse struct {
	analysis.ValidationResult
	Cached bool `json:"cached"`
}

// Validate handles POST /api/validation. One document id selects
// within-document analysis; several select across-document analysis.
func (h *AnalysisHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeAnalysisRequest(w, r)
	if !ok {
		return
	}

	var result analysis.ValidationResult
	var err error
	if len(req.DocumentIDs) == 1 {
		result, err = h.analyzer.ValidateDocument(r.Context(), userID, req.DocumentIDs[0], req.Force)
	} else {
		result, err = h.analyzer.CrossValidate(r.Context(), userID, req.DocumentIDs, req.Force)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ValidationResponse{ValidationResult: result, Cached: result.Cached})
}

// decodeAnalysisRequest decodes and validates the shared request shape.
func (h *AnalysisHandler) decodeAnalysisRequest(w http.ResponseWriter, r *http.Request) (string, AnalysisRequest, bool) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := requireUser(w, r)
	if !ok {
		return "", AnalysisRequest{}, false
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return "", AnalysisRequest{}, false
	}
	if len(req.DocumentIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "document_ids is required",
			Category: "validation_error",
			Fields:   map[string]string{"document_ids": "is required"},
		})
		return "", AnalysisRequest{}, false
	}
	return userID, req, true
}
