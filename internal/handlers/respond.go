package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"documind/internal/contextutil"
	"documind/internal/service"
	"documind/internal/storage"
)

// ErrorResponse represents an error response. Category is the
// machine-checkable error class; Fields enumerates per-field problems
// for validation errors.
type ErrorResponse struct {
	Error    string            `json:"error"`
	Category string            `json:"category"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response with the given status and category.
func writeError(w http.ResponseWriter, status int, category, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Category: category})
}

// writeServiceError maps a service-layer error onto the HTTP surface.
// Upstream failures are logged with detail but surfaced generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    validationErr.Error(),
			Category: "validation_error",
			Fields:   map[string]string{validationErr.Field: validationErr.Message},
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "document not found")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, service.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, "quota_exceeded", err.Error())
	case errors.Is(err, service.ErrExternalService):
		logger.ErrorContext(ctx, "upstream service failure", "error", err)
		writeError(w, http.StatusBadGateway, "upstream_error", "an upstream service failed")
	default:
		logger.ErrorContext(ctx, "unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requireUser extracts the authenticated user id set by the middleware.
// Returns false after writing an error response when it is missing.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := contextutil.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing user identity")
		return "", false
	}
	return userID, true
}
