package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"documind/internal/analysis"
	"documind/internal/handlers"
	"documind/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Documents service.DocumentService
	Analyzer  analysis.Analyzer
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)
	r.Use(UserMiddleware)

	documentsHandler := handlers.NewDocumentsHandler(deps.Documents)
	analysisHandler := handlers.NewAnalysisHandler(deps.Analyzer)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler())

		r.Post("/documents", documentsHandler.Upload)
		r.Get("/documents", documentsHandler.List)
		r.Get("/documents/{id}", documentsHandler.Get)
		r.Delete("/documents/{id}", documentsHandler.Delete)
		r.Post("/documents/{id}/summary", analysisHandler.Summarize)
		r.Get("/quota", documentsHandler.Quota)

		r.Post("/chat", analysisHandler.Chat)
		r.Post("/insights", analysisHandler.Insights)
		r.Post("/validation", analysisHandler.Validate)
	})

	return r
}
