package analysis

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks documind/internal/analysis Completer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analyzer.go -package=mocks documind/internal/analysis Analyzer

import (
	"context"

	"documind/internal/cache"
	"documind/internal/llm"
	"documind/internal/retriever"
	"documind/internal/storage"
)

// Completer invokes the external completion capability. The returned
// content is untrusted text the orchestrator must defensively parse.
// This interface is defined from the analysis layer's perspective
// (consumer-first).
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Analysis-type tags used for cache keying.
const (
	TypeInsights         = "insights"
	TypeInsightsCross    = "insights_cross"
	TypeValidationWithin = "validation_within"
	TypeValidationAcross = "validation_across"
)

// ChatRequest is a natural-language question over a user's documents.
// DocumentIDs, when non-empty, restrict retrieval to those documents.
// TopK and MinSimilarity of zero take the defaults (6 and 0.15).
type ChatRequest struct {
	Question      string
	DocumentIDs   []string
	TopK          int
	MinSimilarity float32
}

// ChatSource summarizes one document's contribution to an answer.
type ChatSource struct {
	DocumentID    string
	DocumentTitle string
	ChunkCount    int
}

// ChatResult is a grounded answer with its contributing sources.
type ChatResult struct {
	Answer  string
	Sources []ChatSource
}

// Summary is the structured summary of a single document. The counts
// are computed locally from the analyzed text, not by the model.
type Summary struct {
	Overview           string   `json:"overview"`
	KeyFindings        []string `json:"key_findings"`
	Keywords           []string `json:"keywords"`
	WordCount          int      `json:"word_count"`
	PageCount          int      `json:"page_count"`
	ReadingTimeMinutes int      `json:"reading_time_minutes"`
}

// SummaryResult wraps a Summary with its cache provenance. Cached is set
// at read time, never stored.
type SummaryResult struct {
	Summary
	Cached bool
}

// Insight categories. A legacy "correlation" category from an older
// prompt version is filtered out of responses for backward compatibility.
const (
	CategoryPattern     = "pattern"
	CategoryAnomaly     = "anomaly"
	CategoryOpportunity = "opportunity"
	CategoryRisk        = "risk"
)

// Insight is one model-generated observation about a document set.
type Insight struct {
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// InsightsResult is a list of insights with cache provenance.
type InsightsResult struct {
	Insights []Insight `json:"insights"`
	Cached   bool      `json:"-"`
}

// Finding is a single validation observation reconciled against the
// source chunks. DocumentID and ChunkIndex are the best-effort
// grounding of Excerpt; "" and -1 when no chunk plausibly supports it.
// DocumentID disambiguates the chunk index in cross-document results.
type Finding struct {
	Description string  `json:"description"`
	Excerpt     string  `json:"excerpt"`
	DocumentID  string  `json:"document_id,omitempty"`
	ChunkIndex  int     `json:"chunk_index"`
	Confidence  float64 `json:"confidence"`
}

// ValidationResult is a contradiction/validation analysis over one or
// more documents. In cross-document mode Comparable reports whether the
// documents were judged comparable at all; incomparable documents yield
// empty findings and a risk summary noting non-comparability.
type ValidationResult struct {
	Contradictions  []Finding `json:"contradictions"`
	Gaps            []Finding `json:"gaps"`
	KeyClaims       []Finding `json:"key_claims"`
	Agreements      []Finding `json:"agreements,omitempty"`
	Recommendations []string  `json:"recommendations"`
	RiskRating      string    `json:"risk_rating"`
	RiskSummary     string    `json:"risk_summary"`
	Comparable      bool      `json:"comparable"`
	Cached          bool      `json:"-"`
}

// Classification is the document-type gate's verdict.
type Classification struct {
	IsTechnical bool
	Confidence  float64
}

// Analyzer is the family of analysis use-cases sharing one shape: fetch
// source text, build a task prompt, invoke the completion capability,
// parse its untrusted output, and reconcile it against the chunk set.
type Analyzer interface {
	Chat(ctx context.Context, userID string, req ChatRequest) (ChatResult, error)
	Summarize(ctx context.Context, userID, documentID string, force bool) (SummaryResult, error)
	DocumentInsights(ctx context.Context, userID, documentID string, force bool) (InsightsResult, error)
	CrossDocumentInsights(ctx context.Context, userID string, documentIDs []string, force bool) (InsightsResult, error)
	ValidateDocument(ctx context.Context, userID, documentID string, force bool) (ValidationResult, error)
	CrossValidate(ctx context.Context, userID string, documentIDs []string, force bool) (ValidationResult, error)
}

// analyzer implements the Analyzer interface.
type analyzer struct {
	retriever retriever.Retriever
	completer Completer
	results   cache.AnalysisCache
	documents storage.DocumentStore
	grounder  Grounder
}

// New creates a new Analyzer. grounder may be nil, in which case the
// lexical-overlap grounder is used.
func New(
	ret retriever.Retriever,
	completer Completer,
	results cache.AnalysisCache,
	documents storage.DocumentStore,
	grounder Grounder,
) Analyzer {
	if grounder == nil {
		grounder = NewLexicalGrounder()
	}
	return &analyzer{
		retriever: ret,
		completer: completer,
		results:   results,
		documents: documents,
		grounder:  grounder,
	}
}
