package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"documind/internal/contextutil"
	"documind/internal/llm"
	"documind/internal/retriever"
)

const validationSystemPrompt = `You are a document validation assistant. Analyze the provided document text for internal contradictions, information gaps, key claims, and recommendations, plus an overall risk rating (low, medium or high). Each contradiction, gap and key claim has a "description", a supporting "excerpt" quoted from the text, and a "confidence" (0.0-1.0 or high/medium/low). Respond with a JSON object: {"contradictions": [...], "gaps": [...], "key_claims": [...], "recommendations": ["..."], "risk_rating": "...", "risk_summary": "..."}. Respond with JSON only.`

const crossValidationSystemPrompt = `You are a document validation assistant comparing multiple documents. First judge whether the documents cover comparable subject matter; if they belong to unrelated domains, respond {"comparable": false, "risk_summary": "<why they are not comparable>"} and nothing else - do not fabricate comparisons. If they are comparable, find contradictions between documents, shared information gaps, and points of agreement, each with a "description", a supporting "excerpt", and a "confidence" (0.0-1.0 or high/medium/low). Respond with a JSON object: {"comparable": true, "contradictions": [...], "gaps": [...], "agreements": [...], "recommendations": ["..."], "risk_rating": "...", "risk_summary": "..."}. Respond with JSON only.`

// rawValidation is the duck-typed shape the validation verdict arrives in.
type rawValidation struct {
	Comparable      *bool        `json:"comparable"`
	Contradictions  []rawFinding `json:"contradictions"`
	Gaps            []rawFinding `json:"gaps"`
	KeyClaims       []rawFinding `json:"key_claims"`
	Agreements      []rawFinding `json:"agreements"`
	Recommendations []string     `json:"recommendations"`
	RiskRating      string       `json:"risk_rating"`
	RiskSummary     string       `json:"risk_summary"`
}

// ValidateDocument runs (or returns cached) within-document
// contradiction analysis.
func (a *analyzer) ValidateDocument(ctx context.Context, userID, documentID string, force bool) (ValidationResult, error) {
	docIDs := []string{documentID}

	if !force {
		if result, ok, err := a.cachedValidation(ctx, docIDs, TypeValidationWithin); err != nil {
			return ValidationResult{}, err
		} else if ok {
			return result, nil
		}
	}

	chunks, err := a.retriever.DocumentChunks(ctx, userID, documentID, 0)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("failed to fetch chunks: %w", err)
	}
	if len(chunks) == 0 {
		return ValidationResult{}, fmt.Errorf("document has no content to validate")
	}

	var text strings.Builder
	for _, chunk := range chunks {
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(chunk.Content)
	}

	prompt := fmt.Sprintf("Validate this document (%s):\n\n%s", chunks[0].DocumentTitle, truncateForAnalysis(text.String()))
	return a.runValidation(ctx, docIDs, TypeValidationWithin, validationSystemPrompt, prompt, chunks)
}

// CrossValidate runs (or returns cached) across-document contradiction
// analysis. Incomparable documents yield empty findings and a risk
// summary noting non-comparability.
func (a *analyzer) CrossValidate(ctx context.Context, userID string, documentIDs []string, force bool) (ValidationResult, error) {
	if len(documentIDs) < 2 {
		return ValidationResult{}, fmt.Errorf("cross-document validation requires at least two documents")
	}

	if !force {
		if result, ok, err := a.cachedValidation(ctx, documentIDs, TypeValidationAcross); err != nil {
			return ValidationResult{}, err
		} else if ok {
			return result, nil
		}
	}

	var sb strings.Builder
	var allChunks []retriever.RetrievedChunk
	perDocBudget := MaxAnalysisChars / len(documentIDs)
	for _, id := range documentIDs {
		chunks, err := a.retriever.DocumentChunks(ctx, userID, id, 0)
		if err != nil {
			return ValidationResult{}, fmt.Errorf("failed to fetch chunks for document %s: %w", id, err)
		}
		if len(chunks) == 0 {
			continue
		}
		allChunks = append(allChunks, chunks...)

		var text strings.Builder
		for _, chunk := range chunks {
			if text.Len() > 0 {
				text.WriteString("\n\n")
			}
			text.WriteString(chunk.Content)
		}
		sb.WriteString(fmt.Sprintf("## Document: %s\n\n", chunks[0].DocumentTitle))
		sb.WriteString(truncateTo(text.String(), perDocBudget))
		sb.WriteString("\n\n")
	}
	if len(allChunks) == 0 {
		return ValidationResult{}, fmt.Errorf("documents have no content to validate")
	}

	return a.runValidation(ctx, documentIDs, TypeValidationAcross, crossValidationSystemPrompt, sb.String(), allChunks)
}

// runValidation invokes the completion, parses the verdict tolerantly,
// grounds each finding's excerpt to a chunk, and caches the result.
func (a *analyzer) runValidation(ctx context.Context, docIDs []string, analysisType, system, prompt string, chunks []retriever.RetrievedChunk) (ValidationResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	raw, err := a.completer.Complete(ctx, llm.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   3000,
		JSONMode:    true,
	})
	if err != nil {
		return ValidationResult{}, fmt.Errorf("completion failed: %w", err)
	}

	var verdict rawValidation
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &verdict); err != nil {
		// Unparseable verdicts degrade to an empty result shape
		logger.WarnContext(ctx, "validation verdict unparseable", "type", analysisType)
		verdict = rawValidation{}
	}

	comparable := true
	if verdict.Comparable != nil {
		comparable = *verdict.Comparable
	}

	result := ValidationResult{
		Recommendations: verdict.Recommendations,
		RiskRating:      strings.ToLower(strings.TrimSpace(verdict.RiskRating)),
		RiskSummary:     verdict.RiskSummary,
		Comparable:      comparable,
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}

	if comparable {
		result.Contradictions = a.reconcileFindings(verdict.Contradictions, chunks)
		result.Gaps = a.reconcileFindings(verdict.Gaps, chunks)
		result.KeyClaims = a.reconcileFindings(verdict.KeyClaims, chunks)
		result.Agreements = a.reconcileFindings(verdict.Agreements, chunks)
	} else {
		// Different domains: no fabricated cross-references
		result.Contradictions = []Finding{}
		result.Gaps = []Finding{}
		result.KeyClaims = []Finding{}
		result.Agreements = []Finding{}
		if result.RiskSummary == "" {
			result.RiskSummary = "The documents cover unrelated domains and are not comparable."
		}
	}
	if result.Contradictions == nil {
		result.Contradictions = []Finding{}
	}
	if result.Gaps == nil {
		result.Gaps = []Finding{}
	}
	if result.KeyClaims == nil {
		result.KeyClaims = []Finding{}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("failed to encode validation result: %w", err)
	}
	if err := a.results.Set(ctx, docIDs, analysisType, string(payload)); err != nil {
		return ValidationResult{}, err
	}

	logger.InfoContext(ctx, "validation completed",
		"type", analysisType,
		"comparable", comparable,
		"contradictions", len(result.Contradictions),
		"gaps", len(result.Gaps),
	)
	return result, nil
}

// reconcileFindings converts raw findings, normalizing confidence and
// grounding each excerpt to its best supporting chunk.
func (a *analyzer) reconcileFindings(raw []rawFinding, chunks []retriever.RetrievedChunk) []Finding {
	findings := make([]Finding, 0, len(raw))
	for _, rf := range raw {
		if rf.Description == "" && rf.Excerpt == "" {
			continue
		}

		chunkIndex := -1
		documentID := ""
		if rf.Excerpt != "" {
			if i := a.grounder.Ground(rf.Excerpt, chunks); i >= 0 {
				chunkIndex = chunks[i].ChunkIndex
				documentID = chunks[i].DocumentID
			}
		}

		findings = append(findings, Finding{
			Description: rf.Description,
			Excerpt:     rf.Excerpt,
			DocumentID:  documentID,
			ChunkIndex:  chunkIndex,
			Confidence:  NormalizeConfidence(decodeConfidence(rf.Confidence)),
		})
	}
	return findings
}

// cachedValidation checks the analysis cache for an earlier result.
func (a *analyzer) cachedValidation(ctx context.Context, docIDs []string, analysisType string) (ValidationResult, bool, error) {
	payload, ok, err := a.results.Get(ctx, docIDs, analysisType)
	if err != nil || !ok {
		return ValidationResult{}, false, err
	}

	var result ValidationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return ValidationResult{}, false, nil
	}
	result.Cached = true
	return result, true, nil
}

// truncateTo cuts text to at most n runes with the truncation marker.
func truncateTo(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + TruncationMarker
}
