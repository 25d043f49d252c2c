package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"documind/internal/contextutil"
	"documind/internal/llm"
)

const insightsSystemPrompt = `You are a document analysis assistant generating insights. Each insight has a "category" (one of: pattern, anomaly, opportunity, risk), a short "title", a "description", and a "confidence" (0.0-1.0 or high/medium/low). Respond with a JSON object: {"insights": [...]}. Respond with JSON only.`

// DocumentInsights generates (or returns cached) insights for a single
// document from its full chunk text.
func (a *analyzer) DocumentInsights(ctx context.Context, userID, documentID string, force bool) (InsightsResult, error) {
	docIDs := []string{documentID}

	if !force {
		if result, ok, err := a.cachedInsights(ctx, docIDs, TypeInsights); err != nil {
			return InsightsResult{}, err
		} else if ok {
			return result, nil
		}
	}

	chunks, err := a.retriever.DocumentChunks(ctx, userID, documentID, 0)
	if err != nil {
		return InsightsResult{}, fmt.Errorf("failed to fetch chunks: %w", err)
	}
	if len(chunks) == 0 {
		return InsightsResult{}, fmt.Errorf("document has no content to analyze")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate 10 to 16 insights for this document (%s):\n\n", chunks[0].DocumentTitle))
	var text strings.Builder
	for _, chunk := range chunks {
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(chunk.Content)
	}
	sb.WriteString(truncateForAnalysis(text.String()))

	return a.generateInsights(ctx, docIDs, TypeInsights, sb.String())
}

// CrossDocumentInsights generates (or returns cached) insights across a
// set of documents. It works from per-document summaries, not full
// text: each document contributes its name, its existing-or-empty
// summary, and its metadata.
func (a *analyzer) CrossDocumentInsights(ctx context.Context, userID string, documentIDs []string, force bool) (InsightsResult, error) {
	if len(documentIDs) < 2 {
		return InsightsResult{}, fmt.Errorf("cross-document insights require at least two documents")
	}

	if !force {
		if result, ok, err := a.cachedInsights(ctx, documentIDs, TypeInsightsCross); err != nil {
			return InsightsResult{}, err
		} else if ok {
			return result, nil
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate 8 to 15 insights across these %d documents:\n\n", len(documentIDs)))
	for _, id := range documentIDs {
		doc, err := a.documents.GetByID(ctx, userID, id)
		if err != nil {
			return InsightsResult{}, fmt.Errorf("failed to fetch document %s: %w", id, err)
		}

		sb.WriteString(fmt.Sprintf("## %s\n", doc.FileName))
		overview := summaryOverview(doc.Summary)
		if overview == "" {
			sb.WriteString("(no summary available)\n")
		} else {
			sb.WriteString(overview)
			sb.WriteString("\n")
		}
		if doc.Metadata != "" {
			sb.WriteString(fmt.Sprintf("Metadata: %s\n", doc.Metadata))
		}
		sb.WriteString("\n")
	}

	return a.generateInsights(ctx, documentIDs, TypeInsightsCross, sb.String())
}

// generateInsights runs the completion, parses tolerantly, and caches
// the parsed result.
func (a *analyzer) generateInsights(ctx context.Context, docIDs []string, analysisType, prompt string) (InsightsResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	raw, err := a.completer.Complete(ctx, llm.CompletionRequest{
		System:      insightsSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   3000,
		JSONMode:    true,
	})
	if err != nil {
		return InsightsResult{}, fmt.Errorf("completion failed: %w", err)
	}

	insights := parseInsights(raw)
	if insights == nil {
		insights = []Insight{}
	}
	result := InsightsResult{Insights: insights}

	payload, err := json.Marshal(result)
	if err != nil {
		return InsightsResult{}, fmt.Errorf("failed to encode insights: %w", err)
	}
	if err := a.results.Set(ctx, docIDs, analysisType, string(payload)); err != nil {
		return InsightsResult{}, err
	}

	logger.InfoContext(ctx, "insights generated", "type", analysisType, "count", len(insights))
	return result, nil
}

// cachedInsights checks the analysis cache for an earlier result.
func (a *analyzer) cachedInsights(ctx context.Context, docIDs []string, analysisType string) (InsightsResult, bool, error) {
	payload, ok, err := a.results.Get(ctx, docIDs, analysisType)
	if err != nil || !ok {
		return InsightsResult{}, false, err
	}

	var result InsightsResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		// Unreadable entry behaves like a miss and gets overwritten
		return InsightsResult{}, false, nil
	}
	result.Cached = true
	return result, true, nil
}

// summaryOverview extracts the overview from a stored summary payload.
func summaryOverview(stored string) string {
	if stored == "" {
		return ""
	}
	var summary Summary
	if err := json.Unmarshal([]byte(stored), &summary); err != nil {
		return ""
	}
	return summary.Overview
}
