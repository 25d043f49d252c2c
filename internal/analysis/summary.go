package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"documind/internal/contextutil"
	"documind/internal/llm"
)

const (
	// DefaultSummaryChunkCap bounds how many chunks feed a summary.
	DefaultSummaryChunkCap = 30
	// MaxAnalysisChars bounds the text handed to a single analysis call.
	MaxAnalysisChars = 40000
	// TruncationMarker is appended when analyzed text was cut off.
	TruncationMarker = "\n\n[content truncated for analysis]"

	// readingWordsPerMinute is the reading-time estimate basis.
	readingWordsPerMinute = 200
	// wordsPerPage is the page-count estimate basis.
	wordsPerPage = 500
)

const summarySystemPrompt = `You are a document summarization assistant. Produce a JSON object with exactly these fields: "overview" (2-4 sentence string), "key_findings" (array of strings), "keywords" (array of strings). Respond with JSON only.`

// Summarize produces (or returns the cached) structured summary of a
// single document. A cached summary on the document row is returned
// as-is unless force is set; fresh summaries are persisted back onto
// the row.
func (a *analyzer) Summarize(ctx context.Context, userID, documentID string, force bool) (SummaryResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	doc, err := a.documents.GetByID(ctx, userID, documentID)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("failed to fetch document: %w", err)
	}

	if doc.Summary != "" && !force {
		var cached Summary
		if err := json.Unmarshal([]byte(doc.Summary), &cached); err == nil {
			logger.DebugContext(ctx, "returning cached summary", "document_id", documentID)
			return SummaryResult{Summary: cached, Cached: true}, nil
		}
		// Unreadable stored summary; regenerate
		logger.WarnContext(ctx, "stored summary unreadable, regenerating", "document_id", documentID)
	}

	chunks, err := a.retriever.DocumentChunks(ctx, userID, documentID, DefaultSummaryChunkCap)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("failed to fetch chunks: %w", err)
	}
	if len(chunks) == 0 {
		return SummaryResult{}, fmt.Errorf("document has no content to summarize")
	}

	var sb strings.Builder
	for _, chunk := range chunks {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(chunk.Content)
	}
	text := truncateForAnalysis(sb.String())

	raw, err := a.completer.Complete(ctx, llm.CompletionRequest{
		System:      summarySystemPrompt,
		Prompt:      fmt.Sprintf("Summarize this document (%s):\n\n%s", doc.FileName, text),
		Temperature: 0.3,
		MaxTokens:   1500,
		JSONMode:    true,
	})
	if err != nil {
		return SummaryResult{}, fmt.Errorf("completion failed: %w", err)
	}

	var summary Summary
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &summary); err != nil {
		// List fields may degrade, but a summary without any overview text
		// is useless; treat that as a hard failure.
		overview := strings.TrimSpace(StripCodeFences(raw))
		if overview == "" {
			return SummaryResult{}, fmt.Errorf("summary response contained no usable content")
		}
		summary = Summary{Overview: overview}
	}
	if strings.TrimSpace(summary.Overview) == "" {
		return SummaryResult{}, fmt.Errorf("summary response contained no overview")
	}
	if summary.KeyFindings == nil {
		summary.KeyFindings = []string{}
	}
	if summary.Keywords == nil {
		summary.Keywords = []string{}
	}

	words := len(strings.Fields(text))
	summary.WordCount = words
	summary.PageCount = (words + wordsPerPage - 1) / wordsPerPage
	summary.ReadingTimeMinutes = (words + readingWordsPerMinute - 1) / readingWordsPerMinute

	payload, err := json.Marshal(summary)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := a.documents.UpdateSummary(ctx, userID, documentID, string(payload)); err != nil {
		return SummaryResult{}, fmt.Errorf("failed to persist summary: %w", err)
	}

	// The document changed, so every persisted analysis built over it is
	// stale now, including cross-document entries fed by the old summary.
	if err := a.results.Invalidate(ctx, []string{documentID}); err != nil {
		return SummaryResult{}, fmt.Errorf("failed to invalidate stale analyses: %w", err)
	}

	logger.InfoContext(ctx, "summary generated", "document_id", documentID, "word_count", words)
	return SummaryResult{Summary: summary, Cached: false}, nil
}

// truncateForAnalysis cuts text to the analysis length bound, marking
// the cut explicitly.
func truncateForAnalysis(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxAnalysisChars {
		return text
	}
	return string(runes[:MaxAnalysisChars]) + TruncationMarker
}
