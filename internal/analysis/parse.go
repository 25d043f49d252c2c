package analysis

import (
	"encoding/json"
	"strings"
)

// StripCodeFences removes a Markdown code fence wrapper (``` or
// ```json) from model output, if present. Models wrap JSON in fences
// often enough that parsing has to tolerate it.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop a language tag on the opening fence ("json", "JSON", ...)
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		firstLine := strings.TrimSpace(trimmed[:i])
		if firstLine == "" || isFenceLanguage(firstLine) {
			trimmed = trimmed[i+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func isFenceLanguage(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// parseInsights parses model output into insights, tolerantly: the
// payload may be a bare array or an object carrying an "insights"
// array, with or without code fences. Anything else yields zero
// insights rather than an error; model output variance is expected
// here and silently degrading the list is the chosen resilience policy.
func parseInsights(raw string) []Insight {
	payload := StripCodeFences(raw)
	if payload == "" {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		var wrapper struct {
			Insights []json.RawMessage `json:"insights"`
		}
		if err := json.Unmarshal([]byte(payload), &wrapper); err != nil {
			return nil
		}
		items = wrapper.Insights
	}

	insights := make([]Insight, 0, len(items))
	for _, item := range items {
		var parsed struct {
			Category    string          `json:"category"`
			Title       string          `json:"title"`
			Description string          `json:"description"`
			Confidence  json.RawMessage `json:"confidence"`
		}
		if err := json.Unmarshal(item, &parsed); err != nil {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(parsed.Category))
		// Legacy category from an older prompt version; never surfaced
		if category == "correlation" {
			continue
		}
		if parsed.Title == "" && parsed.Description == "" {
			continue
		}
		insights = append(insights, Insight{
			Category:    category,
			Title:       parsed.Title,
			Description: parsed.Description,
			Confidence:  NormalizeConfidence(decodeConfidence(parsed.Confidence)),
		})
	}
	return insights
}

// decodeConfidence decodes a raw JSON confidence value that may be a
// number, a quoted label, or absent.
func decodeConfidence(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// rawFinding is the duck-typed shape validation findings arrive in.
type rawFinding struct {
	Description string          `json:"description"`
	Excerpt     string          `json:"excerpt"`
	Confidence  json.RawMessage `json:"confidence"`
}
