package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextExtractor handles plain-text uploads.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract validates and normalizes plain text content.
func (e *TextExtractor) Extract(_ context.Context, data []byte, _ string) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}

	text := normalizeText(string(data))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// normalizeText normalizes line endings and trims trailing whitespace
// per line, collapsing runs of 3+ blank lines to one blank line.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	var sb strings.Builder
	blankRun := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
