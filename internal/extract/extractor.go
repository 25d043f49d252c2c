package extract

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks documind/internal/extract Extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType is returned when no extractor handles the MIME type.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrNoText is returned when a file is readable but contains no
// extractable text. Extraction never silently returns empty output.
var ErrNoText = errors.New("no extractable text")

// Extractor converts uploaded file bytes into plain text.
type Extractor interface {
	// Extract returns the plain text of the given file. Failures are
	// descriptive ("encrypted", "no extractable text"); an unreadable file
	// is an error, never an empty success.
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Dispatcher routes extraction by MIME type: plain text and Markdown are
// handled locally, PDF and DOCX by the remote extraction service.
type Dispatcher struct {
	text     *TextExtractor
	markdown *MarkdownExtractor
	remote   *RemoteExtractor
}

// NewDispatcher creates a Dispatcher. remote may be nil, in which case
// PDF/DOCX uploads are rejected as unsupported.
func NewDispatcher(remote *RemoteExtractor) *Dispatcher {
	return &Dispatcher{
		text:     NewTextExtractor(),
		markdown: NewMarkdownExtractor(),
		remote:   remote,
	}
}

// Extract routes to the extractor for the given MIME type.
func (d *Dispatcher) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	switch normalizeMIME(mimeType) {
	case "text/plain":
		return d.text.Extract(ctx, data, mimeType)
	case "text/markdown":
		return d.markdown.Extract(ctx, data, mimeType)
	case "application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword":
		if d.remote == nil {
			return "", fmt.Errorf("%w: %s (no extraction service configured)", ErrUnsupportedType, mimeType)
		}
		return d.remote.Extract(ctx, data, mimeType)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

// normalizeMIME strips parameters like "; charset=utf-8" and lowercases.
func normalizeMIME(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
