package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RemoteExtractor calls an external text-extraction service for formats
// that need real parsing (PDF, DOCX). The service reports failures
// descriptively ("too many pages", "encrypted", "no extractable text")
// and those messages are passed through verbatim.
type RemoteExtractor struct {
	BaseURL string
	client  *http.Client
}

// NewRemoteExtractor creates a new RemoteExtractor.
func NewRemoteExtractor(baseURL string) *RemoteExtractor {
	return &RemoteExtractor{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// extractRequest represents the request payload for the extraction service.
type extractRequest struct {
	Data     string `json:"data"` // base64-encoded file bytes
	MimeType string `json:"mime_type"`
}

// extractResponse represents the response from the extraction service.
type extractResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Extract sends the file to the extraction service and returns its text.
func (e *RemoteExtractor) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	url := fmt.Sprintf("%s/v1/extract", e.BaseURL)

	payload := extractRequest{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var extracted extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&extracted); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if extracted.Error != "" {
		return "", fmt.Errorf("extraction failed: %s", extracted.Error)
	}

	text := normalizeText(extracted.Text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
