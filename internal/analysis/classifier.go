package analysis

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_classifier.go -package=mocks documind/internal/analysis Classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"documind/internal/cache"
	"documind/internal/contextutil"
	"documind/internal/llm"
)

// RejectionConfidenceBar is the minimum classifier confidence required
// to reject a non-technical document. Below it, classification fails
// open: a low-confidence "non-technical" verdict is treated as
// acceptable rather than risking a false rejection.
const RejectionConfidenceBar = 0.7

// classifierSampleChars bounds how much document text the gate reads.
const classifierSampleChars = 4000

// Classifier decides whether an uploaded document is technical in
// domain before heavy ingestion work is spent on it.
type Classifier interface {
	// Classify never returns an error: a classifier failure or
	// unparseable verdict fails open as technical with zero confidence.
	Classify(ctx context.Context, text string) Classification
	// ShouldReject reports whether the verdict clears the rejection bar.
	ShouldReject(c Classification) bool
}

// llmClassifier implements Classifier with a lightweight completion
// call. Verdicts are memoized by content hash, so re-uploading the same
// bytes does not spend another model call.
type llmClassifier struct {
	completer Completer
	verdicts  *cache.Memo
}

// NewClassifier creates a new Classifier. verdicts may be nil to
// disable memoization.
func NewClassifier(completer Completer, verdicts *cache.Memo) Classifier {
	return &llmClassifier{completer: completer, verdicts: verdicts}
}

const classifierSystemPrompt = `You are a document classifier. Decide whether a document is technical in nature (software, engineering, science, data, infrastructure, or similar professional technical content). Respond with a JSON object: {"is_technical": true|false, "confidence": 0.0-1.0}. Respond with JSON only.`

// Classify runs the document-type gate over a sample of the text.
func (c *llmClassifier) Classify(ctx context.Context, text string) Classification {
	logger := contextutil.LoggerFromContext(ctx)

	sample := text
	if len([]rune(sample)) > classifierSampleChars {
		sample = string([]rune(sample)[:classifierSampleChars])
	}

	key := ""
	if c.verdicts != nil {
		digest := sha256.Sum256([]byte(sample))
		key = hex.EncodeToString(digest[:])
		if v, ok := c.verdicts.Get(key); ok {
			if verdict, ok := v.(Classification); ok {
				logger.DebugContext(ctx, "classifier verdict memoized", "is_technical", verdict.IsTechnical)
				return verdict
			}
		}
	}

	raw, err := c.completer.Complete(ctx, llm.CompletionRequest{
		System:      classifierSystemPrompt,
		Prompt:      sample,
		Temperature: 0,
		MaxTokens:   100,
		JSONMode:    true,
	})
	if err != nil {
		logger.WarnContext(ctx, "classifier call failed, failing open", "error", err)
		return Classification{IsTechnical: true, Confidence: 0}
	}

	var verdict struct {
		IsTechnical *bool           `json:"is_technical"`
		Confidence  json.RawMessage `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &verdict); err != nil || verdict.IsTechnical == nil {
		logger.WarnContext(ctx, "classifier verdict unparseable, failing open", "raw", raw)
		return Classification{IsTechnical: true, Confidence: 0}
	}

	result := Classification{
		IsTechnical: *verdict.IsTechnical,
		Confidence:  NormalizeConfidence(decodeConfidence(verdict.Confidence)),
	}
	// Only parsed verdicts are memoized; fail-open results stay
	// transient so a recovered classifier gets asked again.
	if c.verdicts != nil {
		c.verdicts.Set(key, result)
	}
	return result
}

// ShouldReject reports whether the verdict clears the rejection bar.
// Rejection requires both a non-technical verdict and high confidence.
func (c *llmClassifier) ShouldReject(verdict Classification) bool {
	return !verdict.IsTechnical && verdict.Confidence > RejectionConfidenceBar
}
