package indexer

import (
	"strings"
	"unicode"
)

const (
	// DefaultTargetTokens bounds the token count of a single chunk.
	DefaultTargetTokens = 1200
	// DefaultOverlapTokens is the token overlap carried between
	// consecutive chunks to preserve cross-boundary context.
	DefaultOverlapTokens = 150
)

// separators is the split priority: paragraph break, line break,
// sentence end, word boundary, then hard character split.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// TokenChunker splits normalized document text into overlapping,
// token-bounded chunks with stable indices. Chunking is a pure function
// of its input: the same text always yields the same chunks.
type TokenChunker struct {
	targetTokens  int
	overlapTokens int
}

// NewTokenChunker creates a chunker with the given token target and
// overlap. Non-positive values fall back to the defaults; the overlap is
// capped below the target.
func NewTokenChunker(targetTokens, overlapTokens int) *TokenChunker {
	if targetTokens <= 0 {
		targetTokens = DefaultTargetTokens
	}
	if overlapTokens < 0 {
		overlapTokens = DefaultOverlapTokens
	}
	if overlapTokens >= targetTokens {
		overlapTokens = targetTokens / 4
	}
	return &TokenChunker{
		targetTokens:  targetTokens,
		overlapTokens: overlapTokens,
	}
}

// Chunk splits text into ordered chunks. Empty or whitespace-only input
// yields an empty slice, not an error. Every returned chunk has
// non-empty trimmed content and indices run contiguously from zero.
func (c *TokenChunker) Chunk(text string) []Chunk {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []Chunk{}
	}

	fragments := c.split(trimmed, 0)

	chunks := make([]Chunk, 0, len(fragments))
	prev := ""
	for _, fragment := range fragments {
		content := strings.TrimSpace(fragment)
		if content == "" {
			// Degenerate all-whitespace piece; indices are renumbered below
			continue
		}

		if prev != "" && c.overlapTokens > 0 {
			overlap := tailByTokens(prev, c.overlapTokens)
			if overlap != "" {
				content = overlap + "\n" + content
			}
		}
		prev = strings.TrimSpace(fragment)

		chunks = append(chunks, Chunk{
			Index:      len(chunks),
			Content:    content,
			TokenCount: CountTokens(content),
		})
	}

	return chunks
}

// split recursively divides text into fragments whose token counts do
// not exceed the target, trying coarser separators first.
func (c *TokenChunker) split(text string, sepIdx int) []string {
	if CountTokens(text) <= c.targetTokens {
		return []string{text}
	}
	if sepIdx >= len(separators) || separators[sepIdx] == "" {
		return c.hardSplit(text)
	}

	sep := separators[sepIdx]
	pieces := strings.SplitAfter(text, sep)
	if len(pieces) == 1 {
		// Separator absent; fall through to the next one
		return c.split(text, sepIdx+1)
	}

	var fragments []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			fragments = append(fragments, current.String())
			current.Reset()
		}
	}

	for _, piece := range pieces {
		if CountTokens(piece) > c.targetTokens {
			// A single piece is itself too big; split it finer
			flush()
			fragments = append(fragments, c.split(piece, sepIdx+1)...)
			continue
		}
		if current.Len() > 0 && CountTokens(current.String())+CountTokens(piece) > c.targetTokens {
			flush()
		}
		current.WriteString(piece)
	}
	flush()

	return fragments
}

// hardSplit cuts text into fixed-size rune windows. Last resort for
// text with no usable separators.
func (c *TokenChunker) hardSplit(text string) []string {
	window := tokensToRunes(c.targetTokens)
	runes := []rune(text)

	var fragments []string
	for start := 0; start < len(runes); start += window {
		end := start + window
		if end > len(runes) {
			end = len(runes)
		}
		fragments = append(fragments, string(runes[start:end]))
	}
	return fragments
}

// tailByTokens returns the trailing portion of text worth roughly the
// given token budget, snapped forward to a word boundary.
func tailByTokens(text string, tokens int) string {
	runes := []rune(text)
	budget := tokensToRunes(tokens)
	if len(runes) <= budget {
		return text
	}

	start := len(runes) - budget
	// Snap to the next word boundary so the overlap starts on a whole word
	for start < len(runes) && !unicode.IsSpace(runes[start]) {
		start++
	}
	return strings.TrimSpace(string(runes[start:]))
}
