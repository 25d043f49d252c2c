package analysis

import (
	"strings"
	"unicode"

	"documind/internal/retriever"
)

// Grounder reconciles a model-quoted excerpt to the source chunk that
// most plausibly supports it. It is a pluggable strategy so the
// word-overlap heuristic can be swapped for exact-match or
// embedding-similarity grounding without touching the orchestrator.
type Grounder interface {
	// Ground returns the index (within chunks) of the best supporting
	// chunk, or -1 when nothing plausibly matches.
	Ground(excerpt string, chunks []retriever.RetrievedChunk) int
}

// LexicalGrounder matches by lexical word overlap: the excerpt is
// tokenized into words longer than 3 characters and each candidate
// chunk is scored by how many of those words it contains. Deliberately
// approximate; exact span matching would miss the paraphrasing models do.
type LexicalGrounder struct{}

// NewLexicalGrounder creates a new LexicalGrounder.
func NewLexicalGrounder() *LexicalGrounder {
	return &LexicalGrounder{}
}

// Ground picks the max-scoring chunk, ties broken by earliest index.
func (g *LexicalGrounder) Ground(excerpt string, chunks []retriever.RetrievedChunk) int {
	words := significantWords(excerpt)
	if len(words) == 0 || len(chunks) == 0 {
		return -1
	}

	best := -1
	bestScore := 0
	for i, chunk := range chunks {
		content := strings.ToLower(chunk.Content)
		score := 0
		for _, word := range words {
			if strings.Contains(content, word) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// significantWords lowercases and splits the excerpt, keeping only
// words longer than 3 characters.
func significantWords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 3 {
			words = append(words, f)
		}
	}
	return words
}
