package indexer

import "unicode/utf8"

// charsPerToken is the rune-to-token ratio of the approximation.
// Roughly four characters per token holds for English prose across the
// common embedding and chat tokenizers; the count is advisory, so a
// cheap heuristic beats shipping a tokenizer model. The estimate is
// monotonic with text length and consistent across calls.
const charsPerToken = 4

// CountTokens returns the approximate token count of s.
func CountTokens(s string) int {
	runes := utf8.RuneCountInString(s)
	if runes == 0 {
		return 0
	}
	return (runes + charsPerToken - 1) / charsPerToken
}

// tokensToRunes converts a token budget to its rune equivalent.
func tokensToRunes(tokens int) int {
	return tokens * charsPerToken
}
