package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// DefaultNormalizer lowercases text and deletes punctuation and symbols.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize converts the input text to lower case and removes punctuation, so
// "don't" becomes "dont" rather than two words.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if isStripped(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isStripped(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
