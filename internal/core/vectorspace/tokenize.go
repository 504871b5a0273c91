package vectorspace

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes is the shortest word kept as a term token.
const minTokenRunes = 2

// Tokenize lowercases text and returns its maximal runs of word characters
// (letters, numbers and underscore) that are at least two runes long.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// NGrams joins every run of n consecutive tokens with a single space.
// It returns nil when n < 1 or there are fewer than n tokens.
func NGrams(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
