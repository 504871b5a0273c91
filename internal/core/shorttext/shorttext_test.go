package shorttext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/normalizer"
)

var norm = normalizer.NewDefaultNormalizer()

func TestNGrams(t *testing.T) {
	assert.Equal(t, []string{"hello world", "world again"}, NGrams("Hello, World! again", 2, norm))
	assert.Equal(t, []string{"dont", "stop"}, NGrams("Don't stop.", 1, norm))
	assert.Nil(t, NGrams("one", 2, norm))
	assert.Nil(t, NGrams("one two", 0, norm))
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		n    int
		want float64
	}{
		{"identical", "the quick brown fox", "the quick brown fox", 1, 1},
		{"case and punctuation insensitive", "The quick, brown fox!", "the quick brown fox", 2, 1},
		{"disjoint", "alpha beta", "gamma delta", 1, 0},
		// {a b c} vs {b c d}: 2 shared of 4
		{"half overlap", "a b c", "b c d", 1, 0.5},
		{"duplicates ignored", "a a a b", "a b", 1, 1},
		{"shorter than n", "one", "one", 2, 0},
		{"both empty", "", "", 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Jaccard(tc.a, tc.b, tc.n, norm)
			assert.InDelta(t, tc.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		n    int
		want float64
	}{
		{"identical", "to be or not to be", "to be or not to be", 1, 1},
		{"disjoint", "alpha beta", "gamma delta", 1, 0},
		// counts {a:2, b:1} vs {a:1}: 2 / (sqrt(5) * 1)
		{"uses raw counts", "a a b", "a", 1, 0.894427190999916},
		{"shorter than n", "one two", "one two", 3, 0},
		{"one side empty", "", "words here", 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Cosine(tc.a, tc.b, tc.n, norm), 1e-12)
		})
	}
}
