// Package shorttext scores short snippets with Jaccard and cosine similarity
// over plain word n-grams.
package shorttext

import (
	"math"
	"strings"

	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// NGrams normalizes text, splits it on whitespace and returns every run of n
// consecutive words joined by a space, duplicates included.
func NGrams(text string, n int, norm ports.Normalizer) []string {
	if n < 1 {
		return nil
	}
	words := strings.Fields(norm.Normalize(text))
	if len(words) < n {
		return nil
	}
	grams := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		grams = append(grams, strings.Join(words[i:i+n], " "))
	}
	return grams
}

// Jaccard returns |A∩B| / |A∪B| over the n-gram sets of a and b, or 0 when
// both sets are empty.
func Jaccard(a, b string, n int, norm ports.Normalizer) float64 {
	setA := toSet(NGrams(a, n, norm))
	setB := toSet(NGrams(b, n, norm))

	inter := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Cosine returns the cosine similarity of the raw n-gram count vectors of a
// and b, or 0 when either has no n-gram.
func Cosine(a, b string, n int, norm ports.Normalizer) float64 {
	countA := toCounts(NGrams(a, n, norm))
	countB := toCounts(NGrams(b, n, norm))
	if len(countA) == 0 || len(countB) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for g, ca := range countA {
		if cb, ok := countB[g]; ok {
			dot += float64(ca * cb)
		}
		magA += float64(ca * ca)
	}
	for _, cb := range countB {
		magB += float64(cb * cb)
	}

	sim := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	return math.Min(sim, 1)
}

func toSet(grams []string) map[string]struct{} {
	set := make(map[string]struct{}, len(grams))
	for _, g := range grams {
		set[g] = struct{}{}
	}
	return set
}

func toCounts(grams []string) map[string]int {
	counts := make(map[string]int, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	return counts
}
