// Package vectorspace builds a shared TF-IDF space over word n-grams and
// computes cosine similarities inside it.
package vectorspace

import (
	"fmt"
	"math"
	"sort"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

// Entry is one non-zero coordinate of a sparse vector.
type Entry struct {
	Index  int
	Weight float64
}

// Vector is a sparse vector with entries sorted by Index.
type Vector []Entry

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of v and w.
func (v Vector) Dot(w Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(w) {
		switch {
		case v[i].Index == w[j].Index:
			sum += v[i].Weight * w[j].Weight
			i++
			j++
		case v[i].Index < w[j].Index:
			i++
		default:
			j++
		}
	}
	return sum
}

// Space is a TF-IDF vector space fitted over a list of text units.
type Space struct {
	// Vocabulary maps an n-gram term to its column.
	Vocabulary map[string]int
	// IDF holds the inverse document frequency of every column.
	IDF []float64
	// Vectors holds one L2-normalised row per unit, in input order.
	Vectors []Vector
	N       int
}

// Fit builds one vocabulary over all units and returns their TF-IDF vectors.
// Weights are raw counts times the smoothed idf ln((1+N)/(1+df))+1, and each
// row is L2-normalised. A unit with no n-gram becomes a zero vector.
func Fit(units []string, n int) (*Space, error) {
	if n < 1 {
		return nil, fmt.Errorf("fit vector space: %w", domain.ErrInvalidNGram)
	}

	vocab := make(map[string]int)
	counts := make([]map[int]int, len(units))
	var df []int

	for u, text := range units {
		row := make(map[int]int)
		for _, gram := range NGrams(Tokenize(text), n) {
			idx, ok := vocab[gram]
			if !ok {
				idx = len(vocab)
				vocab[gram] = idx
				df = append(df, 0)
			}
			if row[idx] == 0 {
				df[idx]++
			}
			row[idx]++
		}
		counts[u] = row
	}

	if len(vocab) == 0 {
		return nil, fmt.Errorf("fit vector space over %d units with n=%d: %w", len(units), n, domain.ErrEmptyVocabulary)
	}

	total := float64(len(units))
	idf := make([]float64, len(df))
	for i, d := range df {
		idf[i] = math.Log((1+total)/(1+float64(d))) + 1
	}

	vectors := make([]Vector, len(units))
	for u, row := range counts {
		vec := make(Vector, 0, len(row))
		for idx, c := range row {
			vec = append(vec, Entry{Index: idx, Weight: float64(c) * idf[idx]})
		}
		sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })
		if norm := vec.Norm(); norm > 0 {
			for i := range vec {
				vec[i].Weight /= norm
			}
		}
		vectors[u] = vec
	}

	return &Space{
		Vocabulary: vocab,
		IDF:        idf,
		Vectors:    vectors,
		N:          n,
	}, nil
}
