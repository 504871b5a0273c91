// Package compare implements the whole-document and chunk-level comparisons.
package compare

import (
	"fmt"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/vectorspace"
)

// Global treats each document as a single unit and returns the cosine
// similarity of the two TF-IDF vectors. When either document yields no
// n-gram of order n the score is 0 and the error wraps
// domain.ErrGlobalComparison.
func Global(a, b string, n int) (float64, error) {
	space, err := vectorspace.Fit([]string{a, b}, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrGlobalComparison, err)
	}
	va, vb := space.Vectors[0], space.Vectors[1]
	if len(va) == 0 || len(vb) == 0 {
		return 0, fmt.Errorf("%w: a document has fewer than %d words", domain.ErrGlobalComparison, n)
	}
	return vectorspace.Cosine(va, vb), nil
}
