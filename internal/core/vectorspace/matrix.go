package vectorspace

import (
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

// Cosine returns the cosine similarity of u and v clamped to [0, 1].
// Zero vectors have similarity 0 with everything.
func Cosine(u, v Vector) float64 {
	nu, nv := u.Norm(), v.Norm()
	if nu == 0 || nv == 0 {
		return 0
	}
	return clamp01(u.Dot(v) / (nu * nv))
}

// CompareUnits fits a single space over a followed by b, splits the rows back
// at len(a) and returns the cosine similarity of every row of a against every
// row of b. Either side empty gives an empty matrix.
func CompareUnits(a, b []string, n int) (domain.Matrix, error) {
	if len(a) == 0 || len(b) == 0 {
		return domain.Matrix{}, nil
	}

	corpus := make([]string, 0, len(a)+len(b))
	corpus = append(corpus, a...)
	corpus = append(corpus, b...)

	space, err := Fit(corpus, n)
	if err != nil {
		return nil, err
	}

	split := len(a)
	return CosineMatrix(space.Vectors[:split], space.Vectors[split:]), nil
}

// CosineMatrix computes the full rows-by-cols cosine matrix.
func CosineMatrix(rows, cols []Vector) domain.Matrix {
	m := make(domain.Matrix, len(rows))
	for i, r := range rows {
		m[i] = make([]float64, len(cols))
		for j, c := range cols {
			m[i][j] = Cosine(r, c)
		}
	}
	return m
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
