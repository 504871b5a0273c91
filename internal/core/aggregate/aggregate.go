// Package aggregate reduces a similarity matrix to one score.
package aggregate

import "github.com/baditaflorin/go_ngram_similarity/internal/core/domain"

// BestMatch averages the mean best match of every row with the mean best
// match of every column, so BestMatch(m) == BestMatch(m.Transpose()).
// An empty matrix scores exactly 0.
func BestMatch(m domain.Matrix) float64 {
	if m.Empty() {
		return 0
	}

	rows, cols := m.Rows(), m.Cols()
	colMax := make([]float64, cols)
	copy(colMax, m[0])

	var rowSum float64
	for _, row := range m {
		best := row[0]
		for j, v := range row {
			if v > best {
				best = v
			}
			if v > colMax[j] {
				colMax[j] = v
			}
		}
		rowSum += best
	}

	var colSum float64
	for _, v := range colMax {
		colSum += v
	}

	return (rowSum/float64(rows) + colSum/float64(cols)) / 2
}
