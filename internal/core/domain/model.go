package domain

import "fmt"

// Default analysis parameters.
const (
	DefaultNGram    = 2
	DefaultMinChars = 30
	DefaultTopN     = 3

	// DefaultShortTextNGram is the n-gram order used for snippet comparison.
	DefaultShortTextNGram = 1
)

// Params holds the numeric knobs of a document analysis.
type Params struct {
	N        int
	MinChars int
	TopN     int
}

// DefaultParams returns the default analysis parameters.
func DefaultParams() Params {
	return Params{
		N:        DefaultNGram,
		MinChars: DefaultMinChars,
		TopN:     DefaultTopN,
	}
}

// Validate checks if the parameters are usable.
func (p Params) Validate() error {
	if p.N < 1 {
		return fmt.Errorf("n must be at least 1, got %d: %w", p.N, ErrInvalidParams)
	}
	if p.MinChars < 0 {
		return fmt.Errorf("min_chars must not be negative, got %d: %w", p.MinChars, ErrInvalidParams)
	}
	if p.TopN < 0 {
		return fmt.Errorf("top_n must not be negative, got %d: %w", p.TopN, ErrInvalidParams)
	}
	return nil
}

// Matrix holds pairwise similarities: rows are chunks of document A, columns
// are chunks of document B.
type Matrix [][]float64

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Empty reports whether the matrix has no cells.
func (m Matrix) Empty() bool {
	return m.Rows() == 0 || m.Cols() == 0
}

// Transpose returns a new matrix with rows and columns swapped.
func (m Matrix) Transpose() Matrix {
	if m.Empty() {
		return Matrix{}
	}
	out := make(Matrix, m.Cols())
	for j := range out {
		out[j] = make([]float64, m.Rows())
		for i := range m {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// SimilarPair is one ranked chunk pair. Indexes are 1-based.
type SimilarPair struct {
	Rank     int
	Score    float64
	IndexA   int
	IndexB   int
	SnippetA string
	SnippetB string
}

// ChunkedResult is the outcome of the chunk-level comparison.
type ChunkedResult struct {
	Score   float64
	Matrix  Matrix
	ChunksA []string
	ChunksB []string
}

// Result holds the outcome of a full document analysis.
type Result struct {
	GlobalScore  float64
	ChunkedScore float64
	MatrixRows   int
	MatrixCols   int
	Pairs        []SimilarPair
	// Warning joins every non-fatal problem met along the way.
	Warning string
	// Fatal marks a result that must not be presented as a score.
	Fatal   bool
	Details map[string]interface{}
}

// ShortTextResult holds both snippet similarity scores.
type ShortTextResult struct {
	Jaccard float64
	Cosine  float64
	N       int
}
