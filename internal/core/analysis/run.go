// Package analysis runs the global and chunked comparisons together and
// assembles the final result.
package analysis

import (
	"strings"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/compare"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/rank"
)

// warningSeparator joins the messages of several non-fatal problems.
const warningSeparator = ". "

// Run compares docA with docB. A document that cannot be chunked makes the
// whole result fatal: the global score is dropped and only the joined
// message is returned. Any other problem is reported in Warning next to the
// scores.
func Run(docA, docB string, p domain.Params) domain.Result {
	var warnings []string

	globalScore, err := compare.Global(docA, docB, p.N)
	if err != nil {
		warnings = append(warnings, err.Error())
	}

	chunked, err := compare.Chunked(docA, docB, p.N, p.MinChars)
	if err != nil {
		warnings = append(warnings, err.Error())
		if domain.IsFatal(err) {
			return domain.Result{
				Pairs:   []domain.SimilarPair{},
				Warning: joinWarnings(warnings),
				Fatal:   true,
			}
		}
	}

	pairs := rank.TopPairs(chunked.Matrix, chunked.ChunksA, chunked.ChunksB, p.TopN)

	return domain.Result{
		GlobalScore:  globalScore,
		ChunkedScore: chunked.Score,
		MatrixRows:   chunked.Matrix.Rows(),
		MatrixCols:   chunked.Matrix.Cols(),
		Pairs:        pairs,
		Warning:      joinWarnings(warnings),
		Details: map[string]interface{}{
			"chunks_a":  len(chunked.ChunksA),
			"chunks_b":  len(chunked.ChunksB),
			"n":         p.N,
			"min_chars": p.MinChars,
			"top_n":     p.TopN,
		},
	}
}

func joinWarnings(warnings []string) string {
	flat := make([]string, 0, len(warnings))
	for _, w := range warnings {
		// errors.Join separates causes with newlines.
		flat = append(flat, strings.ReplaceAll(w, "\n", "; "))
	}
	return strings.Join(flat, warningSeparator)
}
