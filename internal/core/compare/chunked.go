package compare

import (
	"errors"
	"fmt"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/aggregate"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/chunk"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/vectorspace"
)

// Chunked splits both documents into chunks, compares every chunk of a with
// every chunk of b in a jointly fitted space and aggregates the matrix.
//
// A chunking failure on either side returns an error wrapping
// domain.ErrUnchunkable and no result. Every other failure is advisory: the
// result carries a zero score and an empty matrix.
func Chunked(a, b string, n, minChars int) (domain.ChunkedResult, error) {
	chunksA, errA := chunk.Split(a, minChars)
	chunksB, errB := chunk.Split(b, minChars)
	if errA != nil || errB != nil {
		return domain.ChunkedResult{Matrix: domain.Matrix{}}, errors.Join(
			domain.ErrUnchunkable,
			sideError("document A", errA),
			sideError("document B", errB),
		)
	}

	res := domain.ChunkedResult{
		Matrix:  domain.Matrix{},
		ChunksA: chunksA,
		ChunksB: chunksB,
	}

	switch {
	case len(chunksA) == 0 && len(chunksB) == 0:
		return res, fmt.Errorf("documents A and B: %w", domain.ErrEmptyDocument)
	case len(chunksA) == 0:
		return res, fmt.Errorf("document A: %w", domain.ErrEmptyDocument)
	case len(chunksB) == 0:
		return res, fmt.Errorf("document B: %w", domain.ErrEmptyDocument)
	}

	m, err := vectorspace.CompareUnits(chunksA, chunksB, n)
	if err != nil {
		return res, fmt.Errorf("%w: %w", domain.ErrChunkedComparison, err)
	}

	res.Matrix = m
	res.Score = aggregate.BestMatch(m)
	return res, nil
}

func sideError(side string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", side, err)
}
