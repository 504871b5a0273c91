// Package rank extracts the most similar chunk pairs from a similarity matrix.
package rank

import (
	"container/heap"
	"sort"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

const (
	// MinScore is the score below which a pair is not considered similar.
	MinScore = 0.0001

	// SnippetRunes is how many runes of a chunk a snippet keeps.
	SnippetRunes = 150

	ellipsis = "..."
)

type cell struct {
	flat  int
	score float64
}

// less orders cells by ascending score, then by descending flat index, so the
// heap root is always the weakest candidate.
func less(a, b cell) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.flat > b.flat
}

type minHeap []cell

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return less(h[i], h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(cell)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// TopPairs returns at most topN pairs ordered by descending score. Only the
// candidates are sorted; the matrix is scanned once through a bounded heap.
// Pairs scoring below MinScore are dropped. chunksA and chunksB must match
// the matrix rows and columns.
func TopPairs(m domain.Matrix, chunksA, chunksB []string, topN int) []domain.SimilarPair {
	if m.Empty() || topN <= 0 {
		return []domain.SimilarPair{}
	}

	cols := m.Cols()
	k := min(topN, m.Rows()*cols)

	h := make(minHeap, 0, k)
	for i, row := range m {
		for j, v := range row {
			c := cell{flat: i*cols + j, score: v}
			if h.Len() < k {
				heap.Push(&h, c)
				continue
			}
			if less(h[0], c) {
				h[0] = c
				heap.Fix(&h, 0)
			}
		}
	}

	candidates := []cell(h)
	sort.Slice(candidates, func(i, j int) bool { return less(candidates[j], candidates[i]) })

	pairs := make([]domain.SimilarPair, 0, len(candidates))
	for i, c := range candidates {
		if c.score < MinScore {
			break
		}
		row, col := c.flat/cols, c.flat%cols
		pairs = append(pairs, domain.SimilarPair{
			Rank:     i + 1,
			Score:    c.score,
			IndexA:   row + 1,
			IndexB:   col + 1,
			SnippetA: Snippet(chunksA[row]),
			SnippetB: Snippet(chunksB[col]),
		})
	}
	return pairs
}

// Snippet returns the first SnippetRunes runes of text followed by an
// ellipsis. The ellipsis is appended even when nothing was cut.
func Snippet(text string) string {
	n := 0
	for i := range text {
		if n == SnippetRunes {
			return text[:i] + ellipsis
		}
		n++
	}
	return text + ellipsis
}
