package analysis

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/warmup"
)

const (
	catDoc  = "The cat sat on the mat.\n\nThe dog ran in the park."
	birdDoc = "The cat sat on the mat.\n\nA bird flew in the sky."
)

func newTestLogger(t *testing.T) l.Logger {
	t.Helper()
	log, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     io.Discard,
		JsonFormat: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	opts = append([]Option{WithLogger(newTestLogger(t))}, opts...)
	a, err := New(opts...)
	require.NoError(t, err)
	return a
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"n zero", []Option{WithNGram(0)}},
		{"negative min chars", []Option{WithMinChars(-1)}},
		{"negative top n", []Option{WithTopN(-1)}},
		{"negative cache", []Option{WithCacheSize(-1)}},
		{"no concurrency", []Option{WithMaxConcurrent(0)}},
		{"negative timeout", []Option{WithTimeout(-time.Second)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithLogger(newTestLogger(t))}, tt.opts...)
			_, err := New(opts...)
			assert.Error(t, err)
		})
	}
}

func TestAnalyzeScenario(t *testing.T) {
	a := newTestAnalyzer(t, WithMinChars(5))

	res, err := a.Analyze(context.Background(), catDoc, birdDoc)
	require.NoError(t, err)
	require.False(t, res.Fatal)

	assert.Equal(t, 2, res.MatrixRows)
	assert.Equal(t, 2, res.MatrixCols)
	assert.Greater(t, res.ChunkedScore, 0.5)
	require.NotEmpty(t, res.Pairs)
	assert.InDelta(t, 1.0, res.Pairs[0].Score, 1e-9)
	assert.Equal(t, 1, res.Pairs[0].IndexA)
	assert.Equal(t, 1, res.Pairs[0].IndexB)
}

func TestAnalyzeWithParamsRejectsInvalid(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.AnalyzeWithParams(context.Background(), catDoc, birdDoc, domain.Params{N: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}

func TestAnalyzeFatalIsNotAnError(t *testing.T) {
	a := newTestAnalyzer(t)

	res, err := a.Analyze(context.Background(), "too short", "also short")
	require.NoError(t, err)
	assert.True(t, res.Fatal)
	assert.Contains(t, res.Warning, domain.ErrUnchunkable.Error())
}

func TestAnalyzeCacheHit(t *testing.T) {
	a := newTestAnalyzer(t, WithMinChars(5), WithCacheSize(4))

	first, err := a.Analyze(context.Background(), catDoc, birdDoc)
	require.NoError(t, err)
	assert.Equal(t, 1, a.cache.Len())

	second, err := a.Analyze(context.Background(), catDoc, birdDoc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, a.cache.Len())

	_, err = a.AnalyzeWithParams(context.Background(), catDoc, birdDoc, domain.Params{N: 1, MinChars: 5, TopN: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, a.cache.Len())
}

func TestAnalyzeTimeout(t *testing.T) {
	a := newTestAnalyzer(t, WithMaxConcurrent(1), WithTimeout(20*time.Millisecond))

	// Occupy the only slot so the call has to wait for it.
	require.NoError(t, a.sem.Acquire(context.Background(), 1))
	defer a.sem.Release(1)

	_, err := a.Analyze(context.Background(), catDoc, birdDoc)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	a := newTestAnalyzer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, catDoc, birdDoc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeConcurrent(t *testing.T) {
	a := newTestAnalyzer(t, WithMinChars(5), WithMaxConcurrent(2))

	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := a.Analyze(context.Background(), catDoc, birdDoc)
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-errs)
	}
}

func TestStepwiseMethods(t *testing.T) {
	a := newTestAnalyzer(t, WithMinChars(5), WithTopN(1))

	chunks, err := a.Chunk(catDoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"The cat sat on the mat.", "The dog ran in the park."}, chunks)

	global, err := a.CompareGlobal(catDoc, birdDoc)
	require.NoError(t, err)
	assert.Greater(t, global, 0.0)
	assert.Less(t, global, 1.0)

	chunked, err := a.CompareChunked(catDoc, birdDoc)
	require.NoError(t, err)

	pairs := a.RankPairs(chunked.Matrix, chunked.ChunksA, chunked.ChunksB)
	require.Len(t, pairs, 1)
	assert.Equal(t, 1, pairs[0].Rank)
	assert.True(t, strings.HasPrefix(pairs[0].SnippetA, "The cat sat"))
}

func TestWarmUp(t *testing.T) {
	a := newTestAnalyzer(t)

	assert.NotPanics(t, func() {
		a.WarmUp(context.Background(), warmup.WarmupConfig{
			Concurrency:      2,
			Iterations:       3,
			SampleParagraphs: 3,
		})
	})
}

func TestAnalyzeCachedResultIsIsolated(t *testing.T) {
	a := newTestAnalyzer(t, WithMinChars(5), WithCacheSize(4))

	first, err := a.Analyze(context.Background(), catDoc, birdDoc)
	require.NoError(t, err)
	require.NotEmpty(t, first.Pairs)
	wantScore := first.Pairs[0].Score

	first.Details["n"] = 99
	first.Pairs[0].Score = -1

	second, err := a.Analyze(context.Background(), catDoc, birdDoc)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Details["n"])
	assert.Equal(t, wantScore, second.Pairs[0].Score)
}

func TestWarmUpBypassesCache(t *testing.T) {
	a := newTestAnalyzer(t, WithCacheSize(16))

	a.WarmUp(context.Background(), warmup.WarmupConfig{
		Concurrency:      2,
		Iterations:       6,
		SampleParagraphs: 3,
	})

	assert.Zero(t, a.cache.Len())
}

func TestUncachedComputes(t *testing.T) {
	a := newTestAnalyzer(t, WithMinChars(5), WithCacheSize(4))

	res, err := a.Uncached().Analyze(context.Background(), catDoc, birdDoc)
	require.NoError(t, err)
	assert.Equal(t, 2, res.MatrixRows)
	assert.Zero(t, a.cache.Len())
}
