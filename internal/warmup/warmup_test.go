package warmup

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

type countingAnalyzer struct {
	calls atomic.Int64
}

func (c *countingAnalyzer) Analyze(ctx context.Context, docA, docB string) (domain.Result, error) {
	c.calls.Add(1)
	return domain.Result{}, nil
}

type countingComparator struct {
	calls atomic.Int64
}

func (c *countingComparator) Compare(ctx context.Context, textA, textB string) domain.ShortTextResult {
	c.calls.Add(1)
	return domain.ShortTextResult{}
}

func TestWarmUpRunsEveryComponent(t *testing.T) {
	log, err := logger.NewDiscardLogger()
	require.NoError(t, err)
	defer log.Close()

	analyzer := &countingAnalyzer{}
	comparator := &countingComparator{}

	mgr := NewManager(log, WarmupConfig{
		Concurrency:      3,
		Iterations:       4,
		SampleParagraphs: 2,
	})
	mgr.RegisterAnalyzer(analyzer)
	mgr.RegisterShortTextComparator(comparator)

	rounds := mgr.WarmUp(context.Background())

	assert.Equal(t, 12, rounds)
	assert.Equal(t, int64(12), analyzer.calls.Load())
	assert.Equal(t, int64(12), comparator.calls.Load())
}

func TestWarmUpStopsOnCancelledContext(t *testing.T) {
	log, err := logger.NewDiscardLogger()
	require.NoError(t, err)
	defer log.Close()

	analyzer := &countingAnalyzer{}
	mgr := NewManager(log, WarmupConfig{Concurrency: 2, Iterations: 1000, Duration: time.Minute})
	mgr.RegisterAnalyzer(analyzer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, mgr.WarmUp(ctx))
	assert.Zero(t, analyzer.calls.Load())
}

func TestWarmUpWithoutComponents(t *testing.T) {
	log, err := logger.NewDiscardLogger()
	require.NoError(t, err)
	defer log.Close()

	assert.Zero(t, NewManager(log, DefaultWarmupConfig()).WarmUp(context.Background()))
}

func TestGenerateDocument(t *testing.T) {
	doc := generateDocument(4, 0)
	paragraphs := strings.Split(doc, "\n\n")
	require.Len(t, paragraphs, 4)
	for _, p := range paragraphs {
		assert.Greater(t, len(p), domain.DefaultMinChars)
	}

	similar := generateSimilarDocument(doc, 0.25)
	assert.NotEqual(t, doc, similar)
	assert.Len(t, strings.Split(similar, "\n\n"), 4)
}
