// Package analysis is the public entry point for comparing two documents
// with n-gram TF-IDF vectors, both as a whole and paragraph by paragraph.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/baditaflorin/l"
	"golang.org/x/sync/semaphore"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/cache"
	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/logger"
	coreanalysis "github.com/baditaflorin/go_ngram_similarity/internal/core/analysis"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/chunk"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/compare"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/rank"
	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
	"github.com/baditaflorin/go_ngram_similarity/internal/warmup"
)

type (
	// Result holds the outcome of a full analysis.
	Result = domain.Result
	// ChunkedResult holds the chunk matrix and its aggregate score.
	ChunkedResult = domain.ChunkedResult
	// SimilarPair is one ranked chunk pair.
	SimilarPair = domain.SimilarPair
	// Params holds the per-call analysis parameters.
	Params = domain.Params
	// Matrix holds chunk-to-chunk similarities.
	Matrix = domain.Matrix
)

// Config holds the settings of an Analyzer.
type Config struct {
	NGram    int
	MinChars int
	TopN     int

	// CacheSize is the number of results kept in memory; 0 disables caching.
	CacheSize int
	// MaxConcurrent bounds the analyses running at the same time.
	MaxConcurrent int64
	// Timeout bounds a single Analyze call; 0 means no limit beyond ctx.
	Timeout time.Duration

	Logger ports.Logger

	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		NGram:         domain.DefaultNGram,
		MinChars:      domain.DefaultMinChars,
		TopN:          domain.DefaultTopN,
		MaxConcurrent: int64(runtime.NumCPU()),
		WarmUpConfig:  warmup.DefaultWarmupConfig(),
	}
}

// Params returns the analysis parameters of the configuration.
func (c Config) Params() domain.Params {
	return domain.Params{N: c.NGram, MinChars: c.MinChars, TopN: c.TopN}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return errors.New("cache size must not be negative")
	}
	if c.MaxConcurrent < 1 {
		return errors.New("max concurrent analyses must be at least 1")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Option defines a functional option for configuring an Analyzer.
type Option func(*Config)

// WithNGram sets the n-gram order.
func WithNGram(n int) Option {
	return func(cfg *Config) {
		cfg.NGram = n
	}
}

// WithMinChars sets the minimum chunk length in characters.
func WithMinChars(minChars int) Option {
	return func(cfg *Config) {
		cfg.MinChars = minChars
	}
}

// WithTopN sets how many chunk pairs are reported.
func WithTopN(topN int) Option {
	return func(cfg *Config) {
		cfg.TopN = topN
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithCacheSize enables an LRU cache of the given number of results.
func WithCacheSize(size int) Option {
	return func(cfg *Config) {
		cfg.CacheSize = size
	}
}

// WithMaxConcurrent bounds how many analyses run at the same time.
func WithMaxConcurrent(n int64) Option {
	return func(cfg *Config) {
		cfg.MaxConcurrent = n
	}
}

// WithTimeout bounds every Analyze call.
func WithTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.Timeout = d
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *Config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *Config) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// Analyzer compares documents. It is safe for concurrent use.
type Analyzer struct {
	params  domain.Params
	logger  ports.Logger
	cache   *cache.ResultCache
	sem     *semaphore.Weighted
	timeout time.Duration
}

// New creates a new Analyzer.
func New(opts ...Option) (*Analyzer, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analyzer config: %w", err)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	a := &Analyzer{
		params:  config.Params(),
		logger:  config.Logger,
		sem:     semaphore.NewWeighted(config.MaxConcurrent),
		timeout: config.Timeout,
	}

	if config.CacheSize > 0 {
		c, err := cache.NewResultCache(config.CacheSize)
		if err != nil {
			return nil, err
		}
		a.cache = c
	}

	if config.WarmUp {
		a.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return a, nil
}

// Params returns the parameters Analyze uses.
func (a *Analyzer) Params() domain.Params {
	return a.params
}

// Analyze compares docA with docB using the configured parameters.
func (a *Analyzer) Analyze(ctx context.Context, docA, docB string) (domain.Result, error) {
	return a.AnalyzeWithParams(ctx, docA, docB, a.params)
}

// AnalyzeWithParams compares docA with docB using p. A fatal outcome is
// returned as a Result with Fatal set, not as an error; errors are reserved
// for invalid parameters and for ctx expiring or the analyzer timeout
// elapsing before the analysis finished.
func (a *Analyzer) AnalyzeWithParams(ctx context.Context, docA, docB string, p domain.Params) (domain.Result, error) {
	if err := p.Validate(); err != nil {
		return domain.Result{}, err
	}

	var key string
	if a.cache != nil {
		key = cache.Key(p, docA, docB)
		if res, ok := a.cache.Get(key); ok {
			a.logger.Debug("Analysis cache hit", "key", key[:12])
			return res, nil
		}
	}

	res, err := a.run(ctx, docA, docB, p)
	if err != nil {
		return domain.Result{}, err
	}
	if a.cache != nil {
		a.cache.Add(key, res)
	}
	return res, nil
}

// run executes one analysis in a semaphore slot, bypassing the cache.
func (a *Analyzer) run(ctx context.Context, docA, docB string, p domain.Params) (domain.Result, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if err := a.sem.Acquire(ctx, 1); err != nil {
		a.logger.Warn("Analysis slot not acquired", "error", err)
		return domain.Result{}, err
	}

	start := time.Now()
	a.logger.Debug("Starting analysis",
		"len_a", len(docA),
		"len_b", len(docB),
		"n", p.N,
		"min_chars", p.MinChars,
		"top_n", p.TopN)

	// The slot is released when the run finishes, even after the caller has
	// given up on it.
	done := make(chan domain.Result, 1)
	go func() {
		defer a.sem.Release(1)
		done <- coreanalysis.Run(docA, docB, p)
	}()

	select {
	case <-ctx.Done():
		a.logger.Warn("Analysis abandoned", "error", ctx.Err(), "elapsed", time.Since(start))
		return domain.Result{}, ctx.Err()
	case res := <-done:
		a.logger.Debug("Analysis finished",
			"global_score", res.GlobalScore,
			"chunked_score", res.ChunkedScore,
			"rows", res.MatrixRows,
			"cols", res.MatrixCols,
			"fatal", res.Fatal,
			"duration", time.Since(start))
		return res, nil
	}
}

// uncached runs analyses with the configured parameters without reading or
// filling the result cache.
type uncached struct {
	a *Analyzer
}

func (u uncached) Analyze(ctx context.Context, docA, docB string) (domain.Result, error) {
	return u.a.run(ctx, docA, docB, u.a.params)
}

// Uncached returns a view of the analyzer that always computes. Warm-up
// uses it so that synthetic documents neither hit nor pollute the cache.
func (a *Analyzer) Uncached() ports.DocumentAnalyzer {
	return uncached{a: a}
}

// CompareGlobal returns the whole-document TF-IDF cosine similarity.
func (a *Analyzer) CompareGlobal(docA, docB string) (float64, error) {
	score, err := compare.Global(docA, docB, a.params.N)
	a.logger.Debug("Global comparison", "score", score, "error", err)
	return score, err
}

// CompareChunked returns the chunk similarity matrix and its aggregate score.
func (a *Analyzer) CompareChunked(docA, docB string) (domain.ChunkedResult, error) {
	res, err := compare.Chunked(docA, docB, a.params.N, a.params.MinChars)
	a.logger.Debug("Chunked comparison",
		"score", res.Score,
		"rows", res.Matrix.Rows(),
		"cols", res.Matrix.Cols(),
		"error", err)
	return res, err
}

// Chunk splits text into the paragraphs the chunked comparison works on.
func (a *Analyzer) Chunk(text string) ([]string, error) {
	return chunk.Split(text, a.params.MinChars)
}

// RankPairs returns the best scoring chunk pairs of m.
func (a *Analyzer) RankPairs(m domain.Matrix, chunksA, chunksB []string) []domain.SimilarPair {
	return rank.TopPairs(m, chunksA, chunksB, a.params.TopN)
}

// WarmUp primes the analyzer with generated documents.
func (a *Analyzer) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	mgr := warmup.NewManager(a.logger, config)
	mgr.RegisterAnalyzer(a.Uncached())
	mgr.WarmUp(ctx)
}
