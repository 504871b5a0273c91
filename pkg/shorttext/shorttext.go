// Package shorttext compares short snippets such as titles or sentences with
// Jaccard and cosine similarity over word n-grams.
package shorttext

import (
	"context"
	"errors"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/shorttext"
	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// Comparator scores pairs of short texts.
type Comparator struct {
	n          int
	logger     ports.Logger
	normalizer ports.Normalizer
}

// Option defines a functional option for configuring a Comparator.
type Option func(*comparatorConfig)

type comparatorConfig struct {
	NGram      int
	Logger     ports.Logger
	Normalizer ports.Normalizer
}

// WithNGram sets the n-gram order.
func WithNGram(n int) Option {
	return func(cfg *comparatorConfig) {
		cfg.NGram = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *comparatorConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(normalizer ports.Normalizer) Option {
	return func(cfg *comparatorConfig) {
		cfg.Normalizer = normalizer
	}
}

// WithOptimizedNormalizer sets the table driven normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *comparatorConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// New creates a new Comparator.
func New(opts ...Option) (*Comparator, error) {
	config := &comparatorConfig{NGram: domain.DefaultShortTextNGram}
	for _, opt := range opts {
		opt(config)
	}

	if config.NGram < 1 {
		return nil, errors.New("n-gram order must be at least 1")
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	return &Comparator{
		n:          config.NGram,
		logger:     config.Logger,
		normalizer: config.Normalizer,
	}, nil
}

// Jaccard returns the Jaccard similarity of the n-gram sets of a and b.
func (c *Comparator) Jaccard(a, b string) float64 {
	return shorttext.Jaccard(a, b, c.n, c.normalizer)
}

// Cosine returns the cosine similarity of the n-gram counts of a and b.
func (c *Comparator) Cosine(a, b string) float64 {
	return shorttext.Cosine(a, b, c.n, c.normalizer)
}

// Compare returns both scores using the configured n-gram order.
func (c *Comparator) Compare(ctx context.Context, a, b string) domain.ShortTextResult {
	return c.CompareN(ctx, a, b, c.n)
}

// CompareN returns both scores using n-grams of order n. An n below 1 scores
// 0 on both metrics.
func (c *Comparator) CompareN(ctx context.Context, a, b string, n int) domain.ShortTextResult {
	res := domain.ShortTextResult{
		Jaccard: shorttext.Jaccard(a, b, n, c.normalizer),
		Cosine:  shorttext.Cosine(a, b, n, c.normalizer),
		N:       n,
	}
	c.logger.Debug("Short text comparison",
		"n", n,
		"jaccard", res.Jaccard,
		"cosine", res.Cosine)
	return res
}
