// Package ngramsimilarity measures how lexically similar two documents are.
//
// Both documents are turned into n-gram TF-IDF vectors over a shared
// vocabulary. The global score compares the documents as a whole; the
// chunked score splits them into paragraphs, compares every paragraph of one
// with every paragraph of the other and averages the best matches in both
// directions. The most similar paragraph pairs are reported with snippets.
//
// Short snippets such as titles are better served by CompareShort, which
// uses plain Jaccard and cosine similarity over word n-grams.
package ngramsimilarity

import (
	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/analysis"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/shorttext"
)

type (
	// Result holds the outcome of a document analysis.
	Result = domain.Result
	// SimilarPair is one ranked paragraph pair.
	SimilarPair = domain.SimilarPair
	// ShortTextResult holds both snippet similarity scores.
	ShortTextResult = domain.ShortTextResult
)

// Config holds configuration options for the similarity metrics.
type Config struct {
	NGram    int
	MinChars int
	TopN     int
	// ShortTextNGram is the n-gram order of CompareShort.
	ShortTextNGram int
	// Logger for tracing computation steps.
	Logger l.Logger
}

// Option defines a functional option for configuring the metrics.
type Option func(*Config)

// WithNGram sets the n-gram order of the document analysis.
func WithNGram(n int) Option {
	return func(cfg *Config) {
		cfg.NGram = n
	}
}

// WithMinChars sets the minimum paragraph length.
func WithMinChars(minChars int) Option {
	return func(cfg *Config) {
		cfg.MinChars = minChars
	}
}

// WithTopN sets how many paragraph pairs are reported.
func WithTopN(topN int) Option {
	return func(cfg *Config) {
		cfg.TopN = topN
	}
}

// WithShortTextNGram sets the n-gram order of CompareShort.
func WithShortTextNGram(n int) Option {
	return func(cfg *Config) {
		cfg.ShortTextNGram = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// Similarity computes document and snippet similarity with fixed settings.
type Similarity struct {
	config Config
}

// New creates a new Similarity with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) *Similarity {
	cfg := Config{
		NGram:          domain.DefaultNGram,
		MinChars:       domain.DefaultMinChars,
		TopN:           domain.DefaultTopN,
		ShortTextNGram: domain.DefaultShortTextNGram,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		logger, err := createDefaultLogger()
		if err != nil {
			panic(err)
		}
		cfg.Logger = logger
	}
	return &Similarity{config: cfg}
}

// Analyze compares docA with docB. Invalid settings are reported in the
// result Warning with Fatal set.
func (s *Similarity) Analyze(docA, docB string) Result {
	p := domain.Params{N: s.config.NGram, MinChars: s.config.MinChars, TopN: s.config.TopN}
	if err := p.Validate(); err != nil {
		s.config.Logger.Error("Invalid analysis parameters", "error", err)
		return Result{Pairs: []SimilarPair{}, Warning: err.Error(), Fatal: true}
	}

	s.config.Logger.Info("Starting document analysis",
		"len_a", len(docA),
		"len_b", len(docB),
		"n", p.N,
	)
	res := analysis.Run(docA, docB, p)
	s.config.Logger.Info("Computed document similarity",
		"global_score", res.GlobalScore,
		"chunked_score", res.ChunkedScore,
		"pairs", len(res.Pairs),
		"warning", res.Warning,
	)
	return res
}

// CompareShort scores two short snippets.
func (s *Similarity) CompareShort(textA, textB string) ShortTextResult {
	norm := normalizer.NewDefaultNormalizer()
	n := s.config.ShortTextNGram
	res := ShortTextResult{
		Jaccard: shorttext.Jaccard(textA, textB, n, norm),
		Cosine:  shorttext.Cosine(textA, textB, n, norm),
		N:       n,
	}
	s.config.Logger.Info("Computed short text similarity",
		"jaccard", res.Jaccard,
		"cosine", res.Cosine,
	)
	return res
}

// AnalyzeWithDefaults compares two documents using the default settings:
// bigrams, paragraphs of at least 30 characters and the top 3 pairs.
func AnalyzeWithDefaults(docA, docB string) Result {
	return New().Analyze(docA, docB)
}

// CompareShortWithDefaults scores two snippets over single words.
func CompareShortWithDefaults(textA, textB string) ShortTextResult {
	return New().CompareShort(textA, textB)
}
