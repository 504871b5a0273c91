package benchmark

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/vectorspace"
	"github.com/baditaflorin/go_ngram_similarity/pkg/analysis"
)

var sampleSentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"This sentence contains all letters of the English alphabet.",
	"It is commonly used for testing text processing algorithms and systems.",
	"Paragraph level comparison finds the passages two documents share.",
	"Every paragraph is weighted by how rare its word pairs are.",
	"Rare word pairs tell more about shared origin than common ones.",
}

// generateDocument creates a document of the given number of paragraphs.
// offset rotates the sentences so documents with different offsets only
// partly overlap.
func generateDocument(paragraphs, offset int) string {
	out := make([]string, paragraphs)
	for p := range out {
		var sb strings.Builder
		for s := 0; s < 3; s++ {
			if s > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(sampleSentences[(p+s+offset)%len(sampleSentences)])
		}
		out[p] = sb.String()
	}
	return strings.Join(out, "\n\n")
}

func newAnalyzer(b *testing.B, opts ...analysis.Option) *analysis.Analyzer {
	b.Helper()
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = logger.Close() })

	a, err := analysis.New(append([]analysis.Option{analysis.WithLogger(logger)}, opts...)...)
	if err != nil {
		b.Fatal(err)
	}
	return a
}

// BenchmarkNormalizers compares the performance of different normalizers
func BenchmarkNormalizers(b *testing.B) {
	smallText := generateDocument(1, 0)
	largeText := generateDocument(200, 0)

	factory := normalizer.NewNormalizerFactory()

	benchmarks := []struct {
		name     string
		normType normalizer.NormalizerType
		input    string
	}{
		{"Default-Small", normalizer.DefaultNormalizerType, smallText},
		{"Default-Large", normalizer.DefaultNormalizerType, largeText},
		{"Optimized-Small", normalizer.OptimizedNormalizerType, smallText},
		{"Optimized-Large", normalizer.OptimizedNormalizerType, largeText},
	}

	for _, bm := range benchmarks {
		norm := factory.CreateNormalizer(bm.normType)

		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))

			for i := 0; i < b.N; i++ {
				_ = norm.Normalize(bm.input)
			}
		})
	}
}

// BenchmarkFit measures building the TF-IDF space.
func BenchmarkFit(b *testing.B) {
	units := strings.Split(generateDocument(100, 0), "\n\n")

	orders := []struct {
		name string
		n    int
	}{
		{"Unigram", 1},
		{"Bigram", 2},
		{"Trigram", 3},
	}

	for _, o := range orders {
		b.Run(o.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := vectorspace.Fit(units, o.n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkAnalyze benchmarks full analyses of growing documents.
func BenchmarkAnalyze(b *testing.B) {
	sizes := []struct {
		name       string
		paragraphs int
	}{
		{"10x10", 10},
		{"50x50", 50},
		{"200x200", 200},
	}

	ctx := context.Background()
	for _, size := range sizes {
		docA := generateDocument(size.paragraphs, 0)
		docB := generateDocument(size.paragraphs, 2)

		b.Run(size.name, func(b *testing.B) {
			a := newAnalyzer(b)
			b.ReportAllocs()
			b.SetBytes(int64(len(docA) + len(docB)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := a.Analyze(ctx, docA, docB); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkAnalyzeCached measures the cache hit path.
func BenchmarkAnalyzeCached(b *testing.B) {
	docA := generateDocument(50, 0)
	docB := generateDocument(50, 2)
	a := newAnalyzer(b, analysis.WithCacheSize(8))

	ctx := context.Background()
	if _, err := a.Analyze(ctx, docA, docB); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = a.Analyze(ctx, docA, docB)
	}
}

// BenchmarkAnalyzeParallel runs analyses from many goroutines.
func BenchmarkAnalyzeParallel(b *testing.B) {
	docA := generateDocument(20, 0)
	docB := generateDocument(20, 3)
	a := newAnalyzer(b)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			_, _ = a.AnalyzeWithParams(ctx, docA, docB, domain.DefaultParams())
		}
	})
}
