// Package warmup exercises analysis components with generated documents so
// that allocator and scheduler state is primed before real traffic arrives.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Paragraphs per generated sample document
	SampleParagraphs int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:      runtime.NumCPU(),
		Iterations:       50,
		SampleParagraphs: 12,
		Duration:         5 * time.Second,
		ForceGC:          true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	analyzers   []ports.DocumentAnalyzer
	comparators []ports.ShortTextComparator
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterAnalyzer adds a document analyzer to be warmed up
func (wm *Manager) RegisterAnalyzer(a ports.DocumentAnalyzer) {
	wm.analyzers = append(wm.analyzers, a)
}

// RegisterShortTextComparator adds a short text comparator to be warmed up
func (wm *Manager) RegisterShortTextComparator(c ports.ShortTextComparator) {
	wm.comparators = append(wm.comparators, c)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components and returns
// the number of completed rounds.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.analyzers)+len(wm.comparators)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	original := generateDocument(wm.config.SampleParagraphs, 0)
	similar := generateSimilarDocument(original, 0.2)
	different := generateDocument(wm.config.SampleParagraphs, 7)

	rounds := wm.run(warmupCtx, func(ctx context.Context, j int) {
		for _, norm := range wm.normalizers {
			_ = norm.Normalize(original)
		}
		for _, c := range wm.comparators {
			_ = c.Compare(ctx, firstParagraph(original), firstParagraph(similar))
		}
		for _, a := range wm.analyzers {
			// Alternate between similarity levels
			switch j % 3 {
			case 0:
				_, _ = a.Analyze(ctx, original, original)
			case 1:
				_, _ = a.Analyze(ctx, original, similar)
			default:
				_, _ = a.Analyze(ctx, original, different)
			}
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"rounds", rounds,
	)
	return rounds
}

// run executes round Iterations times on each of Concurrency goroutines,
// stopping early when ctx is done.
func (wm *Manager) run(ctx context.Context, round func(ctx context.Context, j int)) int {
	if len(wm.analyzers)+len(wm.comparators)+len(wm.normalizers) == 0 {
		return 0
	}

	workers := wm.config.Concurrency
	if workers < 1 {
		workers = 1
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			done := 0
			for j := 0; j < wm.config.Iterations; j++ {
				if ctx.Err() != nil {
					break
				}
				round(ctx, j)
				done++
			}

			mu.Lock()
			total += done
			mu.Unlock()
		}()
	}

	wg.Wait()
	return total
}

var sampleWords = []string{
	"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
	"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
	"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
	"ut", "labore", "et", "dolore", "magna", "aliqua",
}

// generateDocument builds paragraphs of sample words separated by blank
// lines. offset rotates the vocabulary so documents with different offsets
// share fewer n-grams.
func generateDocument(paragraphs, offset int) string {
	if paragraphs < 1 {
		paragraphs = 1
	}
	const wordsPerParagraph = 24

	out := make([]string, paragraphs)
	for p := range out {
		var sb strings.Builder
		for w := 0; w < wordsPerParagraph; w++ {
			if w > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(sampleWords[(p*5+w*3+offset)%len(sampleWords)])
		}
		sb.WriteString(".")
		out[p] = sb.String()
	}
	return strings.Join(out, "\n\n")
}

// generateSimilarDocument replaces diffRatio of the words in every paragraph.
func generateSimilarDocument(original string, diffRatio float64) string {
	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	paragraphs := strings.Split(original, "\n\n")
	for i, p := range paragraphs {
		words := strings.Fields(p)
		changeCount := int(float64(len(words)) * diffRatio)
		for k := 0; k < changeCount && k < len(words); k++ {
			words[k] = replacements[(i+k)%len(replacements)]
		}
		paragraphs[i] = strings.Join(words, " ")
	}
	return strings.Join(paragraphs, "\n\n")
}

func firstParagraph(doc string) string {
	p, _, _ := strings.Cut(doc, "\n\n")
	return p
}
