package ports

import (
	"context"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

// DocumentAnalyzer runs the full two-document analysis.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, docA, docB string) (domain.Result, error)
}

// ShortTextComparator scores two short snippets.
type ShortTextComparator interface {
	Compare(ctx context.Context, textA, textB string) domain.ShortTextResult
}
