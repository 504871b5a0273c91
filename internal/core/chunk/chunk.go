// Package chunk splits a document into paragraph-sized segments.
package chunk

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

// paragraphFallback is the segment count at or below which a double
// line-break split is considered to have missed the paragraph structure.
const paragraphFallback = 5

// Split returns the trimmed segments of text that are at least minChars runes
// long, in document order. Blank text yields no chunks and no error; non-blank
// text without a single long enough segment yields domain.ErrNoChunks.
func Split(text string, minChars int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	segments := strings.Split(text, "\n\n")
	if len(segments) <= paragraphFallback {
		segments = strings.Split(text, "\n")
	}

	chunks := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" || utf8.RuneCountInString(s) < minChars {
			continue
		}
		chunks = append(chunks, s)
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no paragraph longer than %d characters found: %w", minChars, domain.ErrNoChunks)
	}
	return chunks, nil
}
