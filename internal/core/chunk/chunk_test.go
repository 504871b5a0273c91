package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		minChars int
		want     []string
	}{
		{
			name:     "paragraphs separated by blank lines",
			text:     "first paragraph here\n\nsecond paragraph here\n\nthird one\n\nfourth one\n\nfifth one\n\nsixth one",
			minChars: 5,
			want: []string{
				"first paragraph here",
				"second paragraph here",
				"third one",
				"fourth one",
				"fifth one",
				"sixth one",
			},
		},
		{
			name:     "few paragraphs fall back to single line breaks",
			text:     "The cat sat on the mat.\n\nThe dog ran in the park.",
			minChars: 5,
			want:     []string{"The cat sat on the mat.", "The dog ran in the park."},
		},
		{
			name:     "single line breaks only",
			text:     "a\nb\nc",
			minChars: 1,
			want:     []string{"a", "b", "c"},
		},
		{
			name:     "segments are trimmed and short ones dropped",
			text:     "   long enough line   \nno\n\t another long line \t",
			minChars: 5,
			want:     []string{"long enough line", "another long line"},
		},
		{
			name:     "zero minimum still drops empty segments",
			text:     "one\n\n\ntwo",
			minChars: 0,
			want:     []string{"one", "two"},
		},
		{
			name:     "minimum counts runes not bytes",
			text:     "çğışöü\nabc",
			minChars: 6,
			want:     []string{"çğışöü"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Split(tc.text, tc.minChars)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitBlankInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\t\n"} {
		chunks, err := Split(text, 30)
		assert.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestSplitAllSegmentsTooShort(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		minChars int
		wantMsg  string
	}{
		{"paragraphs", "short\n\ntiny\n\nsmall", 30, "no paragraph longer than 30 characters found: no chunks"},
		{"single line", "just a line", 50, "no paragraph longer than 50 characters found: no chunks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Split(tt.text, tt.minChars)
			require.Error(t, err)
			assert.Empty(t, chunks)
			assert.ErrorIs(t, err, domain.ErrNoChunks)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestSplitKeepsDocumentOrder(t *testing.T) {
	parts := make([]string, 10)
	for i := range parts {
		parts[i] = strings.Repeat(string(rune('a'+i)), 40)
	}
	chunks, err := Split(strings.Join(parts, "\n\n"), 30)
	require.NoError(t, err)
	assert.Equal(t, parts, chunks)
}
