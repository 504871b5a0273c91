package domain

import "errors"

// Advisory errors. A computation that returns one of these still produced a
// usable (zero) score.
var (
	// ErrNoChunks indicates a non-blank text had no segment long enough to chunk.
	ErrNoChunks = errors.New("no chunks")

	// ErrInvalidNGram indicates an n-gram order below 1.
	ErrInvalidNGram = errors.New("n-gram order must be at least 1")

	// ErrEmptyVocabulary indicates no unit produced a single n-gram.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// ErrGlobalComparison indicates the whole-document comparison could not run.
	ErrGlobalComparison = errors.New("global comparison failed (texts may be too short)")

	// ErrChunkedComparison indicates the chunk vector space could not be built.
	ErrChunkedComparison = errors.New("chunked comparison failed (texts may be too short)")

	// ErrEmptyDocument indicates one document had nothing to chunk.
	ErrEmptyDocument = errors.New("document has no content to compare")
)

// ErrInvalidParams indicates analysis parameters outside their valid range.
var ErrInvalidParams = errors.New("invalid analysis parameters")

// ErrUnchunkable is the only fatal condition: a document could not be split
// into meaningful chunks, so no chunk-level result exists.
var ErrUnchunkable = errors.New("one of the documents could not be split into meaningful chunks")

// IsFatal reports whether err aborts a full analysis.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnchunkable)
}
