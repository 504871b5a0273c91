package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_ngram_similarity/internal/pool"
	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType is the rune-by-rune normalizer.
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType is the table driven normalizer with pooled buffers.
	OptimizedNormalizerType
)

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer returns the normalizer for t, defaulting to DefaultNormalizer.
func (f *NormalizerFactory) CreateNormalizer(t NormalizerType) ports.Normalizer {
	switch t {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}

const (
	keep byte = iota
	drop
	lower
)

// OptimizedNormalizer produces the same output as DefaultNormalizer using a
// precomputed ASCII decision table and pooled byte buffers.
type OptimizedNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}
	for i := range n.asciiTable {
		r := rune(i)
		switch {
		case isStripped(r):
			n.asciiTable[i] = drop
		case unicode.IsUpper(r):
			n.asciiTable[i] = lower
		default:
			n.asciiTable[i] = keep
		}
	}
	return n
}

// Normalize lowercases text and removes punctuation and symbols.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	for i := 0; i < len(text); i++ {
		b := text[i]
		if b >= 128 {
			// Leave the rest to the Unicode aware path.
			*buffer = append(*buffer, NewDefaultNormalizer().Normalize(text[i:])...)
			return string(*buffer)
		}
		switch n.asciiTable[b] {
		case keep:
			*buffer = append(*buffer, b)
		case lower:
			*buffer = append(*buffer, b+('a'-'A'))
		}
	}
	return string(*buffer)
}
