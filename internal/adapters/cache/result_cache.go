// Package cache keeps recently computed analysis results in memory.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

// ResultCache is a fixed-size LRU of analysis results. It is safe for
// concurrent use.
type ResultCache struct {
	entries *lru.Cache[string, domain.Result]
}

// NewResultCache creates a cache holding at most size results.
func NewResultCache(size int) (*ResultCache, error) {
	entries, err := lru.New[string, domain.Result](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &ResultCache{entries: entries}, nil
}

// Key derives the cache key of an analysis of docA against docB with p.
// Lengths are hashed before the texts so that shifting a boundary between
// the two documents changes the key.
func Key(p domain.Params, docA, docB string) string {
	h := sha256.New()
	var buf [8]byte
	for _, v := range []int{p.N, p.MinChars, p.TopN, len(docA), len(docB)} {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	h.Write([]byte(docA))
	h.Write([]byte(docB))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a copy of the cached result for key.
func (c *ResultCache) Get(key string) (domain.Result, bool) {
	res, ok := c.entries.Get(key)
	if !ok {
		return domain.Result{}, false
	}
	return cloneResult(res), true
}

// Add stores a copy of res under key, evicting the least recently used entry
// when full.
func (c *ResultCache) Add(key string, res domain.Result) {
	c.entries.Add(key, cloneResult(res))
}

// cloneResult copies the slice and map of res so callers never share them
// with the cache.
func cloneResult(res domain.Result) domain.Result {
	res.Pairs = slices.Clone(res.Pairs)
	res.Details = maps.Clone(res.Details)
	return res
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	return c.entries.Len()
}
