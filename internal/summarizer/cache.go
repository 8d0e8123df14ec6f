package summarizer

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	cacheSize = 256
	cacheTTL  = 30 * time.Minute
)

// ChunkCache holds the chunks of recently processed documents keyed by
// file name so /api/summarize can re-run without re-ingesting. Entries
// expire after 30 minutes; concurrent writes for the same name are
// last-write-wins.
type ChunkCache struct {
	lru *expirable.LRU[string, []string]
}

// NewChunkCache constructs a bounded, expiring chunk cache.
func NewChunkCache() *ChunkCache {
	return &ChunkCache{lru: expirable.NewLRU[string, []string](cacheSize, nil, cacheTTL)}
}

// Put stores the chunks for a file name.
func (c *ChunkCache) Put(fileID string, chunks []string) {
	c.lru.Add(fileID, chunks)
}

// Get returns the cached chunks for a file name.
func (c *ChunkCache) Get(fileID string) ([]string, bool) {
	return c.lru.Get(fileID)
}
