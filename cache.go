package glyph

import (
	"sort"
	"sync"
)

// memoCache is a generic thread-safe memoization cache with a soft limit.
// When the cache grows past softLimit, the least recently used quarter of
// the entries is evicted. A softLimit of 0 means unlimited.
//
// It backs the per-font glyph metric lookups, which positioners repeat for
// every line of every freshly computed layout.
//
// memoCache must not be copied after creation (has mutex).
type memoCache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*memoEntry[V]
	softLimit int
	tick      int64 // monotonic access counter
}

// memoEntry holds a cached value with its access time.
type memoEntry[V any] struct {
	value V
	atime int64
}

// newMemoCache creates a cache with the given soft limit.
func newMemoCache[K comparable, V any](softLimit int) *memoCache[K, V] {
	return &memoCache[K, V]{
		entries:   make(map[K]*memoEntry[V]),
		softLimit: softLimit,
	}
}

// getOrCreate returns the cached value for key, computing and storing it
// with create on a miss. create runs under the cache lock so a value is
// computed at most once per key.
func (c *memoCache[K, V]) getOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if entry, ok := c.entries[key]; ok {
		entry.atime = c.tick
		return entry.value
	}

	value := create()
	c.entries[key] = &memoEntry[V]{value: value, atime: c.tick}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return value
}

// len returns the number of cached entries.
func (c *memoCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the least recently used entries until the cache is at
// 3/4 of the soft limit. Caller must hold c.mu.
func (c *memoCache[K, V]) evictOldest() {
	targetSize := c.softLimit * 3 / 4
	if targetSize < 1 {
		targetSize = 1
	}
	toEvict := len(c.entries) - targetSize
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, aged{key: key, atime: e.atime})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].atime < all[j].atime })

	for i := 0; i < toEvict; i++ {
		delete(c.entries, all[i].key)
	}
}
