// cache.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the LFU cache (component H): a thread-safe,
// least-frequently-used bounded cache. Unlike an LRU cache, eviction
// is keyed on access count, not recency: on overflow, the bottom
// tenth of entries by access count are dropped in one pass, using a
// bounded-heap selection equivalent to the original's heapq.nsmallest
// call.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package binpack

import (
	"container/heap"
	"sync"
)

// LFUDefault is the default cache size, matching the original's
// LFU_DEFAULT constant.
const LFUDefault = 512

// LFUCache is a thread-safe, bounded, least-frequently-used cache
// mapping string keys to arbitrary cached values.
type LFUCache struct {
	mu       sync.Mutex
	cache    map[string]any
	useCount map[string]int
	maxSize  int
	hits     int
	misses   int
}

// NewLFUCache creates an LFUCache with the given maximum size. A
// non-positive size falls back to LFUDefault.
func NewLFUCache(maxSize int) *LFUCache {
	if maxSize <= 0 {
		maxSize = LFUDefault
	}
	return &LFUCache{
		cache:    make(map[string]any),
		useCount: make(map[string]int),
		maxSize:  maxSize,
	}
}

// Lookup returns the cached value for key, computing and storing it
// via fetch on a miss. fetch is called with the cache's mutex
// released, since compute-on-miss may recursively call Lookup again
// (e.g. compound-word resolution calling back into the form cache).
func (c *LFUCache) Lookup(key string, fetch func(string) any) any {
	c.mu.Lock()
	if v, ok := c.cache[key]; ok {
		c.useCount[key]++
		c.hits++
		c.mu.Unlock()
		return v
	}
	c.misses++
	c.mu.Unlock()

	v := fetch(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.cache[key]; ok {
		// Another goroutine populated it while we were computing.
		c.useCount[key]++
		return existing
	}
	c.cache[key] = v
	c.useCount[key] = 1
	if len(c.cache) > c.maxSize {
		c.evictLocked()
	}
	return v
}

// Stats returns the cache's cumulative hit/miss counters.
func (c *LFUCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of entries currently cached.
func (c *LFUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *LFUCache) evictLocked() {
	n := c.maxSize / 10
	if n < 1 {
		n = 1
	}
	victims := nSmallestByCount(c.useCount, n)
	for _, k := range victims {
		delete(c.cache, k)
		delete(c.useCount, k)
	}
}

type countEntry struct {
	key   string
	count int
}

// countHeap is a max-heap (by count) so that popping n times off it
// after limiting its size to n yields the n smallest-count entries,
// the same selection heapq.nsmallest(n, ...) performs.
type countHeap []countEntry

func (h countHeap) Len() int            { return len(h) }
func (h countHeap) Less(i, j int) bool  { return h[i].count > h[j].count }
func (h countHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *countHeap) Push(x any)         { *h = append(*h, x.(countEntry)) }
func (h *countHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// nSmallestByCount returns (up to) n keys with the smallest access
// counts, via a bounded max-heap of size n: each candidate is pushed
// and, once the heap exceeds n, the current largest is popped,
// leaving the n smallest at the end.
func nSmallestByCount(useCount map[string]int, n int) []string {
	h := &countHeap{}
	heap.Init(h)
	for k, c := range useCount {
		heap.Push(h, countEntry{key: k, count: c})
		if h.Len() > n {
			heap.Pop(h)
		}
	}
	out := make([]string, 0, h.Len())
	for _, e := range *h {
		out = append(out, e.key)
	}
	return out
}
