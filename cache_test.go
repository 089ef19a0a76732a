// cache_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package binpack

import "testing"

func TestLFUCacheLookupCachesValue(t *testing.T) {
	c := NewLFUCache(16)
	calls := 0
	fetch := func(key string) any {
		calls++
		return key + "-value"
	}
	v1 := c.Lookup("a", fetch)
	v2 := c.Lookup("a", fetch)
	if v1 != "a-value" || v2 != "a-value" {
		t.Fatalf("unexpected values: %v, %v", v1, v2)
	}
	if calls != 1 {
		t.Errorf("expected fetch to be called once, got %d", calls)
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got hits=%d misses=%d", hits, misses)
	}
}

func TestLFUCacheDefaultSize(t *testing.T) {
	c := NewLFUCache(0)
	if c.maxSize != LFUDefault {
		t.Errorf("expected default max size %d, got %d", LFUDefault, c.maxSize)
	}
}

func TestLFUCacheEvictsLeastFrequentlyUsed(t *testing.T) {
	c := NewLFUCache(10)
	fetch := func(key string) any { return key }
	for i := 0; i < 10; i++ {
		c.Lookup(string(rune('a'+i)), fetch)
	}
	// Access "a" many times so it is clearly the most-used entry.
	for i := 0; i < 5; i++ {
		c.Lookup("a", fetch)
	}
	// Push past the cap; eviction should drop some of the
	// least-frequently-used entries, but "a" must survive.
	for i := 10; i < 15; i++ {
		c.Lookup(string(rune('a'+i)), fetch)
	}
	if c.Len() > 10 {
		t.Errorf("expected cache to stay within bound, got len %d", c.Len())
	}
	c.mu.Lock()
	_, ok := c.cache["a"]
	c.mu.Unlock()
	if !ok {
		t.Error("expected frequently-used entry 'a' to survive eviction")
	}
}

func TestNSmallestByCount(t *testing.T) {
	counts := map[string]int{"a": 5, "b": 1, "c": 3, "d": 2, "e": 4}
	got := nSmallestByCount(counts, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	want := map[string]bool{"b": true, "d": true}
	for _, k := range got {
		if !want[k] {
			t.Errorf("unexpected key %q among smallest-by-count, want one of b/d", k)
		}
	}
}
