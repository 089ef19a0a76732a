// dawg_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package binpack

import (
	"os"
	"path/filepath"
	"testing"
)

// buildTestDawgBytes hand-encodes a tiny DAWG accepting exactly the
// two words "ás" and "bær", sharing no prefix, so each compresses to
// a single terminal edge from the root.
func buildTestDawgBytes() []byte {
	b := []byte(DawgSignature) // 12 bytes
	alphabet := "ásbær"        // á=0 s=1 b=2 æ=3 r=4
	alphaBytes := []byte(alphabet)
	b = append(b, byte(len(alphaBytes)), 0, 0, 0) // alphabet byte length, LE u32
	b = append(b, alphaBytes...)
	b = append(b,
		0x02,       // root: 2 outgoing edges
		0x02,       // edge 1: prefix length 2 ("ás")
		0x00,       // á (index 0), not last
		0x01|0x80,  // s (index 1), last byte -> terminal
		0x03,       // edge 2: prefix length 3 ("bær")
		0x02,       // b (index 2), not last
		0x03,       // æ (index 3), not last
		0x04|0x80,  // r (index 4), last byte -> terminal
	)
	return b
}

func writeTestDawg(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dawg")
	if err := os.WriteFile(path, buildTestDawgBytes(), 0o644); err != nil {
		t.Fatalf("writing test dawg fixture: %v", err)
	}
	return path
}

func TestDawgContains(t *testing.T) {
	path := writeTestDawg(t)
	d, err := OpenDawg(path)
	if err != nil {
		t.Fatalf("OpenDawg: %v", err)
	}
	defer d.Close()

	for _, word := range []string{"ás", "bær"} {
		if !d.Contains(word) {
			t.Errorf("expected Contains(%q) to be true", word)
		}
	}
	for _, word := range []string{"á", "as", "bæ", "ásbær", "x"} {
		if d.Contains(word) {
			t.Errorf("expected Contains(%q) to be false", word)
		}
	}
}

func TestDawgBadSignature(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dawg")
	bad := append([]byte("NotADawgSig!"), buildTestDawgBytes()[12:]...)
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatalf("writing bad fixture: %v", err)
	}
	if _, err := OpenDawg(path); err == nil {
		t.Fatal("expected OpenDawg to reject a bad signature")
	}
}

func TestCompounderSlicesKnownParts(t *testing.T) {
	path := writeTestDawg(t)
	all, err := OpenDawg(path)
	if err != nil {
		t.Fatalf("OpenDawg: %v", err)
	}
	defer all.Close()

	c := NewCompounder(all, nil, nil)
	parts := c.SliceCompoundWord("ásbær")
	if len(parts) != 2 || parts[0] != "ás" || parts[1] != "bær" {
		t.Errorf("SliceCompoundWord(\"ásbær\") = %v, want [ás bær]", parts)
	}
}

func TestCompounderNoSliceForUnknownWord(t *testing.T) {
	path := writeTestDawg(t)
	all, err := OpenDawg(path)
	if err != nil {
		t.Fatalf("OpenDawg: %v", err)
	}
	defer all.Close()

	c := NewCompounder(all, nil, nil)
	if parts := c.SliceCompoundWord("xyz"); parts != nil {
		t.Errorf("expected nil decomposition for an unknown word, got %v", parts)
	}
}

func TestCompounderResultIsCached(t *testing.T) {
	path := writeTestDawg(t)
	all, err := OpenDawg(path)
	if err != nil {
		t.Fatalf("OpenDawg: %v", err)
	}
	defer all.Close()

	c := NewCompounder(all, nil, nil)
	first := c.SliceCompoundWord("ásbær")
	second := c.SliceCompoundWord("ásbær")
	if len(first) != len(second) {
		t.Fatalf("expected repeated lookups to agree, got %v vs %v", first, second)
	}
	if !c.cache.lru.Contains("ásbær") {
		t.Error("expected the decomposition of \"ásbær\" to be held in the compound cache")
	}
}
