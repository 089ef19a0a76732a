// dawg.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the compound-word DAWG (component G): a
// memory-mapped directed acyclic word graph used to slice an unknown
// surface form into a sequence of known parts when a direct form-trie
// lookup misses.

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
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/edsrzf/mmap-go"
	"github.com/hashicorp/golang-lru/simplelru"
)

// DawgSignature is the fixed 12-byte marker at the start of a
// compound-DAWG file.
const DawgSignature = "ReynirDawg!\n"

var ErrBadDawgSignature = errors.New("binpack: bad DAWG signature")

// Dawg is a memory-mapped directed acyclic word graph. Letters are
// stored as indices into an embedded alphabet; alphabet maps a decoded
// byte (once the high bit marking a word-terminal position is
// cleared) to the actual rune.
type Dawg struct {
	f        *os.File
	mm       mmap.MMap
	b        []byte
	alphabet []rune

	mux           sync.Mutex
	iterNodeCache map[uint32]*dawgEdges
}

// dawgEdge is one outgoing edge from a DAWG node: a rune prefix and
// the offset of the node it leads to (0 if the prefix's last rune is
// itself a word terminal with no continuation).
type dawgEdge struct {
	prefix   []rune
	terminal bool
	nextNode uint32
}

type dawgEdges []dawgEdge

// OpenDawg memory-maps the DAWG file at path and validates its
// signature.
func OpenDawg(path string) (*Dawg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("binpack: opening dawg %q: %w", path, err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("binpack: mapping dawg %q: %w", path, err)
	}
	d := &Dawg{f: f, mm: m, b: []byte(m), iterNodeCache: make(map[uint32]*dawgEdges)}
	if err := d.parseHeader(); err != nil {
		d.Close()
		return nil, fmt.Errorf("binpack: %q: %w", path, err)
	}
	return d, nil
}

func (d *Dawg) parseHeader() error {
	if len(d.b) < 16 {
		return ErrShortFile
	}
	if string(d.b[0:12]) != DawgSignature {
		return fmt.Errorf("%w: got %q", ErrBadDawgSignature, string(d.b[0:12]))
	}
	alen := binary.LittleEndian.Uint32(d.b[12:16])
	start := uint32(16)
	if int(start+alen) > len(d.b) {
		return ErrShortFile
	}
	d.alphabet = []rune(string(d.b[start : start+alen]))
	return nil
}

// Close unmaps and closes the underlying DAWG file.
func (d *Dawg) Close() error {
	var err error
	if d.mm != nil {
		err = d.mm.Unmap()
		d.mm = nil
	}
	if d.f != nil {
		if cerr := d.f.Close(); err == nil {
			err = cerr
		}
		d.f = nil
	}
	return err
}

// rootOffset is the byte offset of the root node, immediately
// following the 16-byte header and alphabet bytes.
func (d *Dawg) rootOffset() uint32 {
	return 16 + uint32(len([]byte(string(d.alphabet))))
}

// edgesAt decodes (and caches) the outgoing edges of the node at
// offset, per spec.md §4.G: a byte giving num_edges & 0x7F, then per
// edge a length byte (low 7 bits = prefix length), that many alphabet
// index bytes (high bit set on the last one marking a word
// terminal), and, only when not terminal, a trailing u32 next-node
// offset.
func (d *Dawg) edgesAt(offset uint32) *dawgEdges {
	d.mux.Lock()
	defer d.mux.Unlock()
	if cached, ok := d.iterNodeCache[offset]; ok {
		return cached
	}
	b := d.b
	p := offset
	numEdges := int(b[p] & 0x7F)
	p++
	edges := make(dawgEdges, numEdges)
	for i := 0; i < numEdges; i++ {
		length := int(b[p] & 0x7F)
		p++
		prefix := make([]rune, length)
		terminal := false
		for j := 0; j < length; j++ {
			c := b[p]
			p++
			if j == length-1 && c&0x80 != 0 {
				terminal = true
				c &= 0x7F
			}
			prefix[j] = d.alphabet[c]
		}
		var nextNode uint32
		if !terminal {
			nextNode = binary.LittleEndian.Uint32(b[p : p+4])
			p += 4
		}
		edges[i] = dawgEdge{prefix: prefix, terminal: terminal, nextNode: nextNode}
	}
	d.iterNodeCache[offset] = &edges
	return &edges
}

// Contains reports whether word is a complete word in the DAWG.
func (d *Dawg) Contains(word string) bool {
	var fn FindNavigator
	fn.Init(word)
	d.Navigate(&fn)
	return fn.found
}

// Navigate drives a full traversal of the DAWG under the control of
// the given Navigator, starting at the root.
func (d *Dawg) Navigate(navigator Navigator) {
	var nav Navigation
	nav.Go(d, navigator)
}

// compoundCache caches slice_compound_word results, keyed on the
// unknown surface form. Grounded on the teacher's crossCache.
type compoundCache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

func newCompoundCache(size int) *compoundCache {
	lru, _ := simplelru.NewLRU(size, nil)
	return &compoundCache{lru: lru}
}

func (cc *compoundCache) lookup(key string, fetch func(string) []string) []string {
	cc.mux.Lock()
	if v, ok := cc.lru.Get(key); ok {
		cc.mux.Unlock()
		return v.([]string)
	}
	cc.mux.Unlock()

	v := fetch(key)

	cc.mux.Lock()
	defer cc.mux.Unlock()
	cc.lru.Add(key, v)
	return v
}

// Compounder slices unknown words into known parts using an all-forms
// DAWG plus prefix- and suffix-restricted DAWGs, mirroring the
// original's Wordbase.slice_compound_word.
type Compounder struct {
	all      *Dawg
	prefixes *Dawg
	suffixes *Dawg
	cache    *compoundCache
}

// NewCompounder builds a Compounder over the three compound DAWGs.
// prefixes and suffixes may be nil, in which case any segmentation
// found in all is accepted without the extra restriction.
func NewCompounder(all, prefixes, suffixes *Dawg) *Compounder {
	return &Compounder{all: all, prefixes: prefixes, suffixes: suffixes, cache: newCompoundCache(2048)}
}

// SliceCompoundWord returns the first valid decomposition of word
// into two or more known parts, ranked by longest last-part then
// fewest parts, with every part but the last required to be a valid
// DAWG prefix word and the last part required to be a valid suffix
// word. Returns nil if no decomposition qualifies.
func (c *Compounder) SliceCompoundWord(word string) []string {
	result := c.cache.lookup(word, func(w string) []string {
		combos := c.findCombinations(w)
		sort.Slice(combos, func(i, j int) bool {
			li, lj := len(combos[i]), len(combos[j])
			lastI, lastJ := len([]rune(combos[i][li-1])), len([]rune(combos[j][lj-1]))
			if lastI != lastJ {
				return lastI > lastJ
			}
			return li < lj
		})
		for _, combo := range combos {
			if c.isValidCombo(combo) {
				return combo
			}
		}
		return nil
	})
	return result
}

// findCombinations enumerates every way to split word into two or
// more parts that are each complete words in the all-forms DAWG.
func (c *Compounder) findCombinations(word string) [][]string {
	runes := []rune(word)
	n := len(runes)
	// dp[i] holds every segmentation of runes[0:i] into DAWG words.
	dp := make([][][]string, n+1)
	dp[0] = [][]string{{}}
	for i := 1; i <= n; i++ {
		for j := 0; j < i; j++ {
			if len(dp[j]) == 0 {
				continue
			}
			part := string(runes[j:i])
			if !c.all.Contains(part) {
				continue
			}
			for _, prefix := range dp[j] {
				seg := make([]string, len(prefix), len(prefix)+1)
				copy(seg, prefix)
				seg = append(seg, part)
				dp[i] = append(dp[i], seg)
			}
		}
	}
	var out [][]string
	for _, combo := range dp[n] {
		if len(combo) >= 2 {
			out = append(out, combo)
		}
	}
	return out
}

func (c *Compounder) isValidCombo(parts []string) bool {
	if len(parts) < 2 {
		return false
	}
	last := parts[len(parts)-1]
	if c.suffixes != nil && !c.suffixes.Contains(last) {
		return false
	}
	if c.prefixes != nil {
		for _, p := range parts[:len(parts)-1] {
			if !c.prefixes.Contains(p) {
				return false
			}
		}
	}
	return true
}
