// trie.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the form trie navigator (component B): a
// compact radix trie over Latin-1 byte strings mapping a surface
// word form to a mapping-section index (or "absent").

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

import "encoding/binary"

// NoValue is the sentinel 23-bit value meaning "this trie node has no
// associated mapping index" (i.e. it is an internal node only).
const NoValue = 0x7FFFFF

const (
	trieSingleCharBit = 0x80000000
	trieLeafBit       = 0x40000000
	trieAlphaShift    = 23
	trieAlphaMask     = 0x7F
	trieValueMask     = 0x7FFFFF
)

type trieNode struct {
	word      uint32
	isSingle  bool
	isLeaf    bool
	value     uint32
	alphaIdx  byte
	headerEnd uint32 // offset just past the 4-byte header word
}

func (img *Image) readTrieNode(offset uint32) trieNode {
	word := binary.LittleEndian.Uint32(img.b[offset : offset+4])
	n := trieNode{
		word:      word,
		isSingle:  word&trieSingleCharBit != 0,
		isLeaf:    word&trieLeafBit != 0,
		value:     word & trieValueMask,
		headerEnd: offset + 4,
	}
	if n.isSingle {
		n.alphaIdx = byte((word >> trieAlphaShift) & trieAlphaMask)
	}
	return n
}

// trieChildren returns the absolute offsets of a node's children, and the
// byte offset immediately following the child table (where a
// multi-char node's fragment bytes, if any, begin).
func (img *Image) trieChildren(n trieNode) (children []uint32, next uint32) {
	if n.isLeaf {
		return nil, n.headerEnd
	}
	count := binary.LittleEndian.Uint32(img.b[n.headerEnd : n.headerEnd+4])
	start := n.headerEnd + 4
	children = make([]uint32, count)
	for i := uint32(0); i < count; i++ {
		children[i] = binary.LittleEndian.Uint32(img.b[start+4*i : start+4*i+4])
	}
	return children, start + 4*count
}

// trieFragment returns the Latin-1 bytes this node's edge matches: one
// byte decoded from the embedded alphabet index for a single-char
// node, or a run of alphabet-indexed, zero-terminated bytes for a
// multi-char node.
func (img *Image) trieFragment(n trieNode, fragStart uint32) []byte {
	if n.isSingle {
		return []byte{img.alphabet[n.alphaIdx]}
	}
	var frag []byte
	for p := fragStart; img.b[p] != 0; p++ {
		frag = append(frag, img.alphabet[img.b[p]])
	}
	return frag
}

// lookupForm navigates the form trie for word (already Latin-1 bytes)
// and returns the mapping-section index, or NoValue if absent.
func (img *Image) lookupForm(word []byte) uint32 {
	offset := img.off[hForms]
	pos := 0
	for {
		node := img.readTrieNode(offset)
		children, fragStart := img.trieChildren(node)
		if pos == len(word) {
			// Root call with an empty remaining query: the *current*
			// node's value (if we've already consumed a fragment) is
			// the answer. On the very first iteration (root itself)
			// this only applies to an empty-string lookup.
			if node.value == trieValueMask {
				return NoValue
			}
			return node.value
		}
		matched := false
		for _, childOff := range children {
			child := img.readTrieNode(childOff)
			_, childFragStart := img.trieChildren(child)
			frag := img.trieFragment(child, childFragStart)
			if len(frag) == 0 || frag[0] != word[pos] {
				continue
			}
			if pos+len(frag) > len(word) || !bytesEqual(word[pos:pos+len(frag)], frag) {
				continue
			}
			pos += len(frag)
			offset = childOff
			matched = true
			break
		}
		if !matched {
			return NoValue
		}
		if pos == len(word) {
			node = img.readTrieNode(offset)
			if node.value == trieValueMask {
				return NoValue
			}
			return node.value
		}
		_ = fragStart
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ContainsForm reports whether word has at least one mapping entry.
func (img *Image) ContainsForm(word []byte) bool {
	return img.lookupForm(word) != NoValue
}
