// image.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the image loader (component A): it memory-maps
// the compressed binary dictionary image, validates its signature and
// version, and decodes the section-offset header.

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

	"github.com/edsrzf/mmap-go"
)

// Signature is the fixed 16-byte version marker expected at the start
// of a compressed image file.
const Signature = "Greynir 04.00.00"

var (
	ErrBadSignature = errors.New("binpack: bad image signature")
	ErrShortFile    = errors.New("binpack: image file too short")
)

// header field indices, in the order spec.md §6 lists them
const (
	hMappings = iota
	hForms
	hLemmas
	hTemplates
	hMeanings
	hAlphabet
	hSubcats
	hKsnid
	hBeginGreynirUtg
	hMaxBinId
	headerFieldCount
)

const headerSize = 16 + headerFieldCount*4

// Image is an opened, memory-mapped compressed dictionary image. All
// navigation reads directly from the mmap'd byte slice; Image itself
// holds no other mutable state beyond the decoded header offsets.
type Image struct {
	f   *os.File
	mm  mmap.MMap
	b   []byte
	off [headerFieldCount]uint32

	alphabet   []byte
	subcats    []string
	beginUtg   int
	maxBinId   int
}

// OpenImage memory-maps the compressed image at path and decodes its
// header. The returned Image must be closed with Close when no longer
// needed.
func OpenImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("binpack: opening image %q: %w", path, err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("binpack: mapping image %q: %w", path, err)
	}
	img := &Image{f: f, mm: m, b: []byte(m)}
	if err := img.parseHeader(); err != nil {
		img.Close()
		return nil, fmt.Errorf("binpack: %q: %w", path, err)
	}
	return img, nil
}

func (img *Image) parseHeader() error {
	if len(img.b) < headerSize {
		return ErrShortFile
	}
	if string(img.b[0:16]) != Signature {
		return fmt.Errorf("%w: got %q", ErrBadSignature, string(img.b[0:16]))
	}
	for i := 0; i < headerFieldCount; i++ {
		img.off[i] = binary.LittleEndian.Uint32(img.b[16+i*4 : 16+i*4+4])
	}
	img.beginUtg = int(img.off[hBeginGreynirUtg])
	img.maxBinId = int(img.off[hMaxBinId])

	alphaOff := img.off[hAlphabet]
	if int(alphaOff)+4 > len(img.b) {
		return ErrShortFile
	}
	alen := binary.LittleEndian.Uint32(img.b[alphaOff : alphaOff+4])
	start := alphaOff + 4
	if int(start+alen) > len(img.b) {
		return ErrShortFile
	}
	img.alphabet = img.b[start : start+alen]

	subOff := img.off[hSubcats]
	if int(subOff)+4 > len(img.b) {
		return ErrShortFile
	}
	slen := binary.LittleEndian.Uint32(img.b[subOff : subOff+4])
	sstart := subOff + 4
	if int(sstart+slen) > len(img.b) {
		return ErrShortFile
	}
	img.subcats = splitSpaces(FromLatin1(img.b[sstart : sstart+slen]))

	return nil
}

func splitSpaces(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// Close unmaps and closes the underlying image file.
func (img *Image) Close() error {
	var err error
	if img.mm != nil {
		err = img.mm.Unmap()
		img.mm = nil
		img.b = nil
	}
	if img.f != nil {
		if cerr := img.f.Close(); err == nil {
			err = cerr
		}
		img.f = nil
	}
	return err
}

// MaxBinID returns the largest valid bin_id in this image.
func (img *Image) MaxBinID() int { return img.maxBinId }

// BeginGreynirUtg returns the first bin_id considered an engine-local
// (non-canonical BÍN) addition.
func (img *Image) BeginGreynirUtg() int { return img.beginUtg }

// Subcat returns the domain tag string for a subcat index.
func (img *Image) Subcat(ix int) string {
	if ix < 0 || ix >= len(img.subcats) {
		return ""
	}
	return img.subcats[ix]
}
