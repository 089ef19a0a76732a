// tables.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the side tables (component D): the meanings
// table, the ksnid-strings table and the lemma table. Subcat
// resolution lives in image.go, decoded once at open time.

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

// meaning resolves a frequency-ordered meaning index to its
// (word-class, mark) pair, as stored in the "ofl mark" Latin-1 string.
func (img *Image) meaning(freqIx int) (ofl, mark string) {
	if freqIx < 0 {
		return "", ""
	}
	base := img.off[hMeanings]
	count := binary.LittleEndian.Uint32(img.b[base : base+4])
	if uint32(freqIx) >= count {
		return "", ""
	}
	entryOff := base + 4 + uint32(freqIx)*4
	strOff := binary.LittleEndian.Uint32(img.b[entryOff : entryOff+4])
	s := readCString(img.b, strOff, 24)
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return FromLatin1([]byte(s[:i])), FromLatin1([]byte(s[i+1:]))
		}
	}
	return FromLatin1([]byte(s)), ""
}

// ksnidString resolves a ksnid-strings index to its semicolon-joined
// ancillary field string. Indices 0 and 1 are the two precomputed
// common strings and never consult the table itself.
func (img *Image) ksnidString(ix int) string {
	switch ix {
	case 0:
		return KsnidCommon0
	case 1:
		return KsnidCommon1
	}
	if ix < 0 {
		return KsnidCommon0
	}
	base := img.off[hKsnid]
	count := binary.LittleEndian.Uint32(img.b[base : base+4])
	if uint32(ix) >= count {
		return KsnidCommon0
	}
	entryOff := base + 4 + uint32(ix)*4
	strOff := binary.LittleEndian.Uint32(img.b[entryOff : entryOff+4])
	length := img.b[strOff]
	return FromLatin1(img.b[strOff+1 : strOff+1+uint32(length)])
}

func readCString(b []byte, off uint32, maxLen int) string {
	end := off
	limit := off + uint32(maxLen)
	for end < uint32(len(b)) && end < limit && b[end] != 0 {
		end++
	}
	return string(b[off:end])
}

// lemmaRecord is the decoded lemma-table entry for a bin_id.
type lemmaRecord struct {
	Found         bool
	Lemma         string
	DomainIx      int
	HasTemplate   bool
	TemplateOff   uint32
}

// lemmaOf resolves a bin_id to its lemma-table record.
func (img *Image) lemmaOf(binId int) lemmaRecord {
	if binId < 0 || binId > img.maxBinId {
		return lemmaRecord{}
	}
	base := img.off[hLemmas]
	recOff := binary.LittleEndian.Uint32(img.b[base+uint32(binId)*4 : base+uint32(binId)*4+4])
	if recOff == 0 {
		return lemmaRecord{}
	}
	word := binary.LittleEndian.Uint32(img.b[recOff : recOff+4])
	hasTemplate := word&0x80000000 != 0
	domainIx := int(word & 0xFF)
	p := recOff + 4
	length := img.b[p]
	p++
	lemma := FromLatin1(img.b[p : p+uint32(length)])
	p += uint32(length)
	// zero-padded to 4-byte alignment from recOff
	consumed := (p - recOff)
	pad := (4 - consumed%4) % 4
	p += pad
	rec := lemmaRecord{
		Found:       true,
		Lemma:       lemma,
		DomainIx:    domainIx,
		HasTemplate: hasTemplate,
	}
	if hasTemplate {
		rec.TemplateOff = binary.LittleEndian.Uint32(img.b[p : p+4])
	}
	return rec
}
