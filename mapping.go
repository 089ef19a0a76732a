// mapping.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the mapping decoder (component C): given a
// form-trie terminal value, it walks the variable-length mapping
// word stream and yields (bin_id, meaning_freq_ix, ksnid_ix) triples.

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

const (
	mapEndBit      = 0x80000000
	mapEncodingMask = 0x60000000
	mapEncSingle    = 0x60000000 // 11
	mapEncSameBin   = 0x40000000 // 10
	mapEncTwoWord   = 0x00000000 // 00

	mapCommonSelBit = 0x10000000
	mapFreqMaskHi   = 0x0FF00000
	mapFreqShiftHi  = 20
	mapBinIdMask    = 0x000FFFFF

	mapFreqMaskLo  = 0x00FFC000
	mapFreqShiftLo = 14
	mapKsnidMask   = 0x00003FFF
)

// mappingRecord is one decoded entry from the mapping stream for a
// single surface form.
type mappingRecord struct {
	BinId        int
	MeaningFreq  int
	KsnidIx      int
	CommonKsnid  int // 0, 1, or -1 if not one of the precomputed common strings
}

// rawLookup decodes all mapping records reachable from a form-trie
// value (as returned by lookupForm).
func (img *Image) rawLookup(formValue uint32) []mappingRecord {
	if formValue == NoValue {
		return nil
	}
	var out []mappingRecord
	offset := img.off[hMappings] + formValue*4
	lastBinId := -1
	for {
		w := binary.LittleEndian.Uint32(img.b[offset : offset+4])
		offset += 4
		enc := w & mapEncodingMask
		switch enc {
		case mapEncSingle:
			commonSel := 0
			if w&mapCommonSelBit != 0 {
				commonSel = 1
			}
			freq := int((w&mapFreqMaskHi)>>mapFreqShiftHi) - 1
			binId := int(w & mapBinIdMask)
			lastBinId = binId
			out = append(out, mappingRecord{
				BinId:       binId,
				MeaningFreq: freq,
				CommonKsnid: commonSel,
				KsnidIx:     -1,
			})
			if w&mapEndBit != 0 {
				return out
			}
		case mapEncSameBin:
			freq := int((w & mapFreqMaskLo) >> mapFreqShiftLo)
			ksnidIx := int(w & mapKsnidMask)
			out = append(out, mappingRecord{
				BinId:       lastBinId,
				MeaningFreq: freq,
				KsnidIx:     ksnidIx,
				CommonKsnid: -1,
			})
			if w&mapEndBit != 0 {
				return out
			}
		default: // mapEncTwoWord (and any other combination treated as two-word)
			binId := int(w & mapBinIdMask)
			lastBinId = binId
			w2 := binary.LittleEndian.Uint32(img.b[offset : offset+4])
			offset += 4
			freq := int((w2 & mapFreqMaskLo) >> mapFreqShiftLo)
			ksnidIx := int(w2 & mapKsnidMask)
			out = append(out, mappingRecord{
				BinId:       binId,
				MeaningFreq: freq,
				KsnidIx:     ksnidIx,
				CommonKsnid: -1,
			})
			if w2&mapEndBit != 0 {
				return out
			}
		}
	}
}
