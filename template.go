// template.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the lemma-forms decoder (component E): given a
// bin_id whose lemma record carries an inflection template, it
// reconstructs the full set of inflected surface forms by replaying a
// delta-compressed cut/length encoding rooted at the lemma string.

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

// lemmaForms reconstructs the set of inflected forms for a bin_id,
// always including the lemma itself as the first element.
func (img *Image) lemmaForms(rec lemmaRecord) []string {
	if !rec.Found {
		return nil
	}
	if !rec.HasTemplate {
		return []string{rec.Lemma}
	}
	latin1Lemma, _ := ToLatin1(rec.Lemma)
	forms := []string{rec.Lemma}
	last := latin1Lemma
	p := img.off[hTemplates] + rec.TemplateOff
	for {
		b := img.b[p]
		if b == 0 {
			break
		}
		var cut int
		var newLen int
		if b&0x80 != 0 {
			cut = int(b & 0x7F)
			p++
			newLen = int(img.b[p])
			p++
		} else {
			cut = int((b >> 3) & 0x0F)
			delta := signExtend3(int(b & 0x07))
			newLen = cut + delta
			p++
		}
		common := len(last) - cut
		if common < 0 {
			common = 0
		}
		if common > len(last) {
			common = len(last)
		}
		suffixLen := newLen - common
		if suffixLen < 0 {
			suffixLen = 0
		}
		next := make([]byte, 0, newLen)
		next = append(next, last[:common]...)
		next = append(next, img.b[p:p+uint32(suffixLen)]...)
		p += uint32(suffixLen)
		forms = append(forms, FromLatin1(next))
		last = next
	}
	return forms
}

func signExtend3(v int) int {
	if v >= 4 {
		return v - 8
	}
	return v
}
