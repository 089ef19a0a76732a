// marks.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements mark-string parsing (mark_to_set), the
// per-category mark-order table (component J) and the canonical
// lemma-filter table used by lookup_lemmas.

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
	_ "embed"
	"fmt"
	"strings"
)

//go:embed mark_order.csv
var markOrderCSV string

// InvalidMarkError is returned by MarkToSet when an atom in the
// variant specification does not belong to the known atom set.
type InvalidMarkError struct {
	Atom string
}

func (e *InvalidMarkError) Error() string {
	return fmt.Sprintf("binpack: invalid mark atom %q", e.Atom)
}

// markAtoms lists recognized mark-feature atoms, longest first, so
// that greedy left-to-right matching picks the longest valid atom at
// each position (mirroring the original's character-by-character
// atom splitting).
var markAtoms = []string{
	"LHÞT", "nogr",
	"ÞGF", "FSB", "MST", "EVB", "ESB", "KVK",
	"NF", "ÞF", "EF", "ET", "FT", "KK", "HK",
	"1P", "2P", "3P", "NT", "ÞT", "GM", "MM",
	"FH", "VH", "NH", "BH", "LH",
	"gr",
}

// MarkToSet parses a mark string (e.g. "NFETgr" or "FSB-KK-NFET")
// into the set of its constituent feature atoms. Hyphens separate
// independently-matched segments; "p1"/"p2"/"p3" are normalized to
// "1P"/"2P"/"3P" and "expl" to "það", matching the Greynir-style
// shorthand the original accepts. Segments listed in IgnoredVariants
// are dropped.
func MarkToSet(mark string) (map[string]bool, error) {
	set := make(map[string]bool)
	for _, seg := range strings.Split(mark, "-") {
		if seg == "" || IgnoredVariants[seg] {
			continue
		}
		if seg == "expl" {
			set["það"] = true
			continue
		}
		if len(seg) == 2 && seg[0] == 'p' && seg[1] >= '1' && seg[1] <= '3' {
			set[string(seg[1])+"P"] = true
			continue
		}
		pos := 0
		for pos < len(seg) {
			matched := ""
			for _, atom := range markAtoms {
				if strings.HasPrefix(seg[pos:], atom) {
					matched = atom
					break
				}
			}
			if matched == "" {
				return nil, &InvalidMarkError{Atom: seg[pos:]}
			}
			set[matched] = true
			pos += len(matched)
		}
	}
	for k := range set {
		if IgnoredVariants[k] {
			delete(set, k)
		}
	}
	return set, nil
}

// featureSet is a convenience wrapper used for symmetric-difference
// ranking in lookup_variants.
type featureSet map[string]bool

func symmetricDifference(a, b featureSet) int {
	n := 0
	for k := range a {
		if !b[k] {
			n++
		}
	}
	for k := range b {
		if !a[k] {
			n++
		}
	}
	return n
}

func union(sets ...featureSet) featureSet {
	out := make(featureSet)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func isSuperset(sup, sub featureSet) bool {
	for k := range sub {
		if !sup[k] {
			return false
		}
	}
	return true
}

// MarkOrder holds, per word class, the ordered list of valid marks
// loaded from the embedded mark_order.csv resource.
type MarkOrder struct {
	order map[string][]string
	index map[string]map[string]int
}

var defaultMarkOrder = loadMarkOrder()

func loadMarkOrder() *MarkOrder {
	mo := &MarkOrder{
		order: make(map[string][]string),
		index: make(map[string]map[string]int),
	}
	for _, line := range strings.Split(markOrderCSV, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ";", 2)
		if len(parts) != 2 {
			continue
		}
		cat, mark := parts[0], parts[1]
		mo.order[cat] = append(mo.order[cat], mark)
	}
	for cat, marks := range mo.order {
		idx := make(map[string]int, len(marks))
		for i, m := range marks {
			idx[m] = i
		}
		mo.index[cat] = idx
	}
	return mo
}

// Index returns the sort index of mark within its category. Marks
// suffixed "2" or "3" (alternate declensions) sort after the
// unsuffixed family, offset by one or two multiples of the category
// size, mirroring the original MarkOrder.index behavior.
func (mo *MarkOrder) Index(cat, mark string) int {
	base := mark
	offset := 0
	n := len(mo.order[cat])
	if strings.HasSuffix(mark, "3") {
		base = strings.TrimSuffix(mark, "3")
		offset = 2 * n
	} else if strings.HasSuffix(mark, "2") {
		base = strings.TrimSuffix(mark, "2")
		offset = n
	}
	if idx, ok := mo.index[cat][base]; ok {
		return offset + idx
	}
	return offset + n
}

// IsValidMark reports whether mark is a recognized mark for cat.
func (mo *MarkOrder) IsValidMark(cat, mark string) bool {
	base := strings.TrimSuffix(strings.TrimSuffix(mark, "3"), "2")
	_, ok := mo.index[cat][base]
	return ok
}

// DefaultMarkOrder returns the package's embedded mark-order table.
func DefaultMarkOrder() *MarkOrder { return defaultMarkOrder }

// lemmaFilters gives, per word class, the set of canonical marks that
// qualify an entry as the representative lemma form in lookup_lemmas.
// Grounded on bindb.py's _LEMMA_FILTERS table (spec.md §9).
var lemmaFilters = map[string][]string{
	"kk":  {"NFET"},
	"kvk": {"NFET"},
	"hk":  {"NFET"},
	"no":  {"NFET"},
	"fn":  {"KK-NFET", "KK_NFET", "fn_KK_NFET"},
	"pfn": {"NFET"},
	"gr":  {"KK-NFET", "KK_NFET"},
	"so":  {"GM-NH"},
	"lo":  {"FSB-KK-NFET", "KK-NFET"},
	"to":  {"OBEYGJANLEGT"}, // plus any mark with prefix "KK_NF", checked specially
}

// isLemmaCanonicalMark reports whether mark is a canonical lemma-form
// mark for ofl, per lookup_lemmas' filter table. The verb class also
// accepts the middle-voice infinitive "MM-NH" as a lemma form.
func isLemmaCanonicalMark(ofl, mark string) bool {
	if ofl == "so" && mark == "MM-NH" {
		return true
	}
	if ofl == "to" && strings.HasPrefix(mark, "KK_NF") {
		return true
	}
	for _, m := range lemmaFilters[ofl] {
		if m == mark {
			return true
		}
	}
	return false
}
