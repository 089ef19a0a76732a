// entry.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file defines the vocabulary record types returned by lookups:
// the full Ksnid record and the six-field BinEntry projection, plus
// the shared interface that lets filters, prefixing and caching code
// operate on either one.

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

import "fmt"

// KsnidCommon0 and KsnidCommon1 are the two precomputed ksnid strings
// that the single-packed mapping encoding refers to directly.
const (
	KsnidCommon0 = "1;;;;;;;;;"
	KsnidCommon1 = "1;;;;G;1;;;"
)

// IgnoredVariants are mark atoms dropped silently when MarkToSet
// normalizes a mark-feature set for lookup_variants comparisons.
var IgnoredVariants = map[string]bool{
	"0": true, "1": true, "2": true, "3": true, "subj": true, "none": true,
}

// Entry is implemented by both BinEntry and Ksnid and exposes the six
// fields that filters, the cache key and the compound-prefixing logic
// need regardless of which record shape they are handling.
type Entry interface {
	Lemma() string
	BinID() int
	WordClass() string
	Domain() string
	Form() string
	MarkStr() string
}

// BinEntry is the six-field projection of a vocabulary record:
// lemma, bin_id, word-class, domain, surface form and inflection mark.
type BinEntry struct {
	Ord   string
	BinId int
	Ofl   string
	Hluti string
	Bmynd string
	Mark  string
}

func (e BinEntry) Lemma() string     { return e.Ord }
func (e BinEntry) BinID() int        { return e.BinId }
func (e BinEntry) WordClass() string { return e.Ofl }
func (e BinEntry) Domain() string    { return e.Hluti }
func (e BinEntry) Form() string      { return e.Bmynd }
func (e BinEntry) MarkStr() string   { return e.Mark }

func (e BinEntry) String() string {
	return fmt.Sprintf("%s (%d) %s/%s %s %s", e.Ord, e.BinId, e.Ofl, e.Hluti, e.Bmynd, e.Mark)
}

// Ksnid is the full fifteen-field vocabulary record.
type Ksnid struct {
	Ord        string
	BinId      int
	Ofl        string
	Hluti      string
	Einkunn    int
	Malsnid    string
	Malfraedi  string
	Millivisun int
	Birting    string
	Bmynd      string
	Mark       string
	Beinkunn   int
	Bmalsnid   string
	Bgildi     string
	Aukafletta string
}

func (k Ksnid) Lemma() string     { return k.Ord }
func (k Ksnid) BinID() int        { return k.BinId }
func (k Ksnid) WordClass() string { return k.Ofl }
func (k Ksnid) Domain() string    { return k.Hluti }
func (k Ksnid) Form() string      { return k.Bmynd }
func (k Ksnid) MarkStr() string   { return k.Mark }

func (k Ksnid) String() string {
	return fmt.Sprintf("%s (%d) %s/%s %s %s [%s]", k.Ord, k.BinId, k.Ofl, k.Hluti, k.Bmynd, k.Mark, k.KsnidString())
}

// KsnidString reconstructs the semicolon-separated ancillary-field
// string, the ten fields beyond the BinEntry projection.
func (k Ksnid) KsnidString() string {
	return fmt.Sprintf("%d;%s;%d;%s;;%d;%s;%s;%s;%s",
		k.Einkunn, k.Malsnid, k.Millivisun, birtingOrDash(k.Birting),
		k.Beinkunn, k.Bmalsnid, k.Bgildi, k.Aukafletta, k.Malfraedi)
}

func birtingOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ToBinEntry projects a Ksnid record down to its BinEntry fields.
func (k Ksnid) ToBinEntry() BinEntry {
	return BinEntry{
		Ord:   k.Ord,
		BinId: k.BinId,
		Ofl:   k.Ofl,
		Hluti: k.Hluti,
		Bmynd: k.Bmynd,
		Mark:  k.Mark,
	}
}

// ParseKsnidString parses the ten-field ancillary string stored in the
// ksnid-strings side table (component D) into the corresponding Ksnid
// fields, given the already-decoded six common fields.
func ParseKsnidString(base BinEntry, s string) Ksnid {
	k := Ksnid{
		Ord:   base.Ord,
		BinId: base.BinId,
		Ofl:   base.Ofl,
		Hluti: base.Hluti,
		Bmynd: base.Bmynd,
		Mark:  base.Mark,
	}
	fields := splitN(s, ';', 10)
	k.Einkunn = 1
	k.Beinkunn = 1
	if len(fields) > 0 {
		k.Einkunn = atoiOr(fields[0], 1)
	}
	if len(fields) > 1 {
		k.Malsnid = fields[1]
	}
	if len(fields) > 2 {
		k.Millivisun = atoiOr(fields[2], 0)
	}
	if len(fields) > 3 {
		k.Birting = fields[3]
	}
	if len(fields) > 5 {
		k.Beinkunn = atoiOr(fields[5], 1)
	}
	if len(fields) > 6 {
		k.Bmalsnid = fields[6]
	}
	if len(fields) > 7 {
		k.Bgildi = fields[7]
	}
	if len(fields) > 8 {
		k.Aukafletta = fields[8]
	}
	if len(fields) > 9 {
		k.Malfraedi = fields[9]
	}
	return k
}

func splitN(s string, sep byte, n int) []string {
	out := make([]string, 0, n)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return def
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}
