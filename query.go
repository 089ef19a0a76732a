// query.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the query engine (component F): filtered
// lookup, id-based lookup, case casting, and variant generation,
// composed on top of components B-E.

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
	"fmt"
	"sort"
	"strings"
)

// Engine is the core query engine: an opened Image plus the LFU
// cache (component H) that bounds memory for hot forms.
type Engine struct {
	img   *Image
	cache *LFUCache
	mo    *MarkOrder
}

// NewEngine wraps an opened Image in a query Engine with an LFU cache
// of the given size (0 selects LFUDefault).
func NewEngine(img *Image, cacheSize int) *Engine {
	return &Engine{
		img:   img,
		cache: NewLFUCache(cacheSize),
		mo:    DefaultMarkOrder(),
	}
}

// Filters narrows a query's results. Cat == "" means any word class;
// Cat == "no" means any noun gender (kk/kvk/hk). BinId <= 0 means any
// (real bin_ids are always >= 1; 0 marks a synthesized entry).
type Filters struct {
	Cat              string
	Lemma            string
	BinId            int
	InflectionFilter func(mark string) bool
}

func matchesFilters(e BinEntry, f Filters) bool {
	if f.Cat != "" {
		if f.Cat == "no" {
			if e.Ofl != "kk" && e.Ofl != "kvk" && e.Ofl != "hk" {
				return false
			}
		} else if !strings.EqualFold(e.Ofl, f.Cat) {
			return false
		}
	}
	if f.Lemma != "" && e.Ord != f.Lemma {
		return false
	}
	if f.BinId > 0 && e.BinId != f.BinId {
		return false
	}
	if f.InflectionFilter != nil && !f.InflectionFilter(e.Mark) {
		return false
	}
	return true
}

// rawEntries decodes every mapping record for word into BinEntry/Ksnid
// precursors, without applying filters.
func (e *Engine) rawEntries(word string) ([]BinEntry, []mappingRecord, bool) {
	latin1, ok := ToLatin1(word)
	if !ok {
		return nil, nil, false
	}
	formVal := e.img.lookupForm(latin1)
	if formVal == NoValue {
		return nil, nil, false
	}
	recs := e.img.rawLookup(formVal)
	entries := make([]BinEntry, len(recs))
	for i, r := range recs {
		ofl, mark := e.img.meaning(r.MeaningFreq)
		lem := e.img.lemmaOf(r.BinId)
		entries[i] = BinEntry{
			Ord:   lem.Lemma,
			BinId: r.BinId,
			Ofl:   ofl,
			Hluti: e.img.Subcat(lem.DomainIx),
			Bmynd: word,
			Mark:  mark,
		}
	}
	return entries, recs, true
}

// Contains reports whether word has any entry in the image at all.
func (e *Engine) Contains(word string) bool {
	latin1, ok := ToLatin1(word)
	if !ok {
		return false
	}
	return e.img.ContainsForm(latin1)
}

// Lookup implements the core lookup(word) -> []BinEntry operation.
func (e *Engine) Lookup(word string, f Filters) []BinEntry {
	entries, _, ok := e.rawEntries(word)
	if !ok {
		return nil
	}
	var out []BinEntry
	for _, be := range entries {
		if matchesFilters(be, f) {
			out = append(out, be)
		}
	}
	return out
}

// LookupKsnid implements lookup_ksnid(word) -> []Ksnid.
func (e *Engine) LookupKsnid(word string, f Filters) []Ksnid {
	cacheKey := fmt.Sprintf("%s\x00%s\x00%s\x00%d", word, f.Cat, f.Lemma, f.BinId)
	v := e.cache.Lookup(cacheKey, func(string) any {
		entries, recs, ok := e.rawEntries(word)
		if !ok {
			return []Ksnid{}
		}
		out := make([]Ksnid, 0, len(entries))
		for i, be := range entries {
			if !matchesFilters(be, f) {
				continue
			}
			r := recs[i]
			ksnidIx := r.KsnidIx
			if r.CommonKsnid >= 0 {
				ksnidIx = r.CommonKsnid
			}
			ks := e.img.ksnidString(ksnidIx)
			out = append(out, ParseKsnidString(be, ks))
		}
		return out
	})
	return v.([]Ksnid)
}

// LookupID implements lookup_id(bin_id) -> []Ksnid: enumerate every
// inflected form of the lemma and keep only the entries whose
// mapping record actually carries the requested bin_id (filtering
// out homographs sharing the same surface forms).
func (e *Engine) LookupID(binId int) []Ksnid {
	lem := e.img.lemmaOf(binId)
	if !lem.Found {
		return nil
	}
	forms := e.img.lemmaForms(lem)
	var out []Ksnid
	for _, form := range forms {
		out = append(out, e.LookupKsnid(form, Filters{BinId: binId})...)
	}
	return out
}

// CaseOptions controls how lookup_case normalizes mark strings before
// comparing the candidate and source "beyging signatures". Indefinite
// strips the "gr" marker and AllForms strips the number; Singular is
// not read and has no effect.
type CaseOptions struct {
	Singular   bool
	Indefinite bool
	AllForms   bool
}

var caseSubstrings = []string{"ÞGF", "NF", "ÞF", "EF"}

func stripCaseAndOptions(mark string, opts CaseOptions) string {
	s := mark
	for _, c := range caseSubstrings {
		s = strings.Replace(s, c, "", 1)
	}
	if opts.Indefinite {
		s = strings.Replace(s, "gr", "", 1)
	}
	if opts.AllForms {
		s = strings.Replace(s, "ET", "", 1)
		s = strings.Replace(s, "FT", "", 1)
	}
	return s
}

// LookupCase implements lookup_case(word, case, ...) -> set of
// BinEntry: find the desired-case sibling form(s) of every matching
// meaning of word, preserving number and definiteness per opts.
func (e *Engine) LookupCase(word, caseSubstr string, f Filters, opts CaseOptions) []BinEntry {
	sources := e.Lookup(word, f)
	seen := make(map[string]BinEntry)
	for _, src := range sources {
		srcSig := stripCaseAndOptions(src.Mark, opts)
		lem := e.img.lemmaOf(src.BinId)
		for _, form := range e.img.lemmaForms(lem) {
			for _, cand := range e.Lookup(form, Filters{BinId: src.BinId}) {
				if !strings.Contains(cand.Mark, caseSubstr) {
					continue
				}
				if stripCaseAndOptions(cand.Mark, opts) != srcSig {
					continue
				}
				seen[cand.Bmynd+"|"+cand.Mark] = cand
			}
		}
	}
	out := make([]BinEntry, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	return out
}

// LookupForms implements lookup_forms(lemma, cat, case) -> []BinEntry,
// a convenience narrowing of LookupCase with AllForms set.
func (e *Engine) LookupForms(lemma, cat, caseSubstr string) []BinEntry {
	return e.LookupCase(lemma, caseSubstr, Filters{Cat: cat, Lemma: lemma}, CaseOptions{AllForms: true})
}

// LookupVariants implements lookup_variants(word, cat, to_inflection)
// -> []Ksnid, ordered best-first by ascending symmetric difference
// between each candidate's mark-feature set and the source's
// aggregated feature set.
func (e *Engine) LookupVariants(word, cat string, toInflection []string, f Filters) ([]Ksnid, error) {
	want := make(featureSet)
	requireNoGr := false
	for _, atom := range toInflection {
		if atom == "nogr" {
			requireNoGr = true
			continue
		}
		atomSet, err := MarkToSet(atom)
		if err != nil {
			return nil, err
		}
		for k := range atomSet {
			want[k] = true
		}
	}
	ff := f
	ff.Cat = cat
	sources := e.LookupKsnid(word, ff)
	aggregated := make(featureSet)
	var candidates []Ksnid
	seen := make(map[string]bool)
	for _, src := range sources {
		srcSet, err := MarkToSet(src.Mark)
		if err != nil {
			return nil, err
		}
		aggregated = union(aggregated, srcSet)
		lem := e.img.lemmaOf(src.BinId)
		for _, form := range e.img.lemmaForms(lem) {
			for _, cand := range e.LookupKsnid(form, Filters{BinId: src.BinId}) {
				candSet, err := MarkToSet(cand.Mark)
				if err != nil {
					continue
				}
				if !isSuperset(candSet, want) {
					continue
				}
				if requireNoGr && candSet["gr"] {
					continue
				}
				key := fmt.Sprintf("%s|%s|%d", cand.Bmynd, cand.Mark, cand.BinId)
				if seen[key] {
					continue
				}
				seen[key] = true
				candidates = append(candidates, cand)
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, _ := MarkToSet(candidates[i].Mark)
		sj, _ := MarkToSet(candidates[j].Mark)
		return symmetricDifference(si, aggregated) < symmetricDifference(sj, aggregated)
	})
	return candidates, nil
}

// LookupLemmas implements lookup_lemmas(word) -> []BinEntry: keeps
// only canonical-mark representative entries per bin_id.
func (e *Engine) LookupLemmas(word string) []BinEntry {
	best := make(map[int]BinEntry)
	for _, be := range e.Lookup(word, Filters{}) {
		if isLemmaCanonicalMark(be.Ofl, be.Mark) {
			if _, ok := best[be.BinId]; !ok {
				best[be.BinId] = be
			}
		}
	}
	out := make([]BinEntry, 0, len(best))
	for _, v := range best {
		out = append(out, v)
	}
	return out
}

// nounPreferenceOrder gives the noun-gender preference ordering
// CastToCase uses to pick a representative entry. It is fixed:
// NounPreferences from a Settings table are not consulted.
var nounPreferenceOrder = map[string]int{"kk": 0, "hk": 1, "kvk": 2, "no": 3}

// CastToCase implements cast_to_case(word, to_case, filter?): picks a
// representative meaning of word and returns the corresponding form
// in toCase, imitating the original's capitalization.
func (e *Engine) CastToCase(word, toCase string, filterFunc func(Entry) bool) string {
	entries := e.LookupKsnid(word, Filters{})
	if len(entries) == 0 {
		return word
	}
	var rep *Ksnid
	for i := range entries {
		if entries[i].Ofl == "lo" && strings.Contains(entries[i].Mark, "NF") {
			rep = &entries[i]
			break
		}
	}
	if rep == nil {
		bestScore := 1 << 30
		for i := range entries {
			if filterFunc != nil && !filterFunc(entries[i]) {
				continue
			}
			score, ok := nounPreferenceOrder[entries[i].Ofl]
			if !ok {
				score = 99
			}
			if score < bestScore {
				bestScore = score
				rep = &entries[i]
			}
		}
	}
	if rep == nil {
		return word
	}
	if strings.Contains(rep.Bmynd, "-") && !strings.Contains(word, "-") {
		parts := strings.Split(rep.Bmynd, "-")
		last := parts[len(parts)-1]
		prefix := strings.Join(parts[:len(parts)-1], "-")
		return prefix + "-" + e.CastToCase(last, toCase, filterFunc)
	}
	forms := e.LookupCase(rep.Bmynd, toCase, Filters{Cat: rep.Ofl, Lemma: rep.Ord}, CaseOptions{})
	if len(forms) == 0 {
		return word
	}
	sort.Slice(forms, func(i, j int) bool { return len(forms[i].Bmynd) < len(forms[j].Bmynd) })
	return imitateCapitalization(word, forms[0].Bmynd)
}

func imitateCapitalization(original, newForm string) string {
	if original == strings.ToUpper(original) && original != strings.ToLower(original) {
		return strings.ToUpper(newForm)
	}
	runes := []rune(original)
	if len(runes) > 0 && runes[0] == []rune(strings.ToUpper(string(runes[0])))[0] {
		nr := []rune(newForm)
		if len(nr) == 0 {
			return newForm
		}
		return strings.ToUpper(string(nr[0])) + string(nr[1:])
	}
	return newForm
}

// Nominative, Accusative, Dative and Genitive are sugar over
// LookupCase for the four Icelandic cases.
func (e *Engine) Nominative(word string, opts CaseOptions) []BinEntry {
	return e.LookupCase(word, "NF", Filters{}, opts)
}
func (e *Engine) Accusative(word string, opts CaseOptions) []BinEntry {
	return e.LookupCase(word, "ÞF", Filters{}, opts)
}
func (e *Engine) Dative(word string, opts CaseOptions) []BinEntry {
	return e.LookupCase(word, "ÞGF", Filters{}, opts)
}
func (e *Engine) Genitive(word string, opts CaseOptions) []BinEntry {
	return e.LookupCase(word, "EF", Filters{}, opts)
}

// MarkOrder exposes the engine's mark-order table to callers that
// want deterministic mark ordering in their own output.
func (e *Engine) MarkOrder() *MarkOrder { return e.mo }
