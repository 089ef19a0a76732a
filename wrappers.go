// wrappers.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Dictionary facade (component K): the
// public entry point that wraps the raw query Engine with the
// convenience behaviors a caller actually wants — auto-uppercase
// fallback, z/s spelling normalization, "ó-" negation, "-legur"
// adjective synthesis, compound-word fallback, and errata/deletion
// filtering driven by a loaded Settings table.

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
	"strings"
	"unicode"
)

// Dictionary is the public, caller-facing lookup facade: an Engine
// plus an optional Compounder and Settings table, applying the
// fallback chain the raw Engine does not.
type Dictionary struct {
	engine     *Engine
	compounder *Compounder
	settings   *Settings
}

// NewDictionary wraps engine with the given (optional) compounder and
// settings. Either may be nil, in which case the corresponding
// fallback behavior is skipped.
func NewDictionary(engine *Engine, compounder *Compounder, settings *Settings) *Dictionary {
	return &Dictionary{engine: engine, compounder: compounder, settings: settings}
}

// filterErrata applies BinErrata substitutions (reassigning Hluti per
// a (lemma, ofl)->fl override) and drops BinDeletions matches.
func (d *Dictionary) filterErrata(entries []BinEntry) []BinEntry {
	if d.settings == nil {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if d.settings.BinDeletions[[3]string{e.Ord, e.Ofl, e.Hluti}] {
			continue
		}
		if fl, ok := d.settings.BinErrata[[2]string{e.Ord, e.Ofl}]; ok {
			e.Hluti = fl
		}
		out = append(out, e)
	}
	return out
}

// LookupResult pairs a returned BinEntry list with the word form it
// was found under, mirroring the original's (w, m) tuple where w may
// differ from the queried word (the z/s spelling fallback reports the
// respelled form).
type LookupResult struct {
	Word    string
	Entries []BinEntry
}

// Lookup implements the dictionary's word -> entries operation with
// the full fallback chain: direct hit, capitalized retry, z/s
// normalization, ó- negation removal, -legur synthesis, then
// compound-word decomposition.
func (d *Dictionary) Lookup(word string) LookupResult {
	if entries := d.filterErrata(d.engine.Lookup(word, Filters{})); len(entries) > 0 {
		return LookupResult{Word: word, Entries: entries}
	}
	if entries := d.lookupUppercaseFallback(word); len(entries) > 0 {
		return LookupResult{Word: word, Entries: entries}
	}
	if alt, entries := d.lookupSpellingFallback(word); len(entries) > 0 {
		return LookupResult{Word: alt, Entries: entries}
	}
	if entries := d.lookupNegationFallback(word); len(entries) > 0 {
		return LookupResult{Word: word, Entries: entries}
	}
	if entries := d.lookupAdjectiveFallback(word); len(entries) > 0 {
		return LookupResult{Word: word, Entries: entries}
	}
	if entries := d.lookupCompoundFallback(word); len(entries) > 0 {
		return LookupResult{Word: word, Entries: entries}
	}
	return LookupResult{Word: word, Entries: nil}
}

// lookupUppercaseFallback retries an all-lowercase miss with an
// initial capital, since many BÍN lemmas (proper nouns, sentence
// starts) are only stored capitalized.
func (d *Dictionary) lookupUppercaseFallback(word string) []BinEntry {
	runes := []rune(word)
	if len(runes) == 0 || unicode.IsUpper(runes[0]) {
		return nil
	}
	capped := strings.ToUpper(string(runes[0])) + string(runes[1:])
	return d.filterErrata(d.engine.Lookup(capped, Filters{}))
}

// lookupSpellingFallback retries a miss with every "z" replaced by
// "s", the historical Icelandic spelling reform BÍN itself does not
// carry entries for under the old spelling.
func (d *Dictionary) lookupSpellingFallback(word string) (string, []BinEntry) {
	if !strings.ContainsAny(word, "zZ") {
		return word, nil
	}
	repl := strings.NewReplacer("z", "s", "Z", "S")
	alt := repl.Replace(word)
	return alt, d.filterErrata(d.engine.Lookup(alt, Filters{}))
}

// lookupNegationFallback strips a leading "ó-" negation prefix and
// retries the remainder, keeping only adjective hits; each hit is
// returned with "ó" prefixed to its lemma and the queried word as its
// form, mirroring un-/non- treatment for "-legur"-style derived
// adjectives not listed in their negated form.
func (d *Dictionary) lookupNegationFallback(word string) []BinEntry {
	lower := []rune(strings.ToLower(word))
	if len(lower) < 3 || lower[0] != 'ó' {
		return nil
	}
	base := string(lower[1:])
	entries := d.filterErrata(d.engine.Lookup(base, Filters{Cat: "lo"}))
	if len(entries) == 0 {
		return nil
	}
	out := make([]BinEntry, len(entries))
	for i, e := range entries {
		e.Ord = "ó" + e.Ord
		e.Bmynd = word
		out[i] = e
	}
	return out
}

// lookupAdjectiveFallback synthesizes a "-legur"-family adjective
// form from its ending, per the AdjectiveEndings table, when no
// direct entry exists.
func (d *Dictionary) lookupAdjectiveFallback(word string) []BinEntry {
	if d.settings == nil {
		return nil
	}
	lower := strings.ToLower(word)
	for _, ending := range d.settings.AdjectiveEndings {
		if strings.HasSuffix(lower, ending.Ending) {
			return []BinEntry{{
				Ord:   lower,
				BinId: 0,
				Ofl:   "lo",
				Hluti: "alm",
				Bmynd: word,
				Mark:  ending.Form,
			}}
		}
	}
	return nil
}

// lookupCompoundFallback slices an unknown word into known parts via
// the Compounder and reports the last part's meanings, with the
// leading parts joined and prefixed to the lemma with a hyphen and
// bin_id set to 0, per the original's "samsett orð" handling.
func (d *Dictionary) lookupCompoundFallback(word string) []BinEntry {
	if d.compounder == nil {
		return nil
	}
	parts := d.compounder.SliceCompoundWord(strings.ToLower(word))
	if len(parts) < 2 {
		return nil
	}
	last := parts[len(parts)-1]
	head := strings.Join(parts[:len(parts)-1], "")
	entries := d.filterErrata(d.engine.Lookup(last, Filters{}))
	out := make([]BinEntry, len(entries))
	for i, e := range entries {
		e.Ord = head + "-" + e.Ord
		e.Bmynd = word
		e.BinId = 0
		out[i] = e
	}
	return out
}

// LookupKsnid mirrors Lookup but returns full Ksnid records for the
// direct-hit path only; fallback paths (which synthesize bin_id == 0
// entries) are reported via Lookup instead since they have no backing
// ksnid side-table row.
func (d *Dictionary) LookupKsnid(word string) []Ksnid {
	return d.engine.LookupKsnid(word, Filters{})
}

// Preference resolves the disambiguation weight of a candidate entry
// for a given word form, consulting the Settings preference tables.
// Higher is better.
func (d *Dictionary) Preference(word string, e BinEntry) int {
	if d.settings == nil {
		return 0
	}
	score := 0
	if hints, ok := d.settings.Preferences[word]; ok {
		for _, h := range hints {
			for _, w := range h.Worse {
				if strings.HasPrefix(e.Mark, w) || strings.EqualFold(e.Ofl, w) {
					score -= h.Factor
				}
			}
			for _, b := range h.Better {
				if strings.HasPrefix(e.Mark, b) || strings.EqualFold(e.Ofl, b) {
					score += h.Factor
				}
			}
		}
	}
	if isGender(e.Ofl) {
		if genders, ok := d.settings.NounPreferences[word]; ok {
			if s, ok := genders[e.Ofl]; ok {
				score += s
			}
		}
	}
	return score
}

// BestMeaning picks the single highest-preference entry among word's
// candidate meanings; on a tie the entry that comes first in lookup
// order is kept.
func (d *Dictionary) BestMeaning(word string) (BinEntry, bool) {
	entries := d.Lookup(word).Entries
	if len(entries) == 0 {
		return BinEntry{}, false
	}
	best := entries[0]
	bestScore := d.Preference(word, best)
	for _, e := range entries[1:] {
		s := d.Preference(word, e)
		if s > bestScore {
			best, bestScore = e, s
		}
	}
	return best, true
}

// Lemmas implements lookup_lemmas through the facade, applying the
// same errata filtering as Lookup.
func (d *Dictionary) Lemmas(word string) []BinEntry {
	return d.filterErrata(d.engine.LookupLemmas(word))
}

// Variants implements lookup_variants through the facade.
func (d *Dictionary) Variants(word, cat string, toInflection []string) ([]Ksnid, error) {
	return d.engine.LookupVariants(word, cat, toInflection, Filters{})
}

// CastToCase delegates to the Engine, offering the facade as the
// single place a caller needs to import.
func (d *Dictionary) CastToCase(word, toCase string, filterFunc func(Entry) bool) string {
	return d.engine.CastToCase(word, toCase, filterFunc)
}

// LookupKsnidByID implements lookup_id(bin_id) through the facade.
func (d *Dictionary) LookupKsnidByID(binId int) []Ksnid {
	return d.engine.LookupID(binId)
}

// LookupForms implements lookup_forms(lemma, cat, case) through the
// facade.
func (d *Dictionary) LookupForms(lemma, cat, caseSubstr string) []BinEntry {
	return d.engine.LookupForms(lemma, cat, caseSubstr)
}
