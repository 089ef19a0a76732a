// config.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the config/errata loader (component I): a
// line-oriented, $include-aware configuration format carrying BÍN
// errata and deletion sets, adjective-ending templates, and
// noun/stem/ambiguity disambiguation hints.

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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigError reports a malformed configuration line, with file/line
// position attached once the reader can identify it.
type ConfigError struct {
	Msg  string
	File string
	Line int
}

func (e *ConfigError) Error() string {
	if e.File == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// lineReader yields logical lines from a config file, expanding
// "$include other.conf" directives relative to the including file's
// directory and joining backslash-continued lines.
type lineReader struct {
	fname string
	line  int
	stack []*lineReaderFrame
}

type lineReaderFrame struct {
	scanner *bufio.Scanner
	file    *os.File
	fname   string
	line    int
	dir     string
}

func newLineReader(fname string) (*lineReader, error) {
	lr := &lineReader{}
	if err := lr.push(fname); err != nil {
		return nil, err
	}
	return lr, nil
}

func (lr *lineReader) push(fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	lr.stack = append(lr.stack, &lineReaderFrame{
		scanner: bufio.NewScanner(f),
		file:    f,
		fname:   fname,
		dir:     filepath.Dir(fname),
	})
	return nil
}

// Fname and Line report the current file/line position, for error
// reporting.
func (lr *lineReader) Fname() string { return lr.fname }
func (lr *lineReader) Line() int     { return lr.line }

// Lines calls yield once per logical line, stopping on the first
// error yield returns.
func (lr *lineReader) Lines(yield func(string) error) error {
	for len(lr.stack) > 0 {
		top := lr.stack[len(lr.stack)-1]
		if !top.scanner.Scan() {
			top.file.Close()
			lr.stack = lr.stack[:len(lr.stack)-1]
			continue
		}
		top.line++
		lr.fname = top.fname
		lr.line = top.line
		raw := top.scanner.Text()
		for strings.HasSuffix(raw, "\\") && top.scanner.Scan() {
			top.line++
			raw = raw[:len(raw)-1] + top.scanner.Text()
		}
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, "$include ") {
			inc := strings.TrimSpace(strings.TrimPrefix(trimmed, "$include "))
			if !filepath.IsAbs(inc) {
				inc = filepath.Join(top.dir, inc)
			}
			if err := lr.push(inc); err != nil {
				return configErrorf("cannot include %q: %v", inc, err)
			}
			continue
		}
		if err := yield(raw); err != nil {
			return err
		}
	}
	return nil
}

// AdjectiveEnding is one (ending, form-specifier) pair used to
// synthesize "legur"-style adjectives not present in the core image.
type AdjectiveEnding struct {
	Ending string
	Form   string
}

// PreferenceHint is a (worse, better, factor) ambiguity-resolution
// hint: among candidate meanings for a word form, prefer one whose
// mark starts with any "better" prefix over one starting with any
// "worse" prefix, weighted by factor.
type PreferenceHint struct {
	Worse  []string
	Better []string
	Factor int
}

// Settings holds every config-driven table consulted by the
// Dictionary facade (component K): BÍN errata/deletions, adjective
// templates, and the three disambiguation-preference tables.
type Settings struct {
	AdjectiveEndings []AdjectiveEnding
	Preferences      map[string][]PreferenceHint
	StemPreferences  map[string][2][]string
	NounPreferences  map[string]map[string]int
	BinErrata        map[[2]string]string // (lemma, ofl) -> fl
	BinDeletions     map[[3]string]bool   // (lemma, ofl, fl)
}

func NewSettings() *Settings {
	return &Settings{
		Preferences:     make(map[string][]PreferenceHint),
		StemPreferences: make(map[string][2][]string),
		NounPreferences: make(map[string]map[string]int),
		BinErrata:       make(map[[2]string]string),
		BinDeletions:    make(map[[3]string]bool),
	}
}

// ReadSettings parses a configuration file in the bracketed-section
// format described in config.go's package comment, dispatching each
// line to the handler registered for the current section.
func ReadSettings(fname string) (*Settings, error) {
	s := NewSettings()
	lr, err := newLineReader(fname)
	if err != nil {
		return nil, fmt.Errorf("binpack: opening config %q: %w", fname, err)
	}
	var section string
	handlers := map[string]func(*Settings, string) error{
		"preferences":            handlePreferences,
		"noun_preferences":       handleNounPreferences,
		"stem_preferences":       handleStemPreferences,
		"adjective_template":     handleAdjectiveTemplate,
		"undeclinable_adjectives": func(*Settings, string) error { return nil },
		"bin_errata":             handleBinErrata,
		"bin_deletions":          handleBinDeletions,
	}
	err = lr.Lines(func(raw string) error {
		line := raw
		if ix := strings.IndexByte(line, '#'); ix >= 0 {
			line = line[:ix]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sec := strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			if _, ok := handlers[sec]; !ok {
				return withPos(lr, configErrorf("unknown section name %q", sec))
			}
			section = sec
			return nil
		}
		if section == "" {
			return withPos(lr, configErrorf("no section handler for line %q", line))
		}
		if err := handlers[section](s, line); err != nil {
			if ce, ok := err.(*ConfigError); ok && ce.File == "" {
				ce.File = lr.Fname()
				ce.Line = lr.Line()
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func withPos(lr *lineReader, ce *ConfigError) *ConfigError {
	ce.File = lr.Fname()
	ce.Line = lr.Line()
	return ce
}

// handlePreferences parses "word worse1 worse2... < better" lines,
// with "<<"/"<<<" selecting factor 3/9 over the default factor 1.
func handlePreferences(s *Settings, line string) error {
	lower := strings.ToLower(line)
	factor := 9
	parts := strings.SplitN(lower, "<<<", 2)
	if len(parts) != 2 {
		factor = 3
		parts = strings.SplitN(lower, "<<", 2)
		if len(parts) != 2 {
			factor = 1
			parts = strings.SplitN(lower, "<", 2)
		}
	}
	if len(parts) != 2 {
		return configErrorf("ambiguity preference missing '<'")
	}
	w := strings.Fields(parts[0])
	if len(w) < 2 {
		return configErrorf("ambiguity preference must have at least one 'worse' category")
	}
	b := strings.Fields(parts[1])
	if len(b) < 1 {
		return configErrorf("ambiguity preference must have at least one 'better' category")
	}
	s.Preferences[w[0]] = append(s.Preferences[w[0]], PreferenceHint{Worse: w[1:], Better: b, Factor: factor})
	return nil
}

func handleStemPreferences(s *Settings, line string) error {
	lower := strings.ToLower(line)
	parts := strings.SplitN(lower, "<", 2)
	if len(parts) != 2 {
		return configErrorf("ambiguity preference missing '<'")
	}
	w := strings.Fields(parts[0])
	if len(w) < 2 {
		return configErrorf("ambiguity preference must have at least one 'worse' category")
	}
	b := strings.Fields(parts[1])
	if len(b) < 1 {
		return configErrorf("ambiguity preference must have at least one 'better' category")
	}
	if _, ok := s.StemPreferences[w[0]]; ok {
		return configErrorf("duplicate lemma preference for word form %s", w[0])
	}
	s.StemPreferences[w[0]] = [2][]string{w[1:], b}
	return nil
}

func handleNounPreferences(s *Settings, line string) error {
	lower := strings.ToLower(line)
	parts := strings.SplitN(lower, "<", 2)
	if len(parts) != 2 {
		return configErrorf("noun preference missing '<'")
	}
	w := strings.Fields(parts[0])
	if len(w) != 2 {
		return configErrorf("noun preference must have exactly one 'worse' gender")
	}
	b := strings.Fields(parts[1])
	if len(b) != 1 {
		return configErrorf("noun preference must have exactly one 'better' gender")
	}
	word, worse, better := w[0], w[1], b[0]
	if !isGender(worse) || !isGender(better) {
		return configErrorf("noun priorities must specify genders (kk, kvk, hk)")
	}
	d, ok := s.NounPreferences[word]
	if !ok {
		d = make(map[string]int)
		s.NounPreferences[word] = d
	}
	worseScore, hasWorse := d[worse]
	betterScore, hasBetter := d[better]
	switch {
	case hasWorse && hasBetter:
		return configErrorf("conflicting priorities for noun %s", word)
	case hasWorse:
		betterScore = worseScore + 4
	case hasBetter:
		worseScore = betterScore - 4
	default:
		worseScore, betterScore = -2, 2
	}
	d[worse] = worseScore
	d[better] = betterScore
	return nil
}

func isGender(g string) bool {
	return g == "kk" || g == "kvk" || g == "hk"
}

func handleBinErrata(s *Settings, line string) error {
	a := strings.Fields(line)
	if len(a) != 3 {
		return configErrorf("expected 'lemma ofl fl' fields in bin_errata section")
	}
	lemma, ofl, fl := a[0], a[1], a[2]
	if ofl != strings.ToLower(ofl) || fl != strings.ToLower(fl) {
		return configErrorf("expected lowercase ofl and fl fields in bin_errata section")
	}
	s.BinErrata[[2]string{lemma, ofl}] = fl
	return nil
}

func handleBinDeletions(s *Settings, line string) error {
	a := strings.Fields(line)
	if len(a) != 3 {
		return configErrorf("expected 'lemma ofl fl' fields in bin_deletions section")
	}
	lemma, ofl, fl := a[0], a[1], a[2]
	if ofl != strings.ToLower(ofl) || fl != strings.ToLower(fl) {
		return configErrorf("expected lowercase ofl and fl fields in bin_deletions section")
	}
	s.BinDeletions[[3]string{lemma, ofl, fl}] = true
	return nil
}

func handleAdjectiveTemplate(s *Settings, line string) error {
	a := strings.Fields(line)
	if len(a) != 2 {
		return configErrorf("adjective template should have an ending and a form specifier")
	}
	s.AdjectiveEndings = append(s.AdjectiveEndings, AdjectiveEnding{Ending: a[0], Form: a[1]})
	return nil
}
