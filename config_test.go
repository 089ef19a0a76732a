// config_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package binpack

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestReadSettingsBinErrataAndDeletions(t *testing.T) {
	dir := t.TempDir()
	path := writeTempConfig(t, dir, "settings.conf", `
[bin_errata]
hestur kk alm

[bin_deletions]
gamalORÐ lo úrelt
`)
	s, err := ReadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fl, ok := s.BinErrata[[2]string{"hestur", "kk"}]; !ok || fl != "alm" {
		t.Errorf("expected bin_errata override hestur/kk -> alm, got %q (ok=%v)", fl, ok)
	}
	if !s.BinDeletions[[3]string{"gamalORÐ", "lo", "úrelt"}] {
		t.Errorf("expected bin_deletions entry for gamalORÐ/lo/úrelt")
	}
}

func TestReadSettingsPreferences(t *testing.T) {
	dir := t.TempDir()
	path := writeTempConfig(t, dir, "settings.conf", "[preferences]\nslatti kk << kvk\n")
	s, err := ReadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hints, ok := s.Preferences["slatti"]
	if !ok || len(hints) != 1 {
		t.Fatalf("expected one preference hint for 'slatti', got %v", s.Preferences)
	}
	if hints[0].Factor != 3 {
		t.Errorf("expected '<<' to select factor 3, got %d", hints[0].Factor)
	}
	if len(hints[0].Worse) != 1 || hints[0].Worse[0] != "kk" {
		t.Errorf("expected worse=[kk], got %v", hints[0].Worse)
	}
	if len(hints[0].Better) != 1 || hints[0].Better[0] != "kvk" {
		t.Errorf("expected better=[kvk], got %v", hints[0].Better)
	}
}

func TestReadSettingsNounPreferences(t *testing.T) {
	dir := t.TempDir()
	path := writeTempConfig(t, dir, "settings.conf", "[noun_preferences]\nslatti kk < kvk\n")
	s, err := ReadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scores, ok := s.NounPreferences["slatti"]
	if !ok {
		t.Fatalf("expected noun preference entry for 'slatti'")
	}
	if scores["kvk"] <= scores["kk"] {
		t.Errorf("expected kvk to outscore kk, got %v", scores)
	}
}

func TestReadSettingsAdjectiveTemplate(t *testing.T) {
	dir := t.TempDir()
	path := writeTempConfig(t, dir, "settings.conf", "[adjective_template]\nlegur FSB-KK-NFET\n")
	s, err := ReadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.AdjectiveEndings) != 1 || s.AdjectiveEndings[0].Ending != "legur" {
		t.Fatalf("expected one adjective ending 'legur', got %v", s.AdjectiveEndings)
	}
}

func TestReadSettingsUnknownSectionErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeTempConfig(t, dir, "settings.conf", "[not_a_real_section]\nfoo bar\n")
	if _, err := ReadSettings(path); err == nil {
		t.Fatal("expected an error for an unknown section name")
	}
}

func TestReadSettingsInclude(t *testing.T) {
	dir := t.TempDir()
	writeTempConfig(t, dir, "extra.conf", "[adjective_template]\nleg FSB-KK-NFET\n")
	path := writeTempConfig(t, dir, "settings.conf", "$include extra.conf\n")
	s, err := ReadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.AdjectiveEndings) != 1 {
		t.Fatalf("expected the included file's section to be parsed, got %v", s.AdjectiveEndings)
	}
}
