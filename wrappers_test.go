// wrappers_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package binpack

import "testing"

func TestFilterErrataAppliesOverrideAndDeletion(t *testing.T) {
	s := NewSettings()
	s.BinErrata[[2]string{"hestur", "kk"}] = "dýr"
	s.BinDeletions[[3]string{"gæludýr", "kk", "úrelt"}] = true
	d := NewDictionary(nil, nil, s)

	entries := []BinEntry{
		{Ord: "hestur", Ofl: "kk", Hluti: "alm"},
		{Ord: "gæludýr", Ofl: "kk", Hluti: "úrelt"},
		{Ord: "köttur", Ofl: "kk", Hluti: "dýr"},
	}
	got := d.filterErrata(entries)
	if len(got) != 2 {
		t.Fatalf("expected one entry to be deleted, got %d: %v", len(got), got)
	}
	if got[0].Hluti != "dýr" {
		t.Errorf("expected bin_errata override to set Hluti=dýr, got %q", got[0].Hluti)
	}
	if got[1].Ord != "köttur" {
		t.Errorf("expected the non-errata entry to pass through unchanged, got %+v", got[1])
	}
}

func TestFilterErrataNilSettingsPassesThrough(t *testing.T) {
	d := NewDictionary(nil, nil, nil)
	entries := []BinEntry{{Ord: "hestur"}}
	got := d.filterErrata(entries)
	if len(got) != 1 || got[0].Ord != "hestur" {
		t.Errorf("expected entries to pass through unchanged with nil settings, got %v", got)
	}
}

func TestPreferenceWorseAndBetter(t *testing.T) {
	s := NewSettings()
	s.Preferences["slatti"] = []PreferenceHint{{Worse: []string{"kk"}, Better: []string{"kvk"}, Factor: 3}}
	d := NewDictionary(nil, nil, s)

	worse := BinEntry{Ofl: "kk", Mark: "NFET"}
	better := BinEntry{Ofl: "kvk", Mark: "NFET"}
	if d.Preference("slatti", worse) >= d.Preference("slatti", better) {
		t.Errorf("expected kvk to score higher than kk for 'slatti': kk=%d kvk=%d",
			d.Preference("slatti", worse), d.Preference("slatti", better))
	}
}

func TestPreferenceNounGender(t *testing.T) {
	s := NewSettings()
	s.NounPreferences["slatti"] = map[string]int{"kk": -2, "kvk": 2}
	d := NewDictionary(nil, nil, s)

	kk := BinEntry{Ofl: "kk", Hluti: "alm"}
	kvk := BinEntry{Ofl: "kvk", Hluti: "alm"}
	if d.Preference("slatti", kk) >= d.Preference("slatti", kvk) {
		t.Errorf("expected kvk noun preference to outscore kk")
	}
}

func TestPreferenceNilSettingsIsZero(t *testing.T) {
	d := NewDictionary(nil, nil, nil)
	if got := d.Preference("anything", BinEntry{Ofl: "kk"}); got != 0 {
		t.Errorf("expected zero preference with nil settings, got %d", got)
	}
}
