// entry_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package binpack

import "testing"

func TestBinEntryImplementsEntry(t *testing.T) {
	var _ Entry = BinEntry{}
	var _ Entry = Ksnid{}
}

func TestBinEntryAccessors(t *testing.T) {
	e := BinEntry{Ord: "hestur", BinId: 42, Ofl: "kk", Hluti: "dýr", Bmynd: "hesti", Mark: "ÞGFET"}
	if e.Lemma() != "hestur" || e.BinID() != 42 || e.WordClass() != "kk" ||
		e.Domain() != "dýr" || e.Form() != "hesti" || e.MarkStr() != "ÞGFET" {
		t.Errorf("unexpected accessor values for %#v", e)
	}
}

func TestKsnidToBinEntry(t *testing.T) {
	k := Ksnid{Ord: "hestur", BinId: 42, Ofl: "kk", Hluti: "dýr", Bmynd: "hesti", Mark: "ÞGFET"}
	b := k.ToBinEntry()
	want := BinEntry{Ord: "hestur", BinId: 42, Ofl: "kk", Hluti: "dýr", Bmynd: "hesti", Mark: "ÞGFET"}
	if b != want {
		t.Errorf("ToBinEntry() = %#v, want %#v", b, want)
	}
}

func TestParseKsnidStringRoundTrip(t *testing.T) {
	base := BinEntry{Ord: "hestur", BinId: 42, Ofl: "kk", Hluti: "dýr", Bmynd: "hesti", Mark: "ÞGFET"}
	raw := "1;ST;0;-;;1;;;;"
	k := ParseKsnidString(base, raw)
	if k.Einkunn != 1 || k.Malsnid != "ST" || k.Beinkunn != 1 {
		t.Errorf("unexpected parse result: %#v", k)
	}
	if k.Ord != base.Ord || k.BinId != base.BinId {
		t.Errorf("expected base fields to carry through, got %#v", k)
	}
}

func TestParseKsnidStringCommonConstants(t *testing.T) {
	base := BinEntry{Ord: "maður", BinId: 1, Ofl: "kk"}
	k0 := ParseKsnidString(base, KsnidCommon0)
	if k0.Einkunn != 1 || k0.Malsnid != "" {
		t.Errorf("unexpected parse of KsnidCommon0: %#v", k0)
	}
	k1 := ParseKsnidString(base, KsnidCommon1)
	if k1.Einkunn != 1 || k1.Beinkunn != 1 {
		t.Errorf("unexpected parse of KsnidCommon1: %#v", k1)
	}
}

func TestSplitN(t *testing.T) {
	got := splitN("a;b;c", ';', 3)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitN length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitN[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAtoiOr(t *testing.T) {
	if atoiOr("7", 0) != 7 {
		t.Error("expected atoiOr(\"7\", 0) == 7")
	}
	if atoiOr("", 9) != 9 {
		t.Error("expected atoiOr(\"\", 9) == 9 (default on empty)")
	}
	if atoiOr("-3", 0) != -3 {
		t.Error("expected atoiOr(\"-3\", 0) == -3")
	}
	if atoiOr("x", 5) != 5 {
		t.Error("expected atoiOr(\"x\", 5) == 5 (default on invalid)")
	}
}
