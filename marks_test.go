// marks_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package binpack

import "testing"

func TestMarkToSetBasic(t *testing.T) {
	set, err := MarkToSet("NFET")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, atom := range []string{"NF", "ET"} {
		if !set[atom] {
			t.Errorf("expected atom %q in set %v", atom, set)
		}
	}
}

func TestMarkToSetHyphenatedSegments(t *testing.T) {
	set, err := MarkToSet("FSB-KK-NFET")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, atom := range []string{"FSB", "KK", "NF", "ET"} {
		if !set[atom] {
			t.Errorf("expected atom %q in set %v", atom, set)
		}
	}
}

func TestMarkToSetPersonShorthand(t *testing.T) {
	set, err := MarkToSet("p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set["1P"] {
		t.Errorf("expected p1 to normalize to 1P, got %v", set)
	}
}

func TestMarkToSetExplShorthand(t *testing.T) {
	set, err := MarkToSet("expl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set["það"] {
		t.Errorf("expected expl to normalize to það, got %v", set)
	}
}

func TestMarkToSetInvalidAtom(t *testing.T) {
	_, err := MarkToSet("ZZZ")
	if err == nil {
		t.Fatal("expected an error for an unrecognized atom")
	}
	if _, ok := err.(*InvalidMarkError); !ok {
		t.Fatalf("expected *InvalidMarkError, got %T", err)
	}
}

func TestMarkToSetDropsIgnoredVariants(t *testing.T) {
	set, err := MarkToSet("subj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("expected ignored variant atom to be dropped, got %v", set)
	}
}

func TestSymmetricDifference(t *testing.T) {
	a := featureSet{"NF": true, "ET": true}
	b := featureSet{"NF": true, "FT": true}
	if got := symmetricDifference(a, b); got != 2 {
		t.Errorf("symmetricDifference(%v, %v) = %d, want 2", a, b, got)
	}
	if got := symmetricDifference(a, a); got != 0 {
		t.Errorf("symmetricDifference(a, a) = %d, want 0", got)
	}
}

func TestIsSuperset(t *testing.T) {
	sup := featureSet{"NF": true, "ET": true, "KK": true}
	sub := featureSet{"NF": true, "ET": true}
	if !isSuperset(sup, sub) {
		t.Error("expected sup to be a superset of sub")
	}
	if isSuperset(sub, sup) {
		t.Error("did not expect sub to be a superset of sup")
	}
}

func TestMarkOrderIndexOrdering(t *testing.T) {
	mo := DefaultMarkOrder()
	if !mo.IsValidMark("no", "NFET") {
		t.Skip("mark_order.csv does not define 'no' category in this build")
	}
	i1 := mo.Index("no", "NFET")
	i2 := mo.Index("no", "ÞFET")
	if i1 == i2 {
		t.Errorf("expected distinct marks to have distinct indices, got %d == %d", i1, i2)
	}
}

func TestIsLemmaCanonicalMark(t *testing.T) {
	cases := []struct {
		ofl, mark string
		want      bool
	}{
		{"kk", "NFET", true},
		{"kk", "ÞFET", false},
		{"so", "GM-NH", true},
		{"so", "MM-NH", true},
		{"to", "KK_NFET", true},
		{"lo", "FSB-KK-NFET", true},
	}
	for _, c := range cases {
		if got := isLemmaCanonicalMark(c.ofl, c.mark); got != c.want {
			t.Errorf("isLemmaCanonicalMark(%q, %q) = %v, want %v", c.ofl, c.mark, got, c.want)
		}
	}
}
