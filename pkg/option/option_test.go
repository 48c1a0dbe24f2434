package option

import (
	"strings"
	"testing"
)

func TestNewValueDefaultsLabel(t *testing.T) {
	o := NewValue("x", "")
	if o.Label() != "x" {
		t.Errorf("expected label 'x', got %q", o.Label())
	}
	if !o.IsValue() || o.IsCategory() || o.IsNull() {
		t.Errorf("expected value role, got %s", o)
	}
}

func TestNewCategoryForcesEmptyValue(t *testing.T) {
	o := NewCategory("Europe")
	if o.Value() != "" {
		t.Errorf("expected empty value, got %q", o.Value())
	}
	if !o.IsCategory() || o.IsValue() {
		t.Errorf("expected category role, got %s", o)
	}
}

func TestNullOption(t *testing.T) {
	n := Null()
	if n != Null() {
		t.Error("expected Null to be a singleton")
	}
	if !n.IsNull() || n.IsValue() || n.IsCategory() {
		t.Error("expected null role only")
	}
	if !strings.Contains(n.ID(), "null") {
		t.Errorf("expected recognizable null id, got %q", n.ID())
	}
	var nilOpt *Option
	if !nilOpt.IsNull() {
		t.Error("expected nil option to count as null")
	}
}

func TestEqualIsStructural(t *testing.T) {
	a := NewValue("a", "A")
	b := NewValue("a", "A")
	if !a.Equal(b) {
		t.Error("expected structurally equal options to be equal")
	}

	ra := NewRegistry(NewSequence("left"))
	rb := NewRegistry(NewSequence("right"))
	ra.Add(a)
	rb.Add(b)
	if a.ID() == b.ID() {
		t.Errorf("expected different ids across registries, both %q", a.ID())
	}
	if !a.Equal(b) {
		t.Error("expected equality independent of id")
	}

	if a.Equal(NewValue("a", "B")) {
		t.Error("expected different labels to be unequal")
	}
	if NewCategory("a").Equal(NewValue("a", "a")) {
		t.Error("expected category and value with same label to be unequal")
	}
	if a.Equal(nil) {
		t.Error("expected option to be unequal to nil")
	}
}

func TestUnregisteredOptionHasNoID(t *testing.T) {
	o := NewValue("solo", "")
	if o.Registered() || o.ID() != "" {
		t.Errorf("expected no id before registration, got %q", o.ID())
	}
}

func TestAssignIDIsIdempotent(t *testing.T) {
	seq := NewSequence("t")
	o := NewValue("x", "")
	o.assignID(seq)
	first := o.ID()
	o.assignID(seq)
	if o.ID() != first {
		t.Errorf("expected id to stay %q, got %q", first, o.ID())
	}
	if seq.Issued() != 1 {
		t.Errorf("expected 1 id issued, got %d", seq.Issued())
	}
}

func TestSequenceIsMonotonic(t *testing.T) {
	seq := NewSequence("s")
	if got := seq.Next(); got != "s-1" {
		t.Errorf("expected s-1, got %q", got)
	}
	if got := seq.Next(); got != "s-2" {
		t.Errorf("expected s-2, got %q", got)
	}
	if got := NewSequence("").Next(); got != "option-1" {
		t.Errorf("expected default prefix, got %q", got)
	}
}

func TestEntryShapes(t *testing.T) {
	if e := Text("Paris"); e.Value != "Paris" || e.Label != "Paris" {
		t.Errorf("unexpected text entry %+v", e)
	}
	if e := Pair("fr", ""); e.Label != "fr" {
		t.Errorf("expected pair label to default to value, got %+v", e)
	}

	opts := Options(0, []Entry{Text("a"), Pair("b", "Bee"), {Label: "no value"}})
	if len(opts) != 2 {
		t.Fatalf("expected 2 value options, got %d", len(opts))
	}
	if opts[1].Value() != "b" || opts[1].Label() != "Bee" {
		t.Errorf("unexpected option %s", opts[1])
	}

	cats := Options(1, []Entry{Text("Europe"), {Value: "ignored", Label: "Asia"}, {}})
	if len(cats) != 2 {
		t.Fatalf("expected 2 category options, got %d", len(cats))
	}
	if !cats[1].IsCategory() || cats[1].Label() != "Asia" {
		t.Errorf("expected category Asia, got %s", cats[1])
	}
}

func TestSameSetAndIndexOf(t *testing.T) {
	a := []*Option{NewValue("1", ""), NewValue("2", "")}
	b := []*Option{NewValue("1", ""), NewValue("2", "")}
	if !SameSet(a, b) {
		t.Error("expected same set")
	}
	if SameSet(a, []*Option{b[1], b[0]}) {
		t.Error("expected order to matter")
	}
	if IndexOf(a, NewValue("2", "")) != 1 {
		t.Error("expected IndexOf to find structural match")
	}
	if IndexOf(a, nil) != -1 {
		t.Error("expected IndexOf(nil) to be -1")
	}
	if got := Labels(a); len(got) != 2 || got[0] != "1" {
		t.Errorf("unexpected labels %v", got)
	}
}

func TestUnique(t *testing.T) {
	in := []*Option{NewCategory("a"), nil, NewCategory("b"), NewCategory("a")}
	got := Labels(Unique(in))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}
