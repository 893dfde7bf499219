package packedjson

import "testing"

func TestAtomTableInternStable(t *testing.T) {
	a := NewAtomTable()
	id1 := a.Intern("hello")
	id2 := a.Intern("hello")
	if id1 != id2 {
		t.Fatalf("Intern not stable: %d != %d", id1, id2)
	}
	if id1 == 0 {
		t.Fatalf("Intern returned reserved id 0 for a real text")
	}
}

func TestAtomTableDistinctTexts(t *testing.T) {
	a := NewAtomTable()
	idA := a.Intern("a")
	idB := a.Intern("b")
	if idA == idB {
		t.Fatalf("distinct texts got the same id")
	}
}

func TestAtomTableLookupMiss(t *testing.T) {
	a := NewAtomTable()
	a.Intern("present")
	if got := a.Lookup("absent"); got != 0 {
		t.Fatalf("Lookup of never-interned text = %d, want 0", got)
	}
}

func TestAtomTableGetRoundTrip(t *testing.T) {
	a := NewAtomTable()
	id := a.Intern("round-trip")
	if got := a.Get(id); got != "round-trip" {
		t.Fatalf("Get(%d) = %q, want %q", id, got, "round-trip")
	}
}

func TestAtomTableLen(t *testing.T) {
	a := NewAtomTable()
	if a.Len() != 0 {
		t.Fatalf("fresh table Len() = %d, want 0", a.Len())
	}
	a.Intern("x")
	a.Intern("y")
	a.Intern("x")
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after two distinct interns", a.Len())
	}
}

func TestAtomTableClone(t *testing.T) {
	a := NewAtomTable()
	id := a.Intern("shared")
	clone := a.clone()
	if clone.Get(id) != "shared" {
		t.Fatalf("clone did not carry over existing entries")
	}
	clone.Intern("only-in-clone")
	if a.Lookup("only-in-clone") != 0 {
		t.Fatalf("clone is not independent: mutation leaked back to source")
	}
}

func TestReinternIntoAbsentID(t *testing.T) {
	dst, src := NewAtomTable(), NewAtomTable()
	if got := reinternInto(dst, src, 0); got != 0 {
		t.Fatalf("reinternInto(0) = %d, want 0", got)
	}
}

func TestReinternIntoPreservesText(t *testing.T) {
	dst, src := NewAtomTable(), NewAtomTable()
	id := src.Intern("migrate-me")
	newID := reinternInto(dst, src, id)
	if dst.Get(newID) != "migrate-me" {
		t.Fatalf("reinternInto lost the text: got %q", dst.Get(newID))
	}
}
