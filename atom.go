package packedjson

// AtomTable is an append-only interning table shared by every atom
// (string, number lexeme, or object key) in one Tree. Ids are stable for
// the table's lifetime; id 0 is reserved to mean "absent". Two distinct
// texts never share an id, and two equal texts always share one
// (spec.md 3, 4.1).
type AtomTable struct {
	texts []string
	ids   map[string]int
}

// NewAtomTable returns an empty atom table.
func NewAtomTable() *AtomTable {
	return &AtomTable{
		texts: make([]string, 1, DefaultAtomCapacity), // index 0 unused, reserved for "absent"
		ids:   make(map[string]int, DefaultAtomCapacity),
	}
}

// Intern returns the id for text, creating a new entry if this is the
// first time text has been seen in this table.
func (a *AtomTable) Intern(text string) int {
	if id, ok := a.ids[text]; ok {
		return id
	}
	id := len(a.texts)
	a.texts = append(a.texts, text)
	a.ids[text] = id
	return id
}

// Lookup returns the id for text, or 0 if text has never been interned.
func (a *AtomTable) Lookup(text string) int {
	return a.ids[text]
}

// Get returns the text stored under id. Calling it with 0 or an id never
// produced by this table is a programming error.
func (a *AtomTable) Get(id int) string {
	return a.texts[id]
}

// Len returns the number of live (non-absent) entries in the table.
func (a *AtomTable) Len() int {
	return len(a.texts) - 1
}

// clone returns a verbatim, independent copy of the table.
func (a *AtomTable) clone() *AtomTable {
	texts := make([]string, len(a.texts))
	copy(texts, a.texts)
	ids := make(map[string]int, len(a.ids))
	for k, v := range a.ids {
		ids[k] = v
	}
	return &AtomTable{texts: texts, ids: ids}
}

// reinternInto re-interns the atom referenced by id in table src into dst,
// returning the (possibly different) id it now has in dst. It is the
// mechanism by which a subtree copied or moved from one tree — or
// re-inserted within the same tree — never leaks a foreign atom id
// (spec.md 9, "Atom sharing").
func reinternInto(dst, src *AtomTable, id int) int {
	if id == 0 {
		return 0
	}
	return dst.Intern(src.Get(id))
}
