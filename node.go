package packedjson

// Kind identifies the JSON shape a node word represents. It occupies the
// low bits of the packed 32-bit node word.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
	KindArray
	KindKeyValuePair
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindKeyValuePair:
		return "keyValuePair"
	default:
		return "unknown"
	}
}

// IsContainer reports whether k carries a span operand rather than an atom
// id or an inline scalar.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindArray || k == KindKeyValuePair
}

const (
	kindBits = 3
	kindMask = 1<<kindBits - 1
	// maxOperand is the largest value the 29-bit operand field can hold.
	maxOperand = 1<<(32-kindBits) - 1
)

// node is one packed 32-bit tree word: 3-bit kind, 29-bit operand.
type node uint32

func newNode(k Kind, operand uint32) node {
	if operand > maxOperand {
		panic("packedjson: operand overflows 29-bit field")
	}
	return node(uint32(k) | operand<<kindBits)
}

func (n node) kind() Kind {
	return Kind(n & kindMask)
}

func (n node) operand() uint32 {
	return uint32(n) >> kindBits
}

func (n node) withOperand(operand uint32) node {
	return newNode(n.kind(), operand)
}

// Kind returns the kind of the node word at position p.
func (t *Tree) Kind(p int) Kind {
	return t.nodes[p].kind()
}

// Span returns the number of node words covered by the subtree rooted at
// p, including p itself. Atoms (kinds Null..String) always have span 1;
// containers (Object, Array, KeyValuePair) store their span as the operand.
func (t *Tree) Span(p int) int {
	n := t.nodes[p]
	if n.kind().IsContainer() {
		return int(n.operand())
	}
	return 1
}

// AtomID returns the atom id stored in an Int/Float/String node at
// position p. Calling it on any other kind is a programming error.
func (t *Tree) AtomID(p int) int {
	return int(t.nodes[p].operand())
}

// BoolValue returns the boolean stored in a Bool node at position p.
func (t *Tree) BoolValue(p int) bool {
	return t.nodes[p].operand() != 0
}

// FirstSon returns the position immediately following a container's own
// word — where its first child, if any, begins.
func (t *Tree) FirstSon(p int) int {
	return p + 1
}

// NextChild advances p by its own span, landing on the next sibling
// position (or the position just past the enclosing container).
func (t *Tree) NextChild(p int) int {
	return p + t.Span(p)
}

// containerEnd returns the exclusive end position of the container rooted
// at p.
func (t *Tree) containerEnd(p int) int {
	return p + t.Span(p)
}

// Sons returns the positions of container p's direct children, in
// pre-order. For an Object these are KeyValuePair marker positions; for an
// Array these are the element root positions.
func (t *Tree) Sons(container int) []int {
	end := t.containerEnd(container)
	var out []int
	for c := t.FirstSon(container); c < end; c = t.NextChild(c) {
		out = append(out, c)
	}
	return out
}

// SonsReadonly is Sons under the name spec.md 4.4 gives the read-only
// traversal entry point. It is a thin alias: the positions it returns are
// subject to the same staleness rule as Sons' — they are invalidated by any
// subsequent mutation of this tree.
func (t *Tree) SonsReadonly(container int) []int {
	return t.Sons(container)
}

// Keys returns the positions of an Object's KeyValuePair markers. It is a
// convenience alias for Sons restricted to Object containers.
func (t *Tree) Keys(object int) []int {
	return t.Sons(object)
}

// KeyAtomID returns the atom id of a KeyValuePair's key, given the pair's
// marker position.
func (t *Tree) KeyAtomID(pair int) int {
	return t.AtomID(pair + 1)
}

// KeyText returns the unescaped text of a KeyValuePair's key.
func (t *Tree) KeyText(pair int) string {
	return t.atoms.Get(t.KeyAtomID(pair))
}

// ValuePos returns the position of a KeyValuePair's value subtree.
func (t *Tree) ValuePos(pair int) int {
	return pair + 2
}

// Parent scans backward from n-1 for the nearest container whose span
// covers n. Returns NilNodeID if n is the root or out of range.
//
// Complexity is O(n); acceptable because mutation paths already carry the
// ancestor chain from the Pointer Resolver and never call Parent in a hot
// loop (spec.md 4.3/9).
func (t *Tree) Parent(n int) int {
	if n <= 0 || n >= len(t.nodes) {
		return NilNodeID
	}
	for p := n - 1; p >= 0; p-- {
		k := t.nodes[p].kind()
		if !k.IsContainer() {
			continue
		}
		if p+t.Span(p) > n {
			return p
		}
	}
	return NilNodeID
}
