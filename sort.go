package packedjson

import "sort"

// Sorted returns a new Tree with every Object's KeyValuePairs reordered by
// key text, lexicographically and recursively; Array element order is
// preserved. The returned tree's atom table is rebuilt from scratch,
// containing only the atoms actually emitted, in emission order — the
// input tree's atom ids are not reused (spec.md 4.6).
func Sorted(t *Tree) *Tree {
	out := &Tree{nodes: make([]node, 0, len(t.nodes)), atoms: NewAtomTable()}
	if t.Empty() {
		return out
	}
	emitSorted(t, RootNodeID, out)
	return out
}

func emitSorted(src *Tree, pos int, dst *Tree) {
	switch src.Kind(pos) {
	case KindNull:
		dst.nodes = append(dst.nodes, newNode(KindNull, 0))
	case KindBool:
		dst.nodes = append(dst.nodes, newNode(KindBool, src.nodes[pos].operand()))
	case KindInt, KindFloat, KindString:
		id := dst.atoms.Intern(src.atoms.Get(src.AtomID(pos)))
		dst.nodes = append(dst.nodes, newNode(src.Kind(pos), uint32(id)))
	case KindArray:
		start := len(dst.nodes)
		dst.nodes = append(dst.nodes, newNode(KindArray, 0))
		for _, son := range src.Sons(pos) {
			emitSorted(src, son, dst)
		}
		span := len(dst.nodes) - start
		dst.nodes[start] = dst.nodes[start].withOperand(uint32(span))
	case KindObject:
		start := len(dst.nodes)
		dst.nodes = append(dst.nodes, newNode(KindObject, 0))

		pairs := src.Sons(pos)
		order := make([]int, len(pairs))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return src.KeyText(pairs[order[i]]) < src.KeyText(pairs[order[j]])
		})

		for _, idx := range order {
			pair := pairs[idx]
			kvStart := len(dst.nodes)
			dst.nodes = append(dst.nodes, newNode(KindKeyValuePair, 0))
			keyID := dst.atoms.Intern(src.KeyText(pair))
			dst.nodes = append(dst.nodes, newNode(KindString, uint32(keyID)))
			emitSorted(src, src.ValuePos(pair), dst)
			kvSpan := len(dst.nodes) - kvStart
			dst.nodes[kvStart] = dst.nodes[kvStart].withOperand(uint32(kvSpan))
		}

		span := len(dst.nodes) - start
		dst.nodes[start] = dst.nodes[start].withOperand(uint32(span))
	}
}

// Equal compares two sorted trees structurally: equal length node arrays,
// and at every index either both sides are containers of equal span or
// both are atoms whose texts (looked up in their own atom tables) match.
// It is meaningless on trees that have not been passed through Sorted,
// since object key order would then matter (spec.md 4.6, P6).
func Equal(a, b *Tree) bool {
	if len(a.nodes) != len(b.nodes) {
		return false
	}
	for i := range a.nodes {
		ka, kb := a.Kind(i), b.Kind(i)
		if ka != kb {
			return false
		}
		if ka.IsContainer() {
			if a.Span(i) != b.Span(i) {
				return false
			}
			continue
		}
		switch ka {
		case KindBool:
			if a.BoolValue(i) != b.BoolValue(i) {
				return false
			}
		case KindInt, KindFloat, KindString:
			if a.atoms.Get(a.AtomID(i)) != b.atoms.Get(b.AtomID(i)) {
				return false
			}
		}
	}
	return true
}

// Deduplicate walks a sorted tree's objects and, for every run of adjacent
// equal keys (adjacency holding precisely because the tree is sorted),
// keeps the first occurrence and splices out the rest, recursing into
// every retained value so nested duplicate keys are collapsed too.
// Deduplicate mutates t in place.
func (t *Tree) Deduplicate() {
	if t.Empty() {
		return
	}
	t.dedupeContainer(RootNodeID, nil)
}

// dedupeContainer processes the container at pos and recurses into its
// children. ancestors is the chain of containers strictly above pos, used
// together with pos itself to patch spans when a removal happens inside
// pos's subtree.
func (t *Tree) dedupeContainer(pos int, ancestors []int) {
	switch t.Kind(pos) {
	case KindObject:
		chain := appendChain(ancestors, pos)
		cur := t.FirstSon(pos)
		end := t.containerEnd(pos)
		havePrev := false
		var prevKey string
		for cur < end {
			key := t.KeyText(cur)
			if havePrev && key == prevKey {
				span := t.Span(cur)
				t.splice(cur, cur+span, nil)
				t.updateParents(chain, -span)
				end = t.containerEnd(pos)
				continue
			}
			prevKey, havePrev = key, true
			t.dedupeContainer(t.ValuePos(cur), chain)
			end = t.containerEnd(pos)
			cur = t.NextChild(cur)
		}
	case KindArray:
		chain := appendChain(ancestors, pos)
		cur := t.FirstSon(pos)
		end := t.containerEnd(pos)
		for cur < end {
			t.dedupeContainer(cur, chain)
			end = t.containerEnd(pos)
			cur = t.NextChild(cur)
		}
	}
}

func appendChain(ancestors []int, pos int) []int {
	chain := make([]int, len(ancestors)+1)
	copy(chain, ancestors)
	chain[len(ancestors)] = pos
	return chain
}
