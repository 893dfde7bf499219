package packedjson

// This file implements the Mutation Engine (spec.md 4.5): Test, Replace,
// Remove, Add, Copy, Move. Every mutation that changes the node array ends
// by calling updateParents, the single routine allowed to patch a
// container's stored span — centralizing the invariant-preservation logic
// spec.md 9 calls out as the design's central risk.

// splice replaces nodes[start:end) with replacement in place, shifting
// everything after end by len(replacement)-(end-start) words.
func (t *Tree) splice(start, end int, replacement []node) {
	tail := make([]node, len(t.nodes)-end)
	copy(tail, t.nodes[end:])
	t.nodes = append(t.nodes[:start], replacement...)
	t.nodes = append(t.nodes, tail...)
}

// updateParents adds delta to the stored span of every container position
// in parents, and of the KeyValuePair marker linking each Object in parents
// to the next entry (that entry is a value, two words past its marker). It
// is the only place in the package that writes a container's operand
// outside of initial construction.
func (t *Tree) updateParents(parents []int, delta int) {
	if delta == 0 {
		return
	}
	for i, p := range parents {
		n := t.nodes[p]
		t.nodes[p] = n.withOperand(uint32(int(n.operand()) + delta))
		if n.kind() == KindObject && i+1 < len(parents) {
			pair := parents[i+1] - 2
			t.nodes[pair] = t.nodes[pair].withOperand(uint32(int(t.nodes[pair].operand()) + delta))
		}
	}
}

// extractNodes copies the node range [start,end) out of src, re-interning
// every atom id it carries into dstAtoms so the copy never leaks a foreign
// (or stale, same-table) atom id (spec.md 9, "Atom sharing").
func extractNodes(src *Tree, start, end int, dstAtoms *AtomTable) []node {
	if start == end {
		return nil
	}
	out := make([]node, end-start)
	for i, n := range src.nodes[start:end] {
		switch n.kind() {
		case KindInt, KindFloat, KindString:
			id := reinternInto(dstAtoms, src.atoms, int(n.operand()))
			out[i] = newNode(n.kind(), uint32(id))
		default:
			out[i] = n
		}
	}
	return out
}

// extractAsTree returns a standalone Tree holding a copy of the subtree at
// pos. Its atom table is the same table t already uses — spec.md 4.5
// calls this the "self-reference — already interned" case for copy/move
// within one tree, and it means extractNodes' re-intern step degenerates
// to a no-op lookup when the copy is later spliced back into t.
func (t *Tree) extractAsTree(pos int) *Tree {
	span := t.Span(pos)
	nodes := make([]node, span)
	copy(nodes, t.nodes[pos:pos+span])
	return &Tree{nodes: nodes, atoms: t.atoms}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func valueSpan(value *Tree) int {
	if value.Empty() {
		return 0
	}
	return value.Span(RootNodeID)
}

// replaceAt overwrites the subtree at node with value, returning the
// [start,end) range it replaced in the pre-mutation array and the delta
// applied to ancestor spans — used by Add/Copy/Move to reason about how
// positions shifted.
func (t *Tree) replaceAt(node int, parents []int, value *Tree) (start, end, delta int, err error) {
	oldSpan := 0
	if !t.Empty() {
		oldSpan = t.Span(node)
	}
	newSpan := valueSpan(value)
	repl := extractNodes(value, RootNodeID, RootNodeID+newSpan, t.atoms)
	t.splice(node, node+oldSpan, repl)
	d := newSpan - oldSpan
	t.updateParents(parents, d)
	if len(parents) > 0 && t.Kind(parents[len(parents)-1]) == KindObject {
		// node is an Object value: its own KeyValuePair marker, two words
		// earlier, is not in parents but covers it too.
		t.updateParents([]int{node - 2}, d)
	}
	return node, node + oldSpan, d, nil
}

// addObjectKey appends a new KeyValuePair at the end of the object named
// by parents' last entry.
func (t *Tree) addObjectKey(parents []int, key string, value *Tree) (start, end, delta int, err error) {
	parent := parents[len(parents)-1]
	at := t.containerEnd(parent)
	vSpan := valueSpan(value)
	keyID := t.atoms.Intern(key)
	pairSpan := 2 + vSpan

	kv := make([]node, 0, pairSpan)
	kv = append(kv, newNode(KindKeyValuePair, uint32(pairSpan)))
	kv = append(kv, newNode(KindString, uint32(keyID)))
	kv = append(kv, extractNodes(value, RootNodeID, RootNodeID+vSpan, t.atoms)...)

	t.splice(at, at, kv)
	t.updateParents(parents, pairSpan)
	return at, at, pairSpan, nil
}

// addArrayAppend splices value onto the end of the array named by parents'
// last entry.
func (t *Tree) addArrayAppend(parents []int, value *Tree) (start, end, delta int, err error) {
	parent := parents[len(parents)-1]
	at := t.containerEnd(parent)
	vSpan := valueSpan(value)
	repl := extractNodes(value, RootNodeID, RootNodeID+vSpan, t.atoms)
	t.splice(at, at, repl)
	t.updateParents(parents, vSpan)
	return at, at, vSpan, nil
}

// addArrayInsertBefore inserts value immediately before the element at
// pos, per RFC 6902 array-add semantics (spec.md 4.5, 9).
func (t *Tree) addArrayInsertBefore(pos int, parents []int, value *Tree) (start, end, delta int, err error) {
	vSpan := valueSpan(value)
	repl := extractNodes(value, RootNodeID, RootNodeID+vSpan, t.atoms)
	t.splice(pos, pos, repl)
	t.updateParents(parents, vSpan)
	return pos, pos, vSpan, nil
}

// addValue implements the branching table spec.md 4.5 describes for add:
// new object key, array "-" append, array index insert-before, or a
// fallback to replace semantics when the target already exists and isn't
// an array-indexed insert.
func (t *Tree) addValue(mt MutationTarget, value *Tree) (start, end, delta int, err error) {
	if mt.Node == NilNodeID {
		parent := RootNodeID
		if len(mt.Parents) > 0 {
			parent = mt.Parents[len(mt.Parents)-1]
		}
		switch t.Kind(parent) {
		case KindObject:
			return t.addObjectKey(mt.Parents, mt.Key, value)
		case KindArray:
			return t.addArrayAppend(mt.Parents, value)
		default:
			return 0, 0, 0, newPathError(mt.Key, "add target parent is neither object nor array")
		}
	}
	if len(mt.Parents) > 0 && t.Kind(mt.Parents[len(mt.Parents)-1]) == KindArray {
		return t.addArrayInsertBefore(mt.Node, mt.Parents, value)
	}
	return t.replaceAt(mt.Node, mt.Parents, value)
}

// Replace implements the RFC 6902 "replace" operation: path must resolve
// to an existing node, which is overwritten by value. Replacing the root
// is allowed and overwrites the whole tree.
func (t *Tree) Replace(path string, value *Tree) error {
	mt, err := t.ResolveMutation(path)
	if err != nil {
		return err
	}
	if mt.Node == NilNodeID {
		return newPathError(path, "replace target does not exist")
	}
	_, _, _, err = t.replaceAt(mt.Node, mt.Parents, value)
	return err
}

// Remove implements the RFC 6902 "remove" operation. When the removed
// node's parent is an Object, its enclosing KeyValuePair marker is
// dropped too. Removing the root leaves an empty tree.
func (t *Tree) Remove(path string) error {
	mt, err := t.ResolveMutation(path)
	if err != nil {
		return err
	}
	if mt.Node == NilNodeID {
		return newPathError(path, "remove target does not exist")
	}
	return t.removeAt(mt.Node, mt.Parents)
}

func (t *Tree) removeAt(node int, parents []int) error {
	span := t.Span(node)
	start := node
	delta := -span
	if len(parents) > 0 {
		parent := parents[len(parents)-1]
		if t.Kind(parent) == KindObject {
			// node is the value position; its enclosing KeyValuePair
			// marker sits two words earlier (marker, key, value), and the
			// whole pair — not just the key+value — must go.
			start = node - 2
			delta = -(2 + span)
		}
	}
	t.splice(start, node+span, nil)
	t.updateParents(parents, delta)
	return nil
}

// Add implements the RFC 6902 "add" operation, including the two open
// questions spec.md 9 resolves explicitly: add on an existing object key
// collapses to replace, and add on an existing array index means insert
// before.
func (t *Tree) Add(path string, value *Tree) error {
	mt, err := t.ResolveMutation(path)
	if err != nil {
		return err
	}
	_, _, _, err = t.addValue(mt, value)
	return err
}

// Copy implements the RFC 6902 "copy" operation. If from and path resolve
// to the same node, Copy is a no-op. from must not be an ancestor of
// path's destination.
func (t *Tree) Copy(from, path string) error {
	fromPos := t.Resolve(from)
	if fromPos == NilNodeID {
		return newPathError(from, "copy source does not exist")
	}
	mt, err := t.ResolveMutation(path)
	if err != nil {
		return err
	}
	if mt.Node == fromPos {
		return nil
	}
	if containsInt(mt.Parents, fromPos) {
		return newPathError(path, "copy source is an ancestor of destination")
	}
	value := t.extractAsTree(fromPos)
	_, _, _, err = t.addValue(mt, value)
	return err
}

// Move implements the RFC 6902 "move" operation as copy(from,path)
// followed by remove(from), executed in one pass because the copy shifts
// positions (spec.md 4.5). If the copy's insertion point is an ancestor of
// from, the source no longer exists after the copy (it was part of the
// subtree the copy replaced) and the move collapses to a replace.
func (t *Tree) Move(from, path string) error {
	srcMT, err := t.ResolveMutation(from)
	if err != nil {
		return err
	}
	if srcMT.Node == NilNodeID {
		return newPathError(from, "move source does not exist")
	}
	destMT, err := t.ResolveMutation(path)
	if err != nil {
		return err
	}
	if destMT.Node == srcMT.Node {
		return nil
	}
	if containsInt(destMT.Parents, srcMT.Node) {
		return newPathError(path, "move source is an ancestor of destination")
	}

	value := t.extractAsTree(srcMT.Node)
	rangeStart, rangeEnd, delta, err := t.addValue(destMT, value)
	if err != nil {
		return err
	}

	if srcMT.Node >= rangeStart && srcMT.Node < rangeEnd {
		// The copy's destination was an ancestor of the source, so the
		// source was already consumed by the replace that made room for
		// it. Nothing remains to remove.
		return nil
	}

	shift := func(p int) int {
		if p >= rangeEnd {
			return p + delta
		}
		return p
	}
	shiftedNode := shift(srcMT.Node)
	shiftedParents := make([]int, len(srcMT.Parents))
	for i, p := range srcMT.Parents {
		shiftedParents[i] = shift(p)
	}
	return t.removeAt(shiftedNode, shiftedParents)
}

// Test implements the RFC 6902 "test" operation: structural comparison of
// the subtree at path against value. Atom kinds compare by text, not atom
// id, since the two trees have independent atom tables; object comparison
// is order-sensitive unless both sides have been canonicalized via Sorted.
func (t *Tree) Test(path string, value *Tree) (bool, error) {
	pos := t.Resolve(path)
	if pos == NilNodeID {
		return false, newPathError(path, "test target does not exist")
	}
	if value.Empty() {
		return false, newPathError(path, "test value is empty")
	}
	return subtreeEqual(t, pos, value, RootNodeID), nil
}

func subtreeEqual(a *Tree, pa int, b *Tree, pb int) bool {
	ka, kb := a.Kind(pa), b.Kind(pb)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.BoolValue(pa) == b.BoolValue(pb)
	case KindInt, KindFloat, KindString:
		return a.atoms.Get(a.AtomID(pa)) == b.atoms.Get(b.AtomID(pb))
	case KindObject, KindArray:
		if a.Span(pa) != b.Span(pb) {
			return false
		}
		sonsA, sonsB := a.Sons(pa), b.Sons(pb)
		if len(sonsA) != len(sonsB) {
			return false
		}
		for i := range sonsA {
			if ka == KindObject {
				if a.KeyText(sonsA[i]) != b.KeyText(sonsB[i]) {
					return false
				}
				if !subtreeEqual(a, a.ValuePos(sonsA[i]), b, b.ValuePos(sonsB[i])) {
					return false
				}
			} else if !subtreeEqual(a, sonsA[i], b, sonsB[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
