package packedjson

import "strconv"

// This file implements the typed accessors spec.md 4.8 describes as a thin
// convenience layer over Resolve. The Get* family takes a caller-supplied
// default and never fails — a kind mismatch or a missing path just yields
// the default, per spec.md 7's "only implicit recovery" rule. The Strict*
// family below mirrors the teacher's Node/StrictNode split (insane.go's
// AsString/AsInt/... vs StrictNode.AsString/AsInt/...): callers that need
// to tell "wrong kind" apart from "missing" use those instead.

// KindAt reports the Kind of the node addressed by path, or an error if
// path does not resolve.
func (t *Tree) KindAt(path string) (Kind, error) {
	pos := t.Resolve(path)
	if pos == NilNodeID {
		return KindNull, newPathError(path, "no such node")
	}
	return t.Kind(pos), nil
}

// Contains reports whether path resolves to an existing node.
func (t *Tree) Contains(path string) bool {
	return t.Resolve(path) != NilNodeID
}

// GetString returns the string at path, or def if path does not resolve to
// a KindString node.
func (t *Tree) GetString(path string, def string) string {
	pos := t.Resolve(path)
	if pos == NilNodeID || t.Kind(pos) != KindString {
		return def
	}
	return t.atoms.Get(t.AtomID(pos))
}

// GetBool returns the boolean at path, or def if path does not resolve to
// a KindBool node.
func (t *Tree) GetBool(path string, def bool) bool {
	pos := t.Resolve(path)
	if pos == NilNodeID || t.Kind(pos) != KindBool {
		return def
	}
	return t.BoolValue(pos)
}

// GetInt returns the integer at path, or def if path does not resolve to a
// KindInt node or its lexeme does not parse as a base-10 integer.
func (t *Tree) GetInt(path string, def int64) int64 {
	pos := t.Resolve(path)
	if pos == NilNodeID || t.Kind(pos) != KindInt {
		return def
	}
	v, err := strconv.ParseInt(t.atoms.Get(t.AtomID(pos)), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// GetFloat returns the number at path as a float64, or def if path does
// not resolve to a KindFloat or KindInt node. Both number kinds store
// their lexeme verbatim, so an Int is accepted here without loss for any
// value representable in 53 bits of mantissa.
func (t *Tree) GetFloat(path string, def float64) float64 {
	pos := t.Resolve(path)
	if pos == NilNodeID {
		return def
	}
	switch t.Kind(pos) {
	case KindFloat, KindInt:
	default:
		return def
	}
	v, err := strconv.ParseFloat(t.atoms.Get(t.AtomID(pos)), 64)
	if err != nil {
		return def
	}
	return v
}

// IsNull reports whether path resolves to a KindNull node. A path that
// does not resolve at all is not null — callers that need to distinguish
// "missing" from "present and null" should use Contains alongside IsNull.
func (t *Tree) IsNull(path string) bool {
	pos := t.Resolve(path)
	return pos != NilNodeID && t.Kind(pos) == KindNull
}

// StrictString returns the string at path, a PathError if path does not
// resolve, or a KindError if it resolves to a non-KindString node.
func (t *Tree) StrictString(path string) (string, error) {
	pos, err := t.resolveStrict(path)
	if err != nil {
		return "", err
	}
	if t.Kind(pos) != KindString {
		return "", newKindError(KindString, t.Kind(pos))
	}
	return t.atoms.Get(t.AtomID(pos)), nil
}

// StrictBool returns the boolean at path, a PathError if path does not
// resolve, or a KindError if it resolves to a non-KindBool node.
func (t *Tree) StrictBool(path string) (bool, error) {
	pos, err := t.resolveStrict(path)
	if err != nil {
		return false, err
	}
	if t.Kind(pos) != KindBool {
		return false, newKindError(KindBool, t.Kind(pos))
	}
	return t.BoolValue(pos), nil
}

// StrictInt returns the integer at path, a PathError if path does not
// resolve, or a KindError if it resolves to a non-KindInt node.
func (t *Tree) StrictInt(path string) (int64, error) {
	pos, err := t.resolveStrict(path)
	if err != nil {
		return 0, err
	}
	if t.Kind(pos) != KindInt {
		return 0, newKindError(KindInt, t.Kind(pos))
	}
	return strconv.ParseInt(t.atoms.Get(t.AtomID(pos)), 10, 64)
}

// StrictFloat returns the number at path as a float64, a PathError if path
// does not resolve, or a KindError if it resolves to neither KindFloat nor
// KindInt.
func (t *Tree) StrictFloat(path string) (float64, error) {
	pos, err := t.resolveStrict(path)
	if err != nil {
		return 0, err
	}
	switch t.Kind(pos) {
	case KindFloat, KindInt:
	default:
		return 0, newKindError(KindFloat, t.Kind(pos))
	}
	return strconv.ParseFloat(t.atoms.Get(t.AtomID(pos)), 64)
}

func (t *Tree) resolveStrict(path string) (int, error) {
	pos := t.Resolve(path)
	if pos == NilNodeID {
		return NilNodeID, newPathError(path, "no such node")
	}
	return pos, nil
}
