package packedjson

import (
	"strconv"
	"strings"
)

// MutationTarget is the result of resolving a JSON Pointer for a mutation.
// Node is the resolved position, or NilNodeID if the final token names a
// not-yet-existing object key or the array "-" sentinel. Parents is the
// pre-order chain of Object and Array positions from the root down to and
// including Node's immediate parent (empty when Node is the root);
// KeyValuePair markers are not listed. Key is the final token's
// unescaped text, used when creating a new object key.
type MutationTarget struct {
	Node    int
	Parents []int
	Key     string
}

// splitPointer tokenizes an RFC 6901 JSON Pointer into its unescaped
// segments. "" yields no tokens (addresses the root).
func splitPointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, newPathError(pointer, "pointer must be empty or start with '/'")
	}
	raw := strings.Split(pointer[1:], "/")
	tokens := make([]string, len(raw))
	for i, tok := range raw {
		tokens[i] = unescapePointerToken(tok)
	}
	return tokens, nil
}

func unescapePointerToken(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// Resolve is the read resolver: it returns the position addressed by
// pointer, or NilNodeID if any segment is missing, kind-mismatched, or out
// of range.
func (t *Tree) Resolve(pointer string) int {
	tokens, err := splitPointer(pointer)
	if err != nil {
		return NilNodeID
	}
	if t.Empty() {
		return NilNodeID
	}
	pos := RootNodeID
	for _, tok := range tokens {
		next, ok := t.step(pos, tok)
		if !ok {
			return NilNodeID
		}
		pos = next
	}
	return pos
}

// step resolves one pointer token against the container at pos, returning
// the child position and whether it was found.
func (t *Tree) step(pos int, tok string) (int, bool) {
	switch t.Kind(pos) {
	case KindObject:
		for _, pair := range t.Keys(pos) {
			if t.KeyText(pair) == tok {
				return t.ValuePos(pair), true
			}
		}
		return NilNodeID, false
	case KindArray:
		if tok == "-" {
			return NilNodeID, false
		}
		idx, err := parseArrayIndex(tok)
		if err != nil {
			return NilNodeID, false
		}
		sons := t.Sons(pos)
		if idx < 0 || idx >= len(sons) {
			return NilNodeID, false
		}
		return sons[idx], true
	default:
		return NilNodeID, false
	}
}

// parseArrayIndex validates and parses a JSON Pointer array-index token:
// base-10, no leading zeros (except the literal "0" itself), non-negative.
func parseArrayIndex(tok string) (int, error) {
	if tok == "" {
		return 0, newPathError(tok, "empty array index")
	}
	if tok[0] == '0' && len(tok) > 1 {
		return 0, newPathError(tok, "array index has leading zero")
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, newPathError(tok, "array index is not a base-10 integer")
		}
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, newPathError(tok, "array index out of range")
	}
	return idx, nil
}

// ResolveMutation is the mutation resolver (spec.md 4.4). It returns the
// target's position and the ancestor chain needed to patch spans after a
// mutation, or a *PathError if an intermediate segment could not be
// resolved. The final token may legitimately be unresolved — a new object
// key, or "-" on an array — in which case Node is NilNodeID and the caller
// is expected to create it.
func (t *Tree) ResolveMutation(pointer string) (MutationTarget, error) {
	tokens, err := splitPointer(pointer)
	if err != nil {
		return MutationTarget{}, err
	}
	if len(tokens) == 0 {
		return MutationTarget{Node: RootNodeID, Parents: nil, Key: ""}, nil
	}
	if t.Empty() {
		return MutationTarget{}, newPathError(pointer, "tree is empty")
	}

	pos := RootNodeID
	parents := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		last := i == len(tokens)-1
		next, ok := t.step(pos, tok)
		if ok {
			parents = append(parents, pos)
			pos = next
			continue
		}
		// Not found: only tolerable on the final token, and only when
		// pos is a container of the right shape for tok.
		if !last {
			return MutationTarget{}, newPathError(pointer, "intermediate segment not found: "+tok)
		}
		switch t.Kind(pos) {
		case KindObject:
			parents = append(parents, pos)
			return MutationTarget{Node: NilNodeID, Parents: parents, Key: tok}, nil
		case KindArray:
			if tok == "-" {
				parents = append(parents, pos)
				return MutationTarget{Node: NilNodeID, Parents: parents, Key: tok}, nil
			}
			if _, err := parseArrayIndex(tok); err != nil {
				return MutationTarget{}, err
			}
			return MutationTarget{}, newPathError(pointer, "array index out of range: "+tok)
		default:
			return MutationTarget{}, newPathError(pointer, "segment does not address a container: "+tok)
		}
	}
	return MutationTarget{Node: pos, Parents: parents, Key: lastToken(tokens)}, nil
}

func lastToken(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}
