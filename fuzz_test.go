package packedjson

import "testing"

// FuzzParse replaces the teacher's dvyukov/go-fuzz Fuzz(data []byte) int
// entry point with native testing.F fuzzing (SPEC_FULL.md's ambient test
// tooling section): the only property asserted is that Parse never panics
// and, when it does succeed, the parsed tree serializes back out without
// panicking either — Parse's error return already covers malformed input,
// so a crash here is the only failure fuzzing can add over the table tests
// in parse_test.go.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"1", "2", "3", "4", "5",
		`{"a":"b","c":"d"}`,
		`{"5":"5","l":[3,4]}`,
		`{"a":{"5":"5","l":[3,4]},"c":"d"}`,
		`{"a":"b","c":{"5":"5","l":[3,4]}}`,
		`{"a":{"somekey":"someval","xxx":"yyy"},"c":"d"}`,
		`[[[[[1]]]]]`,
		`{"":""}`,
		`null`,
		`true`,
		`false`,
		`-0`,
		`1e309`,
		`" "`,
		``,
		`{`,
		`[`,
		`{"a":}`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tr, err := Parse(src)
		if err != nil {
			return
		}
		_ = tr.Serialize()
	})
}

// FuzzResolve exercises the pointer resolver against arbitrary pointer
// strings over a fixed, nested fixture tree — Resolve must never panic,
// regardless of how malformed the pointer is.
func FuzzResolve(f *testing.F) {
	tr := MustParse(`{"a":{"b":[1,2,{"c":3}]},"d":[],"e":{}}`)

	seeds := []string{
		"", "/a", "/a/b", "/a/b/0", "/a/b/2/c", "/missing",
		"/a/b/-", "/a/b/99", "/a/b/01", "~0~1", "/", "//", "/a/",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, pointer string) {
		_ = tr.Resolve(pointer)
	})
}
