package packedjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindAt(t *testing.T) {
	tr := MustParse(`{"a":1,"b":"x","c":[1],"d":null}`)

	k, err := tr.KindAt("/a")
	require.NoError(t, err)
	assert.Equal(t, KindInt, k)

	_, err = tr.KindAt("/missing")
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	tr := MustParse(`{"a":1}`)
	assert.True(t, tr.Contains("/a"))
	assert.False(t, tr.Contains("/b"))
}

func TestGetStringDefaultsOnKindMismatch(t *testing.T) {
	tr := MustParse(`{"a":1,"b":"x"}`)
	assert.Equal(t, "x", tr.GetString("/b", "fallback"))
	assert.Equal(t, "fallback", tr.GetString("/a", "fallback"))
	assert.Equal(t, "fallback", tr.GetString("/missing", "fallback"))
}

func TestGetBoolDefaultsOnKindMismatch(t *testing.T) {
	tr := MustParse(`{"a":true,"b":1}`)
	assert.Equal(t, true, tr.GetBool("/a", false))
	assert.Equal(t, false, tr.GetBool("/b", false))
}

func TestGetIntDefaultsOnKindMismatch(t *testing.T) {
	tr := MustParse(`{"a":42,"b":1.5,"c":"42"}`)
	assert.Equal(t, int64(42), tr.GetInt("/a", -1))
	assert.Equal(t, int64(-1), tr.GetInt("/b", -1))
	assert.Equal(t, int64(-1), tr.GetInt("/c", -1))
}

func TestGetFloatAcceptsIntAndFloat(t *testing.T) {
	tr := MustParse(`{"a":42,"b":1.5,"c":"x"}`)
	assert.Equal(t, 42.0, tr.GetFloat("/a", -1))
	assert.Equal(t, 1.5, tr.GetFloat("/b", -1))
	assert.Equal(t, -1.0, tr.GetFloat("/c", -1))
}

func TestIsNull(t *testing.T) {
	tr := MustParse(`{"a":null,"b":1}`)
	assert.True(t, tr.IsNull("/a"))
	assert.False(t, tr.IsNull("/b"))
	assert.False(t, tr.IsNull("/missing"))
}

func TestStrictStringDistinguishesMissingFromWrongKind(t *testing.T) {
	tr := MustParse(`{"a":1,"b":"x"}`)

	s, err := tr.StrictString("/b")
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = tr.StrictString("/missing")
	var pathErr *PathError
	assert.ErrorAs(t, err, &pathErr)

	_, err = tr.StrictString("/a")
	var kindErr *KindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, KindString, kindErr.Wanted)
	assert.Equal(t, KindInt, kindErr.Got)
}

func TestStrictBool(t *testing.T) {
	tr := MustParse(`{"a":true,"b":1}`)

	b, err := tr.StrictBool("/a")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = tr.StrictBool("/b")
	var kindErr *KindError
	assert.ErrorAs(t, err, &kindErr)
}

func TestStrictInt(t *testing.T) {
	tr := MustParse(`{"a":42,"b":1.5}`)

	v, err := tr.StrictInt("/a")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = tr.StrictInt("/b")
	var kindErr *KindError
	assert.ErrorAs(t, err, &kindErr)
}

func TestStrictFloatAcceptsIntAndFloat(t *testing.T) {
	tr := MustParse(`{"a":42,"b":1.5,"c":"x"}`)

	v, err := tr.StrictFloat("/a")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	v, err = tr.StrictFloat("/b")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	_, err = tr.StrictFloat("/c")
	var kindErr *KindError
	assert.ErrorAs(t, err, &kindErr)
}
