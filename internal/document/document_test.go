package document

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeepsInsertionOrder(t *testing.T) {
	obj := NewObject().
		Set("zeta", 1).
		Set("alpha", 2).
		Set("mid", 3)
	obj.Set("zeta", 10)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
	v, ok := obj.Get("zeta")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	b, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":10,"alpha":2,"mid":3}`, string(b))
}

func TestMarshalScalars(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, `null`},
		{true, `true`},
		{int64(9007199254740993), `9007199254740993`},
		{42.0, `42`},
		{3.14, `3.14`},
		{1e-7, `1e-7`},
		{1e21, `1e+21`},
		{json.Number("12.500"), `12.500`},
		{"<tag> & \"q\"", `"<tag> & \"q\""`},
		{"a\nb\tc\\d\x01", `"a\nb\tc\\d\u0001"`},
		{"日本語", `"日本語"`},
		{[]any{}, `[]`},
	}
	for _, tc := range cases {
		b, err := Marshal(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b))
	}
}

func TestMarshalRejectsUnsupported(t *testing.T) {
	_, err := Marshal(math.NaN())
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = Marshal(map[string]any{"a": 1})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestRoundTripIsStable(t *testing.T) {
	doc := NewObject().
		Set("b", []any{int64(1), 2.5, "x", nil, false}).
		Set("a", NewObject().Set("nested", []any{[]any{[]any{1, 2, 3}}})).
		Set("escaped", "Hello\nWorld\t\"quoted\"\r\nEnd\\slash").
		Set("float", 3.141592653589793*7)

	first, err := Marshal(doc)
	require.NoError(t, err)

	decoded, err := Unmarshal(first)
	require.NoError(t, err)

	second, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	obj, ok := decoded.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "escaped", "float"}, obj.Keys())
}

func TestMarshalIndent(t *testing.T) {
	doc := NewObject().Set("a", []any{1, 2})
	b, err := MarshalIndent(doc, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}", string(b))

	decoded, err := Unmarshal(b)
	require.NoError(t, err)
	compact, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2]}`, string(compact))
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`[1] [2]`))
	assert.Error(t, err)
}

func TestSize(t *testing.T) {
	n, err := Size([]any{"ab", 1})
	require.NoError(t, err)
	assert.Equal(t, len(`["ab",1]`), n)
}
