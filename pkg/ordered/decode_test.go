package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObjectPreservesOrder(t *testing.T) {
	v, err := Decode([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)

	tree, isTree := v.(*Tree)
	require.True(t, isTree)
	assert.True(t, tree.Positional())
	assert.Equal(t, []string{"z", "a", "m"}, tree.Keys())

	got, ok := tree.Get("a")
	require.True(t, ok)
	assert.Equal(t, Scalar{V: 2.0}, got)
}

func TestDecodeNestedObject(t *testing.T) {
	v, err := Decode([]byte(`{"outer":{"b":2,"a":1}}`))
	require.NoError(t, err)

	tree := v.(*Tree)
	inner, ok := tree.Get("outer")
	require.True(t, ok)

	innerTree, isTree := inner.(*Tree)
	require.True(t, isTree)
	assert.Equal(t, []string{"b", "a"}, innerTree.Keys())
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Scalar
	}{
		{name: "string", input: `"hello"`, expected: Scalar{V: "hello"}},
		{name: "number", input: `42`, expected: Scalar{V: 42.0}},
		{name: "bool", input: `true`, expected: Scalar{V: true}},
		{name: "null", input: `null`, expected: Scalar{V: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestDecodeArrayIsOpaque(t *testing.T) {
	// Arrays are not diffed element-wise, so they decode to plain scalars.
	v, err := Decode([]byte(`{"list":[1,{"a":2},"x"]}`))
	require.NoError(t, err)

	tree := v.(*Tree)
	got, ok := tree.Get("list")
	require.True(t, ok)

	s, isScalar := got.(Scalar)
	require.True(t, isScalar)
	assert.Equal(t, []any{1.0, map[string]any{"a": 2.0}, "x"}, s.V)
}

func TestDecodeTopLevelArray(t *testing.T) {
	v, err := Decode([]byte(`[1,2,3]`))
	require.NoError(t, err)
	assert.Equal(t, Scalar{V: []any{1.0, 2.0, 3.0}}, v)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed", input: `{"a":`},
		{name: "trailing data", input: `{"a":1} extra`},
		{name: "duplicate key", input: `{"a":1,"a":2}`},
		{name: "empty input", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestDecodeDuplicateKeyError(t *testing.T) {
	_, err := Decode([]byte(`{"a":1,"b":2,"a":3}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}
