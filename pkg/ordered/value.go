// Package ordered provides the JSON-like value model used by the diff
// engine: scalars plus key-value trees that remember insertion order.
//
// Trees come in two flavours distinguished by a positional capability flag.
// Ordered trees (JSON objects, header maps) expose a meaningful zero-based
// index per key via IndexOf. Unordered trees (parsed URLs, query strings)
// share the same contract but their positions carry no meaning, so the diff
// engine never reports reorders for them.
package ordered

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrDuplicateKey is returned when a tree is constructed (or decoded) with
// the same key appearing twice.
var ErrDuplicateKey = errors.New("duplicate key")

// Value is a closed union: every value is either a Scalar or a *Tree.
type Value interface {
	isValue()
}

// Scalar wraps a leaf value: string, float64, bool, nil, or an opaque
// decoded JSON array ([]any). Arrays are never diffed element-wise; they
// compare as a whole.
type Scalar struct {
	V any
}

func (Scalar) isValue() {}

// Equal reports deep value equality between two scalars.
func (s Scalar) Equal(o Scalar) bool {
	return reflect.DeepEqual(s.V, o.V)
}

// MarshalJSON encodes the wrapped value as-is.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// Pair is a single key-value entry used to construct trees.
type Pair struct {
	Key   string
	Value Value
}

// Tree is an immutable key-value container with unique string keys.
// Construction is the only mutation point; the diff engine only reads.
type Tree struct {
	m          *orderedmap.OrderedMap[string, Value]
	positional bool
}

func (*Tree) isValue() {}

// NewTree builds an ordered tree from pairs, preserving their order.
// Fails with ErrDuplicateKey if a key repeats.
func NewTree(pairs ...Pair) (*Tree, error) {
	return build(pairs, true)
}

// NewUnordered builds a tree whose key positions carry no meaning.
// Same uniqueness invariant as NewTree.
func NewUnordered(pairs ...Pair) (*Tree, error) {
	return build(pairs, false)
}

func build(pairs []Pair, positional bool) (*Tree, error) {
	m := orderedmap.New[string, Value]()
	for _, p := range pairs {
		if _, present := m.Get(p.Key); present {
			return nil, fmt.Errorf("key %q: %w", p.Key, ErrDuplicateKey)
		}
		m.Set(p.Key, p.Value)
	}
	return &Tree{m: m, positional: positional}, nil
}

// Get returns the value stored under key. The boolean distinguishes a
// missing key from a key legitimately mapped to a null scalar.
func (t *Tree) Get(key string) (Value, bool) {
	return t.m.Get(key)
}

// IndexOf returns the zero-based insertion position of key.
func (t *Tree) IndexOf(key string) (int, bool) {
	i := 0
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		if p.Key == key {
			return i, true
		}
		i++
	}
	return 0, false
}

// Keys returns the keys in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, t.m.Len())
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	return t.m.Len()
}

// Positional reports whether key positions are meaningful for this tree.
func (t *Tree) Positional() bool {
	return t.positional
}

// MarshalJSON encodes the tree as a JSON object in insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
