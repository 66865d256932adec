package ordered

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode parses a JSON document into a Value, preserving object key order.
// Objects become ordered *Trees, arrays stay opaque []any scalars, and
// everything else becomes a Scalar. A duplicate key inside an object is a
// decode error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, isDelim := tok.(json.Delim); isDelim {
		switch d {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected token %v", d)
	}
	return Scalar{V: tok}, nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var pairs []Pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, isString := tok.(string)
		if !isString {
			return nil, fmt.Errorf("unexpected object key token %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: val})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return NewTree(pairs...)
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := []any{}
	for dec.More() {
		var elem any
		if err := dec.Decode(&elem); err != nil {
			return nil, err
		}
		arr = append(arr, elem)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return Scalar{V: arr}, nil
}
