// Package extract maps captured records to the value pairs compared per
// facet: protocol version, method, base URL, query parameters, request
// headers, request body, and response status.
package extract

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/ryanjanoconnell/httpdiff/internal/cache"
	"github.com/ryanjanoconnell/httpdiff/internal/capture"
	"github.com/ryanjanoconnell/httpdiff/pkg/ordered"
)

// nullLiteral stands in for an absent body or status so the diff engine
// always receives a comparable scalar.
const nullLiteral = "null"

// Options control body extraction.
type Options struct {
	// Bodies, when non-nil, caches decoded bodies by record ID.
	Bodies *cache.BodyCache
	// MaxBodyBytes skips JSON decoding for larger bodies; they compare as
	// raw strings. Zero means no limit.
	MaxBodyBytes int
}

// Facet is one named pair of values ready for diffing.
type Facet struct {
	Name string
	A, B ordered.Value
}

// Facets produces the tracked facet pairs for two records, in presentation
// order.
func Facets(a, b capture.Record, opts Options) ([]Facet, error) {
	type extractor struct {
		name string
		fn   func(capture.Record) (ordered.Value, error)
	}
	extractors := []extractor{
		{"version", func(r capture.Record) (ordered.Value, error) { return Version(r), nil }},
		{"method", func(r capture.Record) (ordered.Value, error) { return Method(r), nil }},
		{"baseurl", BaseURL},
		{"query", Query},
		{"headers", func(r capture.Record) (ordered.Value, error) { return HeadersTree(r.Request.Headers) }},
		{"body", func(r capture.Record) (ordered.Value, error) { return Body(r, opts) }},
		{"status", func(r capture.Record) (ordered.Value, error) { return Status(r), nil }},
	}

	facets := make([]Facet, 0, len(extractors))
	for _, ex := range extractors {
		va, err := ex.fn(a)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", ex.name, err)
		}
		vb, err := ex.fn(b)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", ex.name, err)
		}
		facets = append(facets, Facet{Name: ex.name, A: va, B: vb})
	}
	return facets, nil
}

// Version extracts the request protocol version as a scalar.
func Version(rec capture.Record) ordered.Value {
	return ordered.Scalar{V: rec.Request.HTTPVersion}
}

// Method extracts the request method as a scalar.
func Method(rec capture.Record) ordered.Value {
	return ordered.Scalar{V: rec.Request.Method}
}

// BaseURL breaks the request URL into scheme/host/path. URL parsing does
// not preserve a meaningful key order, so the tree is unordered.
func BaseURL(rec capture.Record) (ordered.Value, error) {
	u, err := url.Parse(rec.Request.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}
	return ordered.NewUnordered(
		ordered.Pair{Key: "scheme", Value: ordered.Scalar{V: u.Scheme}},
		ordered.Pair{Key: "host", Value: ordered.Scalar{V: u.Host}},
		ordered.Pair{Key: "path", Value: ordered.Scalar{V: u.Path}},
	)
}

// Query extracts the query parameters as an unordered tree, possibly
// empty. Repeated keys fold into one comma-joined value.
func Query(rec capture.Record) (ordered.Value, error) {
	u, err := url.Parse(rec.Request.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}
	values := u.Query()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]ordered.Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, ordered.Pair{
			Key:   k,
			Value: ordered.Scalar{V: strings.Join(values[k], ",")},
		})
	}
	return ordered.NewUnordered(pairs...)
}

// HeadersTree builds an ordered tree from a header array, preserving wire
// order as key order. Repeated header names fold their values into one
// comma-joined scalar so keys stay unique.
func HeadersTree(headers capture.Headers) (ordered.Value, error) {
	var pairs []ordered.Pair
	index := make(map[string]int)

	for _, h := range headers {
		if len(h) < 2 {
			continue
		}
		name := strings.ToLower(h[0])
		if i, folded := index[name]; folded {
			prev := pairs[i].Value.(ordered.Scalar).V.(string)
			pairs[i].Value = ordered.Scalar{V: prev + "," + h[1]}
			continue
		}
		index[name] = len(pairs)
		pairs = append(pairs, ordered.Pair{Key: name, Value: ordered.Scalar{V: h[1]}})
	}
	return ordered.NewTree(pairs...)
}

// Body extracts the request body: decoded as an ordered tree when it is
// valid JSON, left as a raw string otherwise. An absent or empty body
// normalizes to the literal string "null".
func Body(rec capture.Record, opts Options) (ordered.Value, error) {
	if opts.Bodies != nil {
		if cached, ok := opts.Bodies.Get(rec.ID); ok {
			return cached, nil
		}
	}

	raw, err := rec.RequestBody()
	if err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}

	var v ordered.Value
	switch {
	case len(raw) == 0:
		v = ordered.Scalar{V: nullLiteral}
	case opts.MaxBodyBytes > 0 && len(raw) > opts.MaxBodyBytes:
		v = ordered.Scalar{V: string(raw)}
	default:
		decoded, err := ordered.Decode(raw)
		if err != nil {
			v = ordered.Scalar{V: string(raw)}
		} else {
			v = decoded
		}
	}

	if opts.Bodies != nil {
		opts.Bodies.Put(rec.ID, v)
	}
	return v, nil
}

// Status extracts the response status code as a scalar; a record without a
// response normalizes to the literal string "null".
func Status(rec capture.Record) ordered.Value {
	code, ok := rec.Status()
	if !ok {
		return ordered.Scalar{V: nullLiteral}
	}
	return ordered.Scalar{V: code}
}
