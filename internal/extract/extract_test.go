package extract

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanjanoconnell/httpdiff/internal/cache"
	"github.com/ryanjanoconnell/httpdiff/internal/capture"
	"github.com/ryanjanoconnell/httpdiff/pkg/ordered"
)

func b64(s string) *string {
	encoded := base64.StdEncoding.EncodeToString([]byte(s))
	return &encoded
}

func sampleRecord() capture.Record {
	status := 200
	return capture.Record{
		ID: "rec-1",
		Request: capture.Request{
			Method:      "GET",
			URL:         "https://example.com/api/items?b=2&a=1&a=3",
			HTTPVersion: "HTTP/1.1",
			Headers: capture.Headers{
				{"Host", "example.com"},
				{"Accept", "*/*"},
			},
		},
		Response: &capture.Response{
			StatusCode:  &status,
			HTTPVersion: "HTTP/1.1",
		},
	}
}

func TestVersionAndMethod(t *testing.T) {
	rec := sampleRecord()
	assert.Equal(t, ordered.Scalar{V: "HTTP/1.1"}, Version(rec))
	assert.Equal(t, ordered.Scalar{V: "GET"}, Method(rec))
}

func TestBaseURL(t *testing.T) {
	v, err := BaseURL(sampleRecord())
	require.NoError(t, err)

	tree, isTree := v.(*ordered.Tree)
	require.True(t, isTree)
	assert.False(t, tree.Positional())

	for key, want := range map[string]string{
		"scheme": "https",
		"host":   "example.com",
		"path":   "/api/items",
	} {
		got, ok := tree.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, ordered.Scalar{V: want}, got)
	}
}

func TestQuery(t *testing.T) {
	v, err := Query(sampleRecord())
	require.NoError(t, err)

	tree := v.(*ordered.Tree)
	assert.False(t, tree.Positional())
	assert.Equal(t, 2, tree.Len())

	// Repeated keys fold into one comma-joined value.
	got, ok := tree.Get("a")
	require.True(t, ok)
	assert.Equal(t, ordered.Scalar{V: "1,3"}, got)
}

func TestQueryEmpty(t *testing.T) {
	rec := sampleRecord()
	rec.Request.URL = "https://example.com/api"

	v, err := Query(rec)
	require.NoError(t, err)
	assert.Equal(t, 0, v.(*ordered.Tree).Len())
}

func TestHeadersTree(t *testing.T) {
	v, err := HeadersTree(capture.Headers{
		{"Host", "example.com"},
		{"Set-Cookie", "a=1"},
		{"Accept", "*/*"},
		{"Set-Cookie", "b=2"},
	})
	require.NoError(t, err)

	tree := v.(*ordered.Tree)
	assert.True(t, tree.Positional())

	// Wire order becomes key order; repeats fold at first occurrence.
	assert.Equal(t, []string{"host", "set-cookie", "accept"}, tree.Keys())

	got, ok := tree.Get("set-cookie")
	require.True(t, ok)
	assert.Equal(t, ordered.Scalar{V: "a=1,b=2"}, got)
}

func TestBodyJSON(t *testing.T) {
	rec := sampleRecord()
	rec.Request.Body = b64(`{"z":1,"a":2}`)

	v, err := Body(rec, Options{})
	require.NoError(t, err)

	tree, isTree := v.(*ordered.Tree)
	require.True(t, isTree)
	assert.Equal(t, []string{"z", "a"}, tree.Keys())
}

func TestBodyNonJSON(t *testing.T) {
	rec := sampleRecord()
	rec.Request.Body = b64("plain text payload")

	v, err := Body(rec, Options{})
	require.NoError(t, err)
	assert.Equal(t, ordered.Scalar{V: "plain text payload"}, v)
}

func TestBodyAbsent(t *testing.T) {
	v, err := Body(sampleRecord(), Options{})
	require.NoError(t, err)
	assert.Equal(t, ordered.Scalar{V: "null"}, v)
}

func TestBodyOverLimitStaysRaw(t *testing.T) {
	rec := sampleRecord()
	rec.Request.Body = b64(`{"a":1}`)

	v, err := Body(rec, Options{MaxBodyBytes: 3})
	require.NoError(t, err)
	assert.Equal(t, ordered.Scalar{V: `{"a":1}`}, v)
}

func TestBodyUsesCache(t *testing.T) {
	bodies, err := cache.NewBodyCache(8)
	require.NoError(t, err)

	rec := sampleRecord()
	rec.Request.Body = b64(`{"a":1}`)
	opts := Options{Bodies: bodies}

	first, err := Body(rec, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, bodies.Len())

	second, err := Body(rec, opts)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, ordered.Scalar{V: 200}, Status(sampleRecord()))

	rec := sampleRecord()
	rec.Response = nil
	assert.Equal(t, ordered.Scalar{V: "null"}, Status(rec))
}

func TestFacets(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.ID = "rec-2"
	b.Request.Method = "POST"

	facets, err := Facets(a, b, Options{})
	require.NoError(t, err)

	names := make([]string, 0, len(facets))
	for _, f := range facets {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"version", "method", "baseurl", "query", "headers", "body", "status"}, names)

	assert.Equal(t, ordered.Scalar{V: "GET"}, facets[1].A)
	assert.Equal(t, ordered.Scalar{V: "POST"}, facets[1].B)
}
