// Package capture models captured HTTP request/response records and loads
// them from capture files (JSON arrays of records).
package capture

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Headers is a slice of header name-value pairs in wire order.
type Headers [][]string

// Get returns the first value for the given header name (case-insensitive).
// Returns an empty string if the header is not found.
func (h Headers) Get(name string) string {
	name = strings.ToLower(name)
	for _, pair := range h {
		if len(pair) >= 2 && strings.ToLower(pair[0]) == name {
			return pair[1]
		}
	}
	return ""
}

// Values returns all values for the given header name (case-insensitive).
func (h Headers) Values(name string) []string {
	name = strings.ToLower(name)
	var values []string
	for _, pair := range h {
		if len(pair) >= 2 && strings.ToLower(pair[0]) == name {
			values = append(values, pair[1])
		}
	}
	return values
}

// Request is the request half of a captured record.
type Request struct {
	Method      string  `json:"method"`
	URL         string  `json:"url"`
	HTTPVersion string  `json:"httpVersion"`
	Headers     Headers `json:"headers"`
	Body        *string `json:"body"` // Base64-encoded
}

// Response is the response half of a captured record. Nil when the capture
// ended before a response arrived.
type Response struct {
	StatusCode  *int    `json:"statusCode"`
	HTTPVersion string  `json:"httpVersion"`
	Headers     Headers `json:"headers"`
	Body        *string `json:"body"` // Base64-encoded
}

// Record is one captured HTTP exchange.
type Record struct {
	ID       string    `json:"id,omitempty"`
	TsMs     int64     `json:"ts_ms,omitempty"`
	Request  Request   `json:"request"`
	Response *Response `json:"response"`

	// raw retains the record's original JSON for jq filtering.
	raw json.RawMessage
}

// RequestBody base64-decodes the request body. Returns nil bytes when the
// body is absent or empty.
func (r Record) RequestBody() ([]byte, error) {
	return decodeBody(r.Request.Body)
}

// Status returns the response status code and whether a response with a
// status was captured at all.
func (r Record) Status() (int, bool) {
	if r.Response == nil || r.Response.StatusCode == nil {
		return 0, false
	}
	return *r.Response.StatusCode, true
}

func decodeBody(body *string) ([]byte, error) {
	if body == nil || *body == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(*body)
}
