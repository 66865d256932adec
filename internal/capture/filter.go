package capture

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Filter returns the records whose raw JSON satisfies the jq expression,
// e.g. `.request.method == "POST"`. A record is kept when the expression
// produces true or any non-null non-false value.
func Filter(records []Record, expression string) ([]Record, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	var kept []Record
	for i, rec := range records {
		var input any
		if err := json.Unmarshal(rec.raw, &input); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if matches(code, input) {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}

func matches(code *gojq.Code, input any) bool {
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return false
		}
		if _, isErr := v.(error); isErr {
			// Type mismatches on individual records are not fatal; the
			// record simply doesn't match.
			continue
		}
		if b, isBool := v.(bool); isBool {
			if b {
				return true
			}
			continue
		}
		if v != nil {
			return true
		}
	}
}
