package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	records, err := Parse("test.json", []byte(sampleCapture))
	require.NoError(t, err)

	tests := []struct {
		name       string
		expression string
		wantIDs    []string
	}{
		{
			name:       "by method",
			expression: `.request.method == "POST"`,
			wantIDs:    []string{"test.json#1"},
		},
		{
			name:       "by status",
			expression: `.response.statusCode == 200`,
			wantIDs:    []string{"r1"},
		},
		{
			name:       "truthy non-boolean output keeps the record",
			expression: `.request.headers[] | select(.[0] == "Host")`,
			wantIDs:    []string{"r1", "test.json#1"},
		},
		{
			name:       "select syntax",
			expression: `select(.response != null)`,
			wantIDs:    []string{"r1"},
		},
		{
			name:       "no matches",
			expression: `.request.method == "DELETE"`,
			wantIDs:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, err := Filter(records, tt.expression)
			require.NoError(t, err)

			var ids []string
			for _, rec := range kept {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterInvalidExpression(t *testing.T) {
	records, err := Parse("test.json", []byte(sampleCapture))
	require.NoError(t, err)

	_, err = Filter(records, `.request.method ==`)
	assert.Error(t, err)
}

func TestFilterTypeMismatchIsNotFatal(t *testing.T) {
	records, err := Parse("test.json", []byte(sampleCapture))
	require.NoError(t, err)

	// .response is null for the second record; iterating it errors for
	// that record only, which simply doesn't match.
	kept, err := Filter(records, `.response.headers[] | .[0] == "Content-Type"`)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "r1", kept[0].ID)
}
