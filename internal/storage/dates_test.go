package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatesRoundTrip(t *testing.T) {
	due := time.Date(2025, 1, 2, 3, 4, 5, 678000000, time.UTC)
	loaned := time.Date(2024, 12, 18, 9, 0, 0, 1000000, time.FixedZone("CET", 3600))

	original := map[string]any{
		"dueAt": due,
		"loan": map[string]any{
			"loanedAt": loaned,
			"title":    "2024-01-01T00:00:00Z",
		},
		"history": []any{
			map[string]any{"dueAt": due},
		},
	}
	fields := []string{"dueAt", "loanedAt"}

	serialized := SerializeDates(original, fields)

	// Survive a trip through JSON like a persisted slot does.
	data, err := json.Marshal(serialized)
	require.NoError(t, err)
	var decoded any
	require.NoError(t, json.Unmarshal(data, &decoded))

	revived := ReviveDates(decoded, fields).(map[string]any)

	gotDue, ok := revived["dueAt"].(time.Time)
	require.True(t, ok)
	assert.True(t, due.Equal(gotDue))
	assert.Equal(t, due.UnixMilli(), gotDue.UnixMilli())

	loan := revived["loan"].(map[string]any)
	gotLoaned, ok := loan["loanedAt"].(time.Time)
	require.True(t, ok)
	assert.True(t, loaned.Equal(gotLoaned))

	// Not on the allow-list: stays a string even though it looks like a date.
	assert.Equal(t, "2024-01-01T00:00:00Z", loan["title"])

	history := revived["history"].([]any)
	assert.IsType(t, time.Time{}, history[0].(map[string]any)["dueAt"])
}

func TestReviveDates_LeavesUnparseableValues(t *testing.T) {
	revived := ReviveDates(map[string]any{"dueAt": "tomorrow", "n": 3.0}, []string{"dueAt"})
	assert.Equal(t, map[string]any{"dueAt": "tomorrow", "n": 3.0}, revived)
}

func TestSerializeDates_NilPointer(t *testing.T) {
	var missing *time.Time
	out := SerializeDates(map[string]any{"returnedAt": missing}, []string{"returnedAt"})
	assert.Nil(t, out.(map[string]any)["returnedAt"])
}
