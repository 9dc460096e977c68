package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	const count = 1000
	seen := make(map[ID]bool, count)

	for range count {
		id := New()
		require.NotContains(t, seen, id, "duplicate ULID generated")
		seen[id] = true
	}
}

func TestNew_Sortable(t *testing.T) {
	a := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, a.String(), b.String(), "earlier IDs should sort first")
}

func TestParse(t *testing.T) {
	valid := New()

	id, err := Parse(valid.String())
	require.NoError(t, err)
	require.Equal(t, valid, id)

	id, err = Parse("  " + valid.String() + "  ")
	require.NoError(t, err)
	require.Equal(t, valid, id, "surrounding whitespace should be trimmed")

	for _, bad := range []string{"", "not-a-ulid", "01ARZ3NDEKTSV4RRFFQ69G5FA"} {
		_, err := Parse(bad)
		require.ErrorIs(t, err, ErrInvalid, "input %q", bad)
	}
}

func TestTime(t *testing.T) {
	at := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)
	id := NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
	require.True(t, Zero.Time().IsZero())
}
