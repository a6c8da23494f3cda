package idx

import (
	"sort"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewAt_IsValidULID(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := NewAt(tm)
	require.Len(t, id, 26)

	u, err := ulid.ParseStrict(id)
	require.NoError(t, err)
	require.True(t, tm.Equal(ulid.Time(u.Time())))
}

func TestNewAt_Ordering(t *testing.T) {
	a := NewAt(time.Unix(1, 0).UTC())
	b := NewAt(time.Unix(2, 0).UTC())
	require.Less(t, a, b)
}

func TestNewAt_MonotonicWithinMillisecond(t *testing.T) {
	ts := time.Unix(1700000000, 0).UTC()
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = NewAt(ts)
	}
	require.True(t, sort.StringsAreSorted(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		require.False(t, seen[id])
		seen[id] = true
	}
}
