package recurset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_MergesRulesRDatesAndExDates(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.AddRuleString(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "FREQ=DAILY;COUNT=3"))
	require.NoError(t, set.AddRuleString(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "FREQ=DAILY;COUNT=3"))
	set.AddRDate(time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC))
	set.AddExDate(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	want := []time.Time{
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, set.All(0))
}

func TestSet_DeduplicatesAcrossSources(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	set := NewSet()
	require.NoError(t, set.AddRuleString(dtstart, "FREQ=DAILY;COUNT=3"))
	require.NoError(t, set.AddRuleString(dtstart, "FREQ=DAILY;COUNT=3"))
	set.AddRDate(dtstart) // duplicates the first occurrence again

	got := set.All(0)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].After(got[i-1]), "occurrences must be strictly ascending")
	}
}

func TestSet_DateOnlyExclusion(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.AddRuleString(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "FREQ=DAILY;COUNT=4"))
	require.NoError(t, set.AddRuleString(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "FREQ=DAILY;COUNT=4"))
	// A date-only exclusion (midnight UTC) strikes every occurrence on
	// that calendar day.
	set.AddExDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	for _, occ := range set.All(0) {
		assert.NotEqual(t, 2, occ.Day(), "January 2 must be fully excluded, got %v", occ)
	}
}

func TestSet_Between(t *testing.T) {
	newDaily := func() *Set {
		set := NewSet()
		require.NoError(t, set.AddRuleString(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "FREQ=DAILY"))
		return set
	}

	t.Run("inclusive", func(t *testing.T) {
		got := newDaily().Between(
			time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
			true,
		)
		want := []time.Time{
			time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, want, got)
	})

	t.Run("exclusive", func(t *testing.T) {
		got := newDaily().Between(
			time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
			false,
		)
		want := []time.Time{
			time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, want, got)
	})
}

func TestSet_PeekDoesNotConsume(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.AddRuleString(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "FREQ=DAILY;COUNT=2"))

	peeked, ok := set.Peek()
	require.True(t, ok)
	next, ok := set.Next()
	require.True(t, ok)
	assert.Equal(t, peeked, next)
}

func TestSet_Empty(t *testing.T) {
	set := NewSet()
	_, ok := set.Next()
	assert.False(t, ok)
	assert.Empty(t, set.All(0))
}

func TestSet_InvalidRule(t *testing.T) {
	set := NewSet()
	err := set.AddRuleString(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "FREQ=NOPE")
	assert.Error(t, err)
}
