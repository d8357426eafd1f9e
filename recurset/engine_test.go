package recurset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_HasOccurrenceInRange(t *testing.T) {
	engine := NewEngine()
	defer engine.Close()

	// Base event: daily meeting from 9-10 AM starting Jan 1, 2024.
	masterStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	masterEnd := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		recurrence Recurrence
		rangeStart time.Time
		rangeEnd   time.Time
		expected   bool
	}{
		{
			name:       "non-recurring event in range",
			recurrence: Recurrence{},
			rangeStart: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			rangeEnd:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			expected:   true,
		},
		{
			name:       "non-recurring event out of range",
			recurrence: Recurrence{},
			rangeStart: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			rangeEnd:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			expected:   false,
		},
		{
			name:       "daily recurrence with occurrence in range",
			recurrence: Recurrence{RRule: "FREQ=DAILY;COUNT=7"},
			rangeStart: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			rangeEnd:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			expected:   true,
		},
		{
			name:       "daily recurrence with no occurrence in range",
			recurrence: Recurrence{RRule: "FREQ=DAILY;COUNT=3"},
			rangeStart: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			rangeEnd:   time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			expected:   false,
		},
		{
			name: "master excluded by exdate",
			recurrence: Recurrence{
				ExDates: []time.Time{time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
			},
			rangeStart: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			rangeEnd:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			expected:   false,
		},
		{
			name: "rdate in range",
			recurrence: Recurrence{
				RDates: []time.Time{time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)},
			},
			rangeStart: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
			rangeEnd:   time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC),
			expected:   true,
		},
		{
			name:       "yearly recurrence across large range",
			recurrence: Recurrence{RRule: "FREQ=YEARLY"},
			rangeStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			rangeEnd:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.HasOccurrenceInRange(
				masterStart, masterEnd,
				tt.recurrence,
				tt.rangeStart, tt.rangeEnd,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEngine_HasOccurrenceInRange_InvalidRule(t *testing.T) {
	engine := NewEngineWithConfig(DisabledCacheConfig)
	defer engine.Close()

	_, err := engine.HasOccurrenceInRange(
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Recurrence{RRule: "FREQ=BOGUS"},
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	)
	assert.Error(t, err)
}

func TestEngine_ExpandInRange(t *testing.T) {
	engine := NewEngineWithConfig(DisabledCacheConfig)
	defer engine.Close()

	masterStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	masterEnd := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	occurrences, err := engine.ExpandInRange(
		masterStart, masterEnd,
		Recurrence{
			RRule:   "FREQ=DAILY;COUNT=5",
			ExDates: []time.Time{time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)},
		},
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 23, 59, 59, 0, time.UTC),
	)
	require.NoError(t, err)

	require.Len(t, occurrences, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), occurrences[0].Start)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), occurrences[0].End)
	assert.Equal(t, time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC), occurrences[1].Start)
}

func TestEngine_ExpandInRange_NonRecurring(t *testing.T) {
	engine := NewEngineWithConfig(DisabledCacheConfig)
	defer engine.Close()

	masterStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	masterEnd := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	occurrences, err := engine.ExpandInRange(
		masterStart, masterEnd,
		Recurrence{},
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, masterStart, occurrences[0].Start)
}

func TestEngine_CachedExpansionIsStable(t *testing.T) {
	engine := NewEngine()
	defer engine.Close()

	rec := Recurrence{RRule: "FREQ=DAILY;COUNT=10"}
	masterStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rangeStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	first, err := engine.expandRule(masterStart, rec, rangeStart, rangeEnd)
	require.NoError(t, err)
	second, err := engine.expandRule(masterStart, rec, rangeStart, rangeEnd)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, engine.cache.len())
}
