package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// Cross-check a spread of dates against the standard library.
	dates := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1997, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(1600, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		got := weekdayOf(d.Year(), int(d.Month())-1, d.Day())
		assert.Equal(t, WeekdayFromTime(d.Weekday()), got, "weekday of %v", d)
	}
}

func TestDayOfYearRoundTrip(t *testing.T) {
	for _, year := range []int{1997, 2000, 2023, 2024} {
		doy := 0
		for month := 0; month < 12; month++ {
			for day := 1; day <= daysInMonth(year, month); day++ {
				doy++
				require.Equal(t, doy, dayOfYear(year, month, day))
				m, d := monthAndDay(year, doy)
				require.Equal(t, month, m)
				require.Equal(t, day, d)
			}
		}
		require.Equal(t, yearLength(year), doy)
	}
}

func TestWeeksInYear(t *testing.T) {
	cal := calendar{weekStart: Monday}
	// ISO 8601 long years have 53 weeks.
	tests := map[int]int{
		1997: 52,
		1998: 53,
		1999: 52,
		2004: 53,
		2015: 53,
		2020: 53,
		2021: 52,
	}
	for year, want := range tests {
		assert.Equal(t, want, cal.weeksInYear(year), "weeks in %d", year)
	}
}

func TestWeekOfYear(t *testing.T) {
	cal := calendar{weekStart: Monday}
	tests := []struct {
		year, month, day int // month 1-based for readability
		want             int
	}{
		{1997, 1, 1, 1},
		{1997, 1, 6, 2},
		{1997, 5, 12, 20},
		{1997, 12, 29, 1},  // belongs to week 1 of 1998
		{1999, 1, 1, 53},   // belongs to week 53 of 1998
		{2024, 1, 1, 1},
		{2024, 12, 31, 1}, // belongs to week 1 of 2025
	}
	for _, tt := range tests {
		doy := dayOfYear(tt.year, tt.month-1, tt.day)
		assert.Equal(t, tt.want, cal.weekOfYear(tt.year, doy), "%04d-%02d-%02d", tt.year, tt.month, tt.day)
	}
}

func TestWeekOfYear_SundayStart(t *testing.T) {
	cal := calendar{weekStart: Sunday}
	// With WKST=SU, 1997-08-17 (a Sunday) starts the week containing
	// August 19.
	doy17 := dayOfYear(1997, 7, 17)
	doy19 := dayOfYear(1997, 7, 19)
	assert.Equal(t, cal.weekOfYear(1997, doy17), cal.weekOfYear(1997, doy19))
}

func TestNormalizeDayOfYear(t *testing.T) {
	year, doy := normalizeDayOfYear(1997, 0)
	assert.Equal(t, 1996, year)
	assert.Equal(t, 366, doy) // 1996 is a leap year

	year, doy = normalizeDayOfYear(1997, 366)
	assert.Equal(t, 1998, year)
	assert.Equal(t, 1, doy)

	year, doy = normalizeDayOfYear(1997, 100)
	assert.Equal(t, 1997, year)
	assert.Equal(t, 100, doy)
}

func TestInstanceKeyOrdering(t *testing.T) {
	earlier := instance{year: 1997, month: 8, dayOfMonth: 2, hour: 9}
	later := instance{year: 1997, month: 8, dayOfMonth: 2, hour: 10}
	assert.Less(t, earlier.key(), later.key())

	// Shifted day values from week overlap still order after the real
	// month days.
	shifted := instance{year: 1997, month: 8, dayOfMonth: 33}
	assert.Less(t, later.key(), shifted.key())
}
