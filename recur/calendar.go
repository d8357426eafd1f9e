package recur

// calendar bundles the proleptic Gregorian date arithmetic the pipeline
// stages need. It is a small value type; every stage that needs one holds
// its own copy, there is no shared calendar state.
//
// Week numbering follows the ISO 8601 convention with a configurable first
// day of the week: week 1 is the first week containing at least
// minDaysInFirstWeek days of the new year.
type calendar struct {
	weekStart Weekday
}

// minDaysInFirstWeek matches the iCalendar week numbering rule (RFC 5545
// section 3.3.10: "a week is defined as a seven day period ... with at
// least four days in that calendar year").
const minDaysInFirstWeek = 4

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// monthOffsets[m] is the day-of-year (0-based) of the first day of month m
// in a non-leap year.
var monthOffsets = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func yearLength(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

// daysInMonth returns the length of the given month (0-based) in the given
// year.
func daysInMonth(year, month int) int {
	if month == 1 && isLeapYear(year) {
		return 29
	}
	return monthLengths[month]
}

// dayOfYear returns the 1-based ordinal day for (year, month, dayOfMonth)
// with month 0-based.
func dayOfYear(year, month, day int) int {
	doy := monthOffsets[month] + day
	if month > 1 && isLeapYear(year) {
		doy++
	}
	return doy
}

// monthAndDay resolves a 1-based day-of-year back into (month, dayOfMonth)
// with month 0-based. doy must be within 1..yearLength(year).
func monthAndDay(year, doy int) (month, day int) {
	leap := 0
	if isLeapYear(year) {
		leap = 1
	}
	for m := 11; m >= 0; m-- {
		start := monthOffsets[m]
		if m > 1 {
			start += leap
		}
		if doy > start {
			return m, doy - start
		}
	}
	return 0, doy
}

// weekdayOf computes the ISO weekday (Monday=1..Sunday=7) of a proleptic
// Gregorian date, month 0-based. Sakamoto's method.
func weekdayOf(year, month, day int) Weekday {
	t := [12]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}
	y := year
	if month < 2 {
		y--
	}
	d := (y + y/4 - y/100 + y/400 + t[month] + day) % 7
	d = (d%7 + 7) % 7 // 0 = Sunday
	if d == 0 {
		return Sunday
	}
	return Weekday(d)
}

// normalizeDayOfYear rolls an out-of-range day-of-year into the adjacent
// year(s) so that the result is within 1..yearLength(year).
func normalizeDayOfYear(year, doy int) (int, int) {
	for doy < 1 {
		year--
		doy += yearLength(year)
	}
	for doy > yearLength(year) {
		doy -= yearLength(year)
		year++
	}
	return year, doy
}

// week1Start returns the day-of-year (possibly zero or negative, meaning a
// day of the previous December) on which week 1 of the given year begins.
func (c calendar) week1Start(year int) int {
	jan1 := int(weekdayOf(year, 0, 1))
	diff := (jan1 - int(c.weekStart) + 7) % 7
	start := 1 - diff
	if 7-diff < minDaysInFirstWeek {
		start += 7
	}
	return start
}

// weeksInYear returns 52 or 53.
func (c calendar) weeksInYear(year int) int {
	next := yearLength(year) + c.week1Start(year+1)
	return (next - c.week1Start(year)) / 7
}

// weekOfYear returns the week number of the given day. Days before week 1
// belong to the last week of the previous year; days after the last week
// belong to week 1 of the next year.
func (c calendar) weekOfYear(year, doy int) int {
	start := c.week1Start(year)
	if doy < start {
		return c.weeksInYear(year - 1)
	}
	week := (doy-start)/7 + 1
	if week > c.weeksInYear(year) {
		return 1
	}
	return week
}

// weekStartDay returns the day-of-year on which the given week begins. The
// result may lie outside 1..yearLength for weeks straddling a year
// boundary.
func (c calendar) weekStartDay(year, week int) int {
	return c.week1Start(year) + (week-1)*7
}

// instanceAt builds a fully derived instance at (year, doy), normalizing
// across year boundaries and copying the time fields from tmpl.
func (c calendar) instanceAt(year, doy int, tmpl instance) instance {
	year, doy = normalizeDayOfYear(year, doy)
	m, d := monthAndDay(year, doy)
	inst := tmpl
	inst.year = year
	inst.month = m
	inst.dayOfMonth = d
	inst.dayOfYear = doy
	inst.dayOfWeek = weekdayOf(year, m, d)
	inst.weekOfYear = c.weekOfYear(year, doy)
	return inst
}

// rederive recomputes the dependent fields (dayOfYear, dayOfWeek,
// weekOfYear) from (year, month, dayOfMonth). When dayOfMonth overflows the
// month the derived fields are computed from the clamped day while
// dayOfMonth itself keeps its raw value, so that downstream validity checks
// still see the overflow.
func (c calendar) rederive(i *instance) {
	d := i.dayOfMonth
	if maxDay := daysInMonth(i.year, i.month); d > maxDay {
		d = maxDay
	}
	i.dayOfYear = dayOfYear(i.year, i.month, d)
	i.dayOfWeek = weekdayOf(i.year, i.month, d)
	i.weekOfYear = c.weekOfYear(i.year, i.dayOfYear)
}

// addDays advances the instance by n days, normalizing all date fields.
func (c calendar) addDays(i *instance, n int) {
	year, doy := normalizeDayOfYear(i.year, i.dayOfYear+n)
	m, d := monthAndDay(year, doy)
	i.year = year
	i.month = m
	i.dayOfMonth = d
	i.dayOfYear = doy
	i.dayOfWeek = weekdayOf(year, m, d)
	i.weekOfYear = c.weekOfYear(year, doy)
}
