package recur

import "time"

// instance is an in-flight expansion candidate carried between pipeline
// stages. Instances are plain values; a stage that alters one works on its
// own copy and downstream stages never observe partial mutation.
//
// month is 0-based (0 = January). dayOfWeek uses ISO numbering, Monday=1
// through Sunday=7. dayOfMonth and dayOfYear may temporarily exceed their
// calendar maxima while an instance represents a week shifted across a
// month boundary; the sanity filter drops any such instance that survives
// to the end of the pipeline.
type instance struct {
	year       int
	month      int
	dayOfMonth int
	dayOfYear  int
	dayOfWeek  Weekday
	weekOfYear int
	hour       int
	minute     int
	second     int
}

// key packs the instance into a single ordered integer. Instances compare
// by (year, month, dayOfMonth, hour, minute, second); equal keys are
// duplicates. Field widths leave room for the shifted day values produced
// by week-overlap expansion.
func (i instance) key() int64 {
	k := int64(i.year)
	k = k*12 + int64(i.month)
	k = k*64 + int64(i.dayOfMonth)
	k = k*32 + int64(i.hour)
	k = k*64 + int64(i.minute)
	k = k*64 + int64(i.second)
	return k
}

// validDate reports whether the instance denotes a real calendar date with
// in-range time fields. Clamped month rollovers (February 30) and
// week-overlap shifts fail here.
func (i instance) validDate() bool {
	if i.month < 0 || i.month > 11 {
		return false
	}
	if i.dayOfMonth < 1 || i.dayOfMonth > daysInMonth(i.year, i.month) {
		return false
	}
	if i.dayOfYear < 1 || i.dayOfYear > yearLength(i.year) {
		return false
	}
	if i.hour < 0 || i.hour > 23 || i.minute < 0 || i.minute > 59 || i.second < 0 || i.second > 60 {
		return false
	}
	return true
}

// instanceFromTime derives a fully populated instance from a time.Time.
func instanceFromTime(c calendar, t time.Time) instance {
	inst := instance{
		year:       t.Year(),
		month:      int(t.Month()) - 1,
		dayOfMonth: t.Day(),
		hour:       t.Hour(),
		minute:     t.Minute(),
		second:     t.Second(),
	}
	c.rederive(&inst)
	return inst
}

// timeKey packs a time.Time with the same ordering as instance.key.
func timeKey(t time.Time) int64 {
	return instance{
		year:       t.Year(),
		month:      int(t.Month()) - 1,
		dayOfMonth: t.Day(),
		hour:       t.Hour(),
		minute:     t.Minute(),
		second:     t.Second(),
	}.key()
}

// toTime converts the instance to a time.Time in the given location. A
// leap-second value of 60 normalizes to the following minute, which is the
// closest representation time.Time admits.
func (i instance) toTime(loc *time.Location) time.Time {
	return time.Date(i.year, time.Month(i.month+1), i.dayOfMonth, i.hour, i.minute, i.second, 0, loc)
}
