package recur

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Freq is the outer periodicity of a recurrence rule. The ordering is
// significant: a larger Freq denotes a coarser interval, and the
// expander-vs-filter classification of the BY parts compares against it.
type Freq int

const (
	Secondly Freq = iota
	Minutely
	Hourly
	Daily
	Weekly
	Monthly
	Yearly
)

var freqNames = [...]string{"SECONDLY", "MINUTELY", "HOURLY", "DAILY", "WEEKLY", "MONTHLY", "YEARLY"}

func (f Freq) String() string {
	if f < Secondly || f > Yearly {
		return fmt.Sprintf("Freq(%d)", int(f))
	}
	return freqNames[f]
}

// ParseFreq parses an RFC 5545 FREQ value.
func ParseFreq(s string) (Freq, error) {
	for i, name := range freqNames {
		if strings.EqualFold(s, name) {
			return Freq(i), nil
		}
	}
	return 0, fmt.Errorf("recur: unknown frequency %q", s)
}

// Weekday uses ISO 8601 numbering: Monday is 1, Sunday is 7.
type Weekday int

const (
	Monday Weekday = 1 + iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w-1]
}

// ParseWeekday parses a two-letter RFC 5545 weekday symbol.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) {
			return Weekday(i + 1), nil
		}
	}
	return 0, fmt.Errorf("recur: unknown weekday %q", s)
}

// WeekdayFromTime converts a time.Weekday to the ISO numbering used here.
func WeekdayFromTime(w time.Weekday) Weekday {
	if w == time.Sunday {
		return Sunday
	}
	return Weekday(w)
}

// WeekdayNum is a BYDAY entry: a weekday with an optional nonzero
// positional prefix (2MO is the second Monday, -1FR the last Friday). A
// zero Pos means no prefix.
type WeekdayNum struct {
	Day Weekday
	Pos int
}

func (w WeekdayNum) String() string {
	if w.Pos == 0 {
		return w.Day.String()
	}
	return strconv.Itoa(w.Pos) + w.Day.String()
}

// Rule is the structured form of an RFC 5545 recurrence rule. The zero
// value of the optional fields means "absent"; a zero Interval is treated
// as the default of 1 and a zero WeekStart as Monday.
//
// A Rule is shared read-only by every stage of an iterator; callers must
// not mutate it while iterators built from it are live.
type Rule struct {
	Freq      Freq
	Interval  int
	WeekStart Weekday

	// Until and Count are mutually exclusive termination bounds. Until is
	// inclusive and compared in the time zone of the iterator's start
	// instant.
	Until mo.Option[time.Time]
	Count mo.Option[int]

	ByMonth    []int // 1..12
	ByWeekNo   []int // -53..-1, 1..53
	ByYearDay  []int // -366..-1, 1..366
	ByMonthDay []int // -31..-1, 1..31
	ByDay      []WeekdayNum
	ByHour     []int // 0..23
	ByMinute   []int // 0..59
	BySecond   []int // 0..60, tolerating a leap second
	BySetPos   []int // -366..-1, 1..366
}

func (r *Rule) interval() int {
	if r.Interval <= 0 {
		return 1
	}
	return r.Interval
}

func (r *Rule) weekStart() Weekday {
	if r.WeekStart < Monday || r.WeekStart > Sunday {
		return Monday
	}
	return r.WeekStart
}

// Validate checks the rule's structure and value ranges. Range violations
// wrap ErrRuleUnsatisfiable; structural problems (UNTIL together with
// COUNT, a negative interval) return plain errors.
func (r *Rule) Validate() error {
	if r.Freq < Secondly || r.Freq > Yearly {
		return fmt.Errorf("recur: invalid frequency %d", int(r.Freq))
	}
	if r.Interval < 0 {
		return fmt.Errorf("recur: negative interval %d", r.Interval)
	}
	if r.Until.IsPresent() && r.Count.IsPresent() {
		return fmt.Errorf("recur: UNTIL and COUNT are mutually exclusive")
	}
	if c, ok := r.Count.Get(); ok && c <= 0 {
		return fmt.Errorf("recur: COUNT must be positive, got %d", c)
	}
	checks := []struct {
		part     string
		values   []int
		min, max int
		signed   bool
	}{
		{"BYMONTH", r.ByMonth, 1, 12, false},
		{"BYWEEKNO", r.ByWeekNo, 1, 53, true},
		{"BYYEARDAY", r.ByYearDay, 1, 366, true},
		{"BYMONTHDAY", r.ByMonthDay, 1, 31, true},
		{"BYHOUR", r.ByHour, 0, 23, false},
		{"BYMINUTE", r.ByMinute, 0, 59, false},
		{"BYSECOND", r.BySecond, 0, 60, false},
		{"BYSETPOS", r.BySetPos, 1, 366, true},
	}
	for _, c := range checks {
		for _, v := range c.values {
			if c.signed && v == 0 {
				// Zero never resolves to a day; the stage skips it.
				continue
			}
			abs := v
			if c.signed && v < 0 {
				abs = -v
			}
			if abs < c.min || abs > c.max || (!c.signed && v < 0) {
				return fmt.Errorf("%w: %s value %d out of range", ErrRuleUnsatisfiable, c.part, v)
			}
		}
	}
	for _, wd := range r.ByDay {
		if wd.Day < Monday || wd.Day > Sunday {
			return fmt.Errorf("%w: BYDAY weekday %d out of range", ErrRuleUnsatisfiable, int(wd.Day))
		}
		if wd.Pos < -53 || wd.Pos > 53 {
			return fmt.Errorf("%w: BYDAY position %d out of range", ErrRuleUnsatisfiable, wd.Pos)
		}
	}
	return nil
}

// String serializes the rule back to canonical RRULE text.
func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString("FREQ=")
	b.WriteString(r.Freq.String())
	if r.Interval > 1 {
		b.WriteString(";INTERVAL=")
		b.WriteString(strconv.Itoa(r.Interval))
	}
	if u, ok := r.Until.Get(); ok {
		b.WriteString(";UNTIL=")
		b.WriteString(u.UTC().Format("20060102T150405Z"))
	}
	if c, ok := r.Count.Get(); ok {
		b.WriteString(";COUNT=")
		b.WriteString(strconv.Itoa(c))
	}
	writeIntList(&b, "BYMONTH", r.ByMonth)
	writeIntList(&b, "BYWEEKNO", r.ByWeekNo)
	writeIntList(&b, "BYYEARDAY", r.ByYearDay)
	writeIntList(&b, "BYMONTHDAY", r.ByMonthDay)
	if len(r.ByDay) > 0 {
		b.WriteString(";BYDAY=")
		for i, wd := range r.ByDay {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(wd.String())
		}
	}
	writeIntList(&b, "BYHOUR", r.ByHour)
	writeIntList(&b, "BYMINUTE", r.ByMinute)
	writeIntList(&b, "BYSECOND", r.BySecond)
	writeIntList(&b, "BYSETPOS", r.BySetPos)
	if r.WeekStart >= Monday && r.WeekStart <= Sunday && r.WeekStart != Monday {
		b.WriteString(";WKST=")
		b.WriteString(r.WeekStart.String())
	}
	return b.String()
}

func writeIntList(b *strings.Builder, part string, values []int) {
	if len(values) == 0 {
		return
	}
	b.WriteByte(';')
	b.WriteString(part)
	b.WriteByte('=')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
}
