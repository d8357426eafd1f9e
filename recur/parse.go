package recur

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// ParseRule parses RFC 5545 RRULE text ("FREQ=MONTHLY;BYDAY=-1FR") into a
// Rule. Parsing is tolerant the way RFC 2445 consumers have to be: part
// names are case-insensitive, a duplicated part takes its last occurrence,
// and UNTIL accepts date-time (with or without the trailing Z) as well as
// plain date form. Unknown parts are rejected.
func ParseRule(s string) (*Rule, error) {
	rule := &Rule{}
	seenFreq := false
	for _, field := range strings.Split(strings.TrimSpace(s), ";") {
		if field == "" {
			continue
		}
		name, value, found := strings.Cut(field, "=")
		if !found || value == "" {
			return nil, fmt.Errorf("recur: malformed rule part %q", field)
		}
		name = strings.ToUpper(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		var err error
		switch name {
		case "FREQ":
			rule.Freq, err = ParseFreq(value)
			seenFreq = true
		case "INTERVAL":
			rule.Interval, err = parsePositiveInt(name, value)
		case "COUNT":
			var n int
			n, err = parsePositiveInt(name, value)
			rule.Count = mo.Some(n)
		case "UNTIL":
			var t time.Time
			t, err = parseUntil(value)
			rule.Until = mo.Some(t)
		case "WKST":
			rule.WeekStart, err = ParseWeekday(value)
		case "BYMONTH":
			rule.ByMonth, err = parseIntList(name, value)
		case "BYWEEKNO":
			rule.ByWeekNo, err = parseIntList(name, value)
		case "BYYEARDAY":
			rule.ByYearDay, err = parseIntList(name, value)
		case "BYMONTHDAY":
			rule.ByMonthDay, err = parseIntList(name, value)
		case "BYDAY":
			rule.ByDay, err = parseWeekdayList(value)
		case "BYHOUR":
			rule.ByHour, err = parseIntList(name, value)
		case "BYMINUTE":
			rule.ByMinute, err = parseIntList(name, value)
		case "BYSECOND":
			rule.BySecond, err = parseIntList(name, value)
		case "BYSETPOS":
			rule.BySetPos, err = parseIntList(name, value)
		default:
			return nil, fmt.Errorf("recur: unknown rule part %q", name)
		}
		if err != nil {
			return nil, err
		}
	}
	if !seenFreq {
		return nil, fmt.Errorf("recur: rule is missing FREQ")
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

func parsePositiveInt(part, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("recur: invalid %s value %q", part, s)
	}
	return n, nil
}

func parseIntList(part, s string) ([]int, error) {
	fields := strings.Split(s, ",")
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("recur: invalid %s value %q", part, f)
		}
		values = append(values, n)
	}
	return values, nil
}

func parseWeekdayList(s string) ([]WeekdayNum, error) {
	fields := strings.Split(s, ",")
	values := make([]WeekdayNum, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) < 2 {
			return nil, fmt.Errorf("recur: invalid BYDAY value %q", f)
		}
		var wd WeekdayNum
		prefix, sym := f[:len(f)-2], f[len(f)-2:]
		if prefix != "" {
			pos, err := strconv.Atoi(prefix)
			if err != nil || pos == 0 {
				return nil, fmt.Errorf("recur: invalid BYDAY position %q", f)
			}
			wd.Pos = pos
		}
		day, err := ParseWeekday(sym)
		if err != nil {
			return nil, fmt.Errorf("recur: invalid BYDAY value %q", f)
		}
		wd.Day = day
		values = append(values, wd)
	}
	return values, nil
}

func parseUntil(s string) (time.Time, error) {
	for _, layout := range []string{"20060102T150405Z", "20060102T150405", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("recur: invalid UNTIL value %q", s)
}
