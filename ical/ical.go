// Package ical bridges iCalendar components to the recurrence engine:
// it extracts the recurrence properties of a VEVENT or VTODO and expands
// whole components into their occurrences.
package ical

import (
	"strings"
	"time"

	eical "github.com/emersion/go-ical"

	"github.com/cyp0633/librecur/recurset"
)

const propRecurrenceID = "RECURRENCE-ID"

// ExtractRecurrence extracts the recurrence information of a component.
// Missing properties leave their fields zero; malformed date entries are
// skipped rather than failing the whole component.
func ExtractRecurrence(comp *eical.Component) recurset.Recurrence {
	rec := recurset.Recurrence{}
	// Values set through Props.SetText carry TEXT escaping ("\;", "\,").
	// RECUR and DATE-TIME values never contain these sequences, so undoing
	// the escaping leaves them untouched.
	unescape := strings.NewReplacer(`\\`, `\`, `\;`, ";", `\,`, ",").Replace

	if prop := comp.Props.Get(eical.PropRecurrenceRule); prop != nil && prop.Value != "" {
		rec.RRule = unescape(prop.Value)
	}
	if prop := comp.Props.Get(eical.PropRecurrenceDates); prop != nil && prop.Value != "" {
		rec.RDates = parseDateList(unescape(prop.Value), prop.Params)
	}
	if prop := comp.Props.Get(eical.PropExceptionDates); prop != nil && prop.Value != "" {
		rec.ExDates = parseDateList(unescape(prop.Value), prop.Params)
	}
	if prop := comp.Props.Get(propRecurrenceID); prop != nil && prop.Value != "" {
		if values := parseDateList(prop.Value, prop.Params); len(values) > 0 {
			rec.RecurrenceID = &values[0]
		}
	}

	return rec
}

// ComponentTimes extracts the start and end instants of a component.
// DTEND, DURATION, and the VTODO DUE property are consulted in that
// order; an all-day event (a DATE-valued start) defaults to a one-day
// span and a timed event without an end to an instantaneous one.
func ComponentTimes(comp *eical.Component) (start, end time.Time, ok bool) {
	// Props.DateTime reports a missing property as the zero time with a
	// nil error, so absence is detected through IsZero.
	dtstart, err := comp.Props.DateTime(eical.PropDateTimeStart, nil)
	if err == nil && !dtstart.IsZero() {
		start = dtstart
		ok = true

		if dtend, endErr := comp.Props.DateTime(eical.PropDateTimeEnd, nil); endErr == nil && !dtend.IsZero() {
			end = dtend
			// An all-day event whose DTEND names its own date spans the
			// whole day.
			if isMidnight(start) && sameDate(start, end) {
				end = start.AddDate(0, 0, 1)
			}
		} else if durProp := comp.Props.Get(eical.PropDuration); durProp != nil {
			dur, durErr := durProp.Duration()
			if durErr != nil {
				return time.Time{}, time.Time{}, false
			}
			end = start.Add(dur)
		} else if isMidnight(start) {
			end = start.AddDate(0, 0, 1)
		} else {
			end = start
		}
	}

	if comp.Name == eical.CompToDo {
		if due, dueErr := comp.Props.DateTime(eical.PropDue, nil); dueErr == nil && !due.IsZero() {
			if !ok {
				return due, due, true
			}
			if due.After(end) {
				end = due
			}
		}
	}

	return start, end, ok
}

// ExpandComponent expands a component's occurrences overlapping
// [rangeStart, rangeEnd] through the given engine.
func ExpandComponent(engine *recurset.Engine, comp *eical.Component, rangeStart, rangeEnd time.Time) ([]recurset.Occurrence, error) {
	start, end, ok := ComponentTimes(comp)
	if !ok {
		return nil, nil
	}
	rec := ExtractRecurrence(comp)

	occurrences, err := engine.ExpandInRange(start, end, rec, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	if rec.RecurrenceID != nil {
		for i := range occurrences {
			occurrences[i].IsException = true
			occurrences[i].RecurrenceID = rec.RecurrenceID
		}
	}
	return occurrences, nil
}

// parseDateList parses a comma-separated RDATE/EXDATE/RECURRENCE-ID value.
// Entries marked VALUE=DATE (or parseable only as dates) are stored as
// midnight UTC, which downstream exclusion matching treats as date-only.
func parseDateList(value string, params eical.Params) []time.Time {
	dateOnly := false
	if values := params["VALUE"]; len(values) > 0 && strings.EqualFold(values[0], "DATE") {
		dateOnly = true
	}

	var out []time.Time
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if t, ok := parseDateTimeValue(field, dateOnly); ok {
			out = append(out, t)
		}
	}
	return out
}

func parseDateTimeValue(s string, dateOnly bool) (time.Time, bool) {
	if !dateOnly {
		if t, err := time.Parse("20060102T150405Z", s); err == nil {
			return t, true
		}
		if t, err := time.Parse("20060102T150405", s); err == nil {
			return t.UTC(), true
		}
	}
	if t, err := time.Parse("20060102", s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
