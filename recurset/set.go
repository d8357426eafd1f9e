package recurset

import (
	"fmt"
	"sort"
	"time"

	"github.com/cyp0633/librecur/recur"
)

// Set multiplexes any number of rule iterators together with literal
// RDATEs, subtracts EXDATEs, and yields the merged, deduplicated,
// strictly ascending occurrence sequence.
//
// Like the rule iterators it wraps, a Set is a single-caller pull
// iterator; it is not safe for concurrent use.
type Set struct {
	iters    []*recur.Iterator
	rdates   []time.Time
	rdateIdx int
	sorted   bool

	exdates []time.Time

	last    time.Time
	hasLast bool
}

// NewSet returns an empty recurrence set.
func NewSet() *Set {
	return &Set{sorted: true}
}

// AddRule adds a rule iterator anchored at dtstart to the set.
func (s *Set) AddRule(dtstart time.Time, rule *recur.Rule) error {
	it, err := rule.Iterator(dtstart)
	if err != nil {
		return fmt.Errorf("recurset: adding rule %q: %w", rule.String(), err)
	}
	s.iters = append(s.iters, it)
	return nil
}

// AddRuleString parses RRULE text and adds it to the set.
func (s *Set) AddRuleString(dtstart time.Time, rrule string) error {
	rule, err := recur.ParseRule(rrule)
	if err != nil {
		return fmt.Errorf("recurset: adding rule %q: %w", rrule, err)
	}
	return s.AddRule(dtstart, rule)
}

// AddRDate adds an explicit occurrence.
func (s *Set) AddRDate(t time.Time) {
	s.rdates = append(s.rdates, t)
	s.sorted = false
}

// AddExDate excludes an occurrence. A date-only exclusion (midnight UTC)
// excludes every occurrence on that calendar date.
func (s *Set) AddExDate(t time.Time) {
	s.exdates = append(s.exdates, t)
}

// Next returns the next occurrence of the merged set.
func (s *Set) Next() (time.Time, bool) {
	for {
		src, next, ok := s.peekMin()
		if !ok {
			return time.Time{}, false
		}
		s.pop(src)
		if s.hasLast && !next.After(s.last) {
			continue // duplicate across sources
		}
		s.last = next
		s.hasLast = true
		if isExcluded(next, s.exdates) {
			continue
		}
		return next, true
	}
}

// Peek returns the next occurrence without consuming it.
func (s *Set) Peek() (time.Time, bool) {
	for {
		src, next, ok := s.peekMin()
		if !ok {
			return time.Time{}, false
		}
		if s.hasLast && !next.After(s.last) {
			s.pop(src)
			continue
		}
		if isExcluded(next, s.exdates) {
			s.pop(src)
			s.last = next
			s.hasLast = true
			continue
		}
		return next, true
	}
}

// FastForward skips ahead so that the next occurrence is the first at or
// after to.
func (s *Set) FastForward(to time.Time) {
	for _, it := range s.iters {
		it.FastForward(to)
	}
	s.ensureSorted()
	for s.rdateIdx < len(s.rdates) && s.rdates[s.rdateIdx].Before(to) {
		s.rdateIdx++
	}
	if !s.hasLast || s.last.Before(to) {
		// Anything strictly before to is now consumed.
		s.last = to.Add(-time.Second)
		s.hasLast = true
	}
}

// All expands up to limit occurrences; limit <= 0 applies the package
// default so that unbounded rules stay bounded.
func (s *Set) All(limit int) []time.Time {
	if limit <= 0 {
		limit = DefaultExpansionOptions.MaxOccurrences
	}
	var out []time.Time
	for len(out) < limit {
		next, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, next)
	}
	return out
}

// Between expands the occurrences within [start, end], or (start, end)
// when inclusive is false.
func (s *Set) Between(start, end time.Time, inclusive bool) []time.Time {
	s.FastForward(start)
	var out []time.Time
	for {
		next, ok := s.Next()
		if !ok {
			return out
		}
		if !inclusive && next.Equal(start) {
			continue
		}
		if next.After(end) || (!inclusive && next.Equal(end)) {
			return out
		}
		out = append(out, next)
	}
}

// peekMin finds the earliest pending occurrence across all sources. src
// is the iterator index, or -1 for the RDATE list.
func (s *Set) peekMin() (src int, min time.Time, ok bool) {
	s.ensureSorted()
	src = -2
	if s.rdateIdx < len(s.rdates) {
		src, min, ok = -1, s.rdates[s.rdateIdx], true
	}
	for i, it := range s.iters {
		next, itOK := it.Peek()
		if itOK && (!ok || next.Before(min)) {
			src, min, ok = i, next, true
		}
	}
	return src, min, ok
}

func (s *Set) pop(src int) {
	if src == -1 {
		s.rdateIdx++
		return
	}
	s.iters[src].Next()
}

func (s *Set) ensureSorted() {
	if s.sorted {
		return
	}
	pending := s.rdates[s.rdateIdx:]
	sort.Slice(pending, func(a, b int) bool { return pending[a].Before(pending[b]) })
	s.sorted = true
}

// isExcluded reports whether t is struck out by the exclusion list. An
// exclusion stored as midnight UTC counts as date-only and matches every
// occurrence on that date.
func isExcluded(t time.Time, exdates []time.Time) bool {
	for _, ex := range exdates {
		if t.Equal(ex) {
			return true
		}
		if ex.Hour() == 0 && ex.Minute() == 0 && ex.Second() == 0 && ex.Location() == time.UTC {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if day.Equal(ex) {
				return true
			}
		}
	}
	return false
}
