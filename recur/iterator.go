package recur

import (
	"fmt"
	"time"
)

// iterState is the terminal-behavior state of an iterator.
type iterState int

const (
	// stateActive keeps producing instances.
	stateActive iterState = iota
	// stateDrained means the rule ran out of valid instances at runtime
	// (a finite or unsatisfiable rule). Not an error.
	stateDrained
	// stateTerminated means UNTIL was exceeded or COUNT was reached. The
	// iterator never resumes.
	stateTerminated
)

// maxEmptyIntervals bounds how many consecutive empty interval sets the
// driver tolerates before declaring the rule drained, so that rules like
// BYMONTH=2;BYMONTHDAY=31 terminate instead of spinning forever.
const maxEmptyIntervals = 1000

// Iterator expands a single recurrence rule from an anchor instant into
// the ordered sequence of its occurrences. It is a pure computation: no
// I/O, no timers, no shared state. An Iterator must not be used from more
// than one goroutine, but distinct iterators are fully independent.
type Iterator struct {
	rule *Rule
	loc  *time.Location
	freq *freqIterator

	stages []stage
	setPos []int

	hasUntil bool
	untilKey int64
	count    int // 0 means unbounded

	buf    []instance
	bufIdx int

	// lastKey is the ordering guard: anything at or below it has already
	// been emitted (or skipped by FastForward) and is dropped.
	lastKey int64
	emitted int
	streak  int
	state   iterState

	peeked  time.Time
	hasPeek bool
}

// Iterator builds the expansion pipeline for the rule anchored at dtstart.
// The rule is validated first; range violations surface as
// ErrRuleUnsatisfiable and an unusable anchor as ErrInvalidSeed. Emitted
// instants carry dtstart's location.
func (r *Rule) Iterator(dtstart time.Time) (*Iterator, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if dtstart.IsZero() || dtstart.Year() < 1 || dtstart.Year() > 9999 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, dtstart)
	}

	cal := calendar{weekStart: r.weekStart()}
	start := instanceFromTime(cal, dtstart)
	it := &Iterator{
		rule:     r,
		loc:      dtstart.Location(),
		freq:     newFreqIterator(r, cal, start),
		stages:  buildStages(r, cal),
		setPos:  r.BySetPos,
		lastKey: start.key() - 1,
	}
	if u, ok := r.Until.Get(); ok {
		it.hasUntil = true
		it.untilKey = timeKey(u.In(it.loc))
	}
	if c, ok := r.Count.Get(); ok {
		it.count = c
	}
	return it, nil
}

// Next returns the next occurrence, or ok=false when the iterator has
// drained or terminated.
func (it *Iterator) Next() (time.Time, bool) {
	if it.hasPeek {
		it.hasPeek = false
		return it.peeked, true
	}
	return it.advance()
}

// Peek returns the next occurrence without consuming it.
func (it *Iterator) Peek() (time.Time, bool) {
	if !it.hasPeek {
		t, ok := it.advance()
		if !ok {
			return time.Time{}, false
		}
		it.peeked = t
		it.hasPeek = true
	}
	return it.peeked, true
}

// FastForward skips ahead so that the next occurrence is the first one at
// or after to. For rules bounded by COUNT the skipped occurrences still
// consume the budget, since COUNT counts rule instances, not deliveries.
// Unbounded and UNTIL-bounded rules skip whole frequency intervals without
// expanding them.
func (it *Iterator) FastForward(to time.Time) {
	if it.state != stateActive {
		return
	}
	if it.hasPeek {
		if !it.peeked.Before(to) {
			return
		}
		it.hasPeek = false
	}
	if it.count > 0 {
		for {
			t, ok := it.Peek()
			if !ok || !t.Before(to) {
				return
			}
			it.Next()
		}
	}
	floor := timeKey(to.In(it.loc))
	if floor-1 > it.lastKey {
		it.lastKey = floor - 1
	}
	if it.bufIdx >= len(it.buf) {
		it.freq.skipTo(floor)
	}
}

// advance pulls one instance through the sink, refilling the interval
// buffer from upstream as needed.
func (it *Iterator) advance() (time.Time, bool) {
	for it.state == stateActive {
		if it.bufIdx < len(it.buf) {
			inst := it.buf[it.bufIdx]
			it.bufIdx++
			k := inst.key()
			if k <= it.lastKey {
				// Already emitted or skipped past; FastForward moves the
				// guard while a buffer is in flight.
				continue
			}
			if it.hasUntil && k > it.untilKey {
				it.state = stateTerminated
				return time.Time{}, false
			}
			it.lastKey = k
			it.emitted++
			if it.count > 0 && it.emitted >= it.count {
				it.state = stateTerminated
				return inst.toTime(it.loc), true
			}
			return inst.toTime(it.loc), true
		}
		if !it.fillInterval() {
			it.streak++
			if it.streak >= maxEmptyIntervals {
				it.state = stateDrained
			}
		} else {
			it.streak = 0
		}
	}
	return time.Time{}, false
}

// fillInterval runs one outer interval through the whole stage vector,
// the positional selection, and the sanity filter. It reports whether any
// candidate survived.
func (it *Iterator) fillInterval() bool {
	set := &intervalSet{}
	set.add(it.freq.nextSeed())

	for _, st := range it.stages {
		if st.kind == stageExpand {
			out := &intervalSet{}
			for _, inst := range set.items {
				st.op.expand(out, inst)
			}
			set = out
		} else {
			set.retain(st.op.pass)
		}
	}

	set.sortAndDedup()
	items := set.items
	if len(it.setPos) > 0 {
		items = bySetPos(it.setPos, items)
	}

	// Sanity: drop invalid dates (clamped rollovers, week-overlap
	// spillover) and anything at or before the last emission, which also
	// enforces the not-before-start bound and cross-interval uniqueness.
	buf := make([]instance, 0, len(items))
	for _, inst := range items {
		if !inst.validDate() {
			continue
		}
		if inst.key() <= it.lastKey {
			continue
		}
		buf = append(buf, inst)
	}
	it.buf = buf
	it.bufIdx = 0
	return len(buf) > 0
}
