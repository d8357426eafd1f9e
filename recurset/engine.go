package recurset

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Engine provides range-query convenience over recurrence sets: fast
// existence checks and bounded expansion, with an optional result cache.
type Engine struct {
	cache  *expansionCache
	config EngineConfig
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine and its cache.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine with the default configuration.
func NewEngine(opts ...Option) *Engine {
	return NewEngineWithConfig(DefaultEngineConfig, opts...)
}

// NewEngineWithConfig creates an engine with a custom configuration.
func NewEngineWithConfig(config EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		config: config,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if config.CacheEnabled {
		e.cache = newExpansionCache(config.CacheConfig, e.logger)
	}
	return e
}

// Close releases the engine's background resources (the cache cleanup
// goroutine). The engine must not be used afterwards.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.stop()
	}
}

// HasOccurrenceInRange reports whether the recurring object with the
// given master start/end has at least one occurrence overlapping
// [rangeStart, rangeEnd]. The master event itself counts unless excluded.
// An invalid RRULE is reported as an error even when the master event
// alone would answer the question.
func (e *Engine) HasOccurrenceInRange(masterStart, masterEnd time.Time, rec Recurrence, rangeStart, rangeEnd time.Time) (bool, error) {
	if rec.RRule != "" {
		if err := NewSet().AddRuleString(masterStart, rec.RRule); err != nil {
			return false, fmt.Errorf("recurset: checking rule occurrences: %w", err)
		}
	}

	// Fast path: the master occurrence. Overlap means start <= rangeEnd
	// and end >= rangeStart.
	if !masterStart.After(rangeEnd) && !masterEnd.Before(rangeStart) && !isExcluded(masterStart, rec.ExDates) {
		return true, nil
	}

	if rec.RRule != "" {
		ok, err := e.hasRuleOccurrenceInRange(masterStart, rec, rangeStart, rangeEnd)
		if err != nil {
			return false, fmt.Errorf("recurset: checking rule occurrences: %w", err)
		}
		if ok {
			return true, nil
		}
	}

	duration := masterEnd.Sub(masterStart)
	for _, rdate := range rec.RDates {
		rdateEnd := rdate.Add(duration)
		if !rdate.After(rangeEnd) && !rdateEnd.Before(rangeStart) && !isExcluded(rdate, rec.ExDates) {
			return true, nil
		}
	}

	return false, nil
}

// hasRuleOccurrenceInRange expands just far enough to answer the
// existence question. Large ranges are probed with a limited window
// first, then widened with a bounded occurrence budget.
func (e *Engine) hasRuleOccurrenceInRange(masterStart time.Time, rec Recurrence, rangeStart, rangeEnd time.Time) (bool, error) {
	limitedEnd := rangeEnd
	if rangeEnd.Sub(rangeStart) > e.config.LargeRangeThreshold {
		limitedEnd = rangeStart.Add(e.config.LargeRangeLimit)
	}

	occurrences, err := e.expandRule(masterStart, rec, rangeStart, limitedEnd)
	if err != nil {
		return false, err
	}
	for _, occ := range occurrences {
		if !isExcluded(occ, rec.ExDates) {
			return true, nil
		}
	}

	if limitedEnd.Before(rangeEnd) {
		occurrences, err = e.expandRule(masterStart, rec, rangeStart, rangeEnd)
		if err != nil {
			return false, err
		}
		limit := len(occurrences)
		if limit > e.config.MaxExpansionOccurrences {
			limit = e.config.MaxExpansionOccurrences
		}
		for _, occ := range occurrences[:limit] {
			if !isExcluded(occ, rec.ExDates) {
				return true, nil
			}
		}
	}

	return false, nil
}

// ExpandInRange expands every occurrence of the recurring object that
// overlaps [rangeStart, rangeEnd], exceptions excluded, ordered
// ascending.
func (e *Engine) ExpandInRange(masterStart, masterEnd time.Time, rec Recurrence, rangeStart, rangeEnd time.Time) ([]Occurrence, error) {
	duration := masterEnd.Sub(masterStart)

	var starts []time.Time
	if rec.RRule != "" {
		expanded, err := e.expandRule(masterStart, rec, rangeStart.Add(-duration), rangeEnd)
		if err != nil {
			return nil, fmt.Errorf("recurset: expanding rule: %w", err)
		}
		starts = expanded
	} else if !masterStart.After(rangeEnd) && !masterEnd.Before(rangeStart) && !isExcluded(masterStart, rec.ExDates) {
		starts = []time.Time{masterStart}
	}

	set := NewSet()
	for _, ex := range rec.ExDates {
		set.AddExDate(ex)
	}
	for _, rdate := range rec.RDates {
		set.AddRDate(rdate)
	}
	for _, s := range starts {
		set.AddRDate(s)
	}

	var out []Occurrence
	for _, start := range set.Between(rangeStart.Add(-duration), rangeEnd, true) {
		end := start.Add(duration)
		if end.Before(rangeStart) {
			continue
		}
		out = append(out, Occurrence{Start: start, End: end})
	}
	return out, nil
}

// expandRule expands the RRULE occurrences within [rangeStart, rangeEnd],
// consulting the cache when enabled. Exclusions are not applied here; the
// caller layers them.
func (e *Engine) expandRule(masterStart time.Time, rec Recurrence, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	if e.cache != nil {
		if cached, ok := e.cache.get("expand", masterStart, rec, rangeStart, rangeEnd); ok {
			return cached.([]time.Time), nil
		}
	}

	set := NewSet()
	if err := set.AddRuleString(masterStart, rec.RRule); err != nil {
		return nil, err
	}
	occurrences := set.Between(rangeStart, rangeEnd, true)

	if e.cache != nil {
		e.cache.put("expand", masterStart, rec, rangeStart, rangeEnd, occurrences)
	}
	return occurrences, nil
}
