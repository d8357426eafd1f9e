// Package recurset merges the occurrence streams of a recurring calendar
// object: any number of recurrence rules, explicit RDATEs, minus EXDATEs.
// The Engine type adds cached range queries on top of the raw Set.
package recurset

import (
	"time"
)

// Recurrence carries the recurrence-related pieces of a calendar object:
// the rule text, explicit additional instances, excluded instances, and
// the override marker for exception instances.
type Recurrence struct {
	RRule        string      // RRULE text without the "RRULE:" prefix
	RDates       []time.Time // additional explicit occurrence starts
	ExDates      []time.Time // excluded occurrence starts
	RecurrenceID *time.Time  // for exception instances: the occurrence being overridden
}

// Occurrence is a single expanded occurrence of a recurring object.
type Occurrence struct {
	Start        time.Time
	End          time.Time
	IsException  bool
	RecurrenceID *time.Time
}

// ExpansionOptions bounds an expansion of a set without COUNT or UNTIL.
// Set.All reads MaxOccurrences from DefaultExpansionOptions; MaxTimeSpan
// is not consulted by any expansion in this package.
type ExpansionOptions struct {
	MaxOccurrences int           // 0 means the package default
	MaxTimeSpan    time.Duration // 0 means unlimited
}

// DefaultExpansionOptions keeps Set.All on unbounded rules from expanding
// forever through its MaxOccurrences limit.
var DefaultExpansionOptions = ExpansionOptions{
	MaxOccurrences: 1000,
	MaxTimeSpan:    2 * 365 * 24 * time.Hour,
}
