/*
Package recur expands iCalendar recurrence rules (RFC 5545, with RFC 2445
tolerance) into their ordered sequence of occurrences.

# Basic Usage

Parse a rule and pull occurrences from an iterator anchored at DTSTART:

	rule, err := recur.ParseRule("FREQ=MONTHLY;BYDAY=1FR;COUNT=3")
	if err != nil {
		log.Fatal(err)
	}
	it, err := rule.Iterator(time.Date(1997, 9, 2, 9, 0, 0, 0, time.UTC))
	if err != nil {
		log.Fatal(err)
	}
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		fmt.Println(t)
	}

Rules can also be built programmatically; the Rule struct mirrors the RRULE
parts one to one.

# Expansion Model

A rule is evaluated as a pipeline: a frequency source seeds one candidate
per outer interval (a year for YEARLY, a month for MONTHLY, ...), each BY
part either expands the candidate set or filters it depending on the outer
frequency, BYSETPOS selects positions from the completed interval, and a
sanity sink drops invalid dates, candidates before the anchor, and
ordering regressions before UNTIL/COUNT bound the output.

Iterators without UNTIL or COUNT are unbounded; callers impose their own
limit. A rule whose BY parts can never be satisfied drains after a bounded
number of empty intervals instead of looping forever.

Iterators are not safe for concurrent use; distinct iterators share
nothing and may run in parallel.
*/
package recur
