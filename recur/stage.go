package recur

// The BY parts of a rule form a linear pipeline between the frequency
// source and the sink. Each part acts in exactly one of two roles
// depending on the outer frequency: as an expander it derives additional
// candidates from every upstream instance, as a filter it drops
// non-matching instances. Every stage implements both operations; the
// stage vector records which one is live, so the pipeline is driven by
// data rather than by a dispatch chain.

type stageKind int

const (
	stageExpand stageKind = iota
	stageFilter
)

// stageOp is one BY part. expand derives candidates from seed into out;
// pass reports whether inst matches the part's value list.
type stageOp interface {
	expand(out *intervalSet, seed instance)
	pass(inst instance) bool
}

type stage struct {
	kind stageKind
	op   stageOp
}

// scope is the effective granularity a BY*DAY part operates in. It can be
// narrower than the outer frequency: YEARLY with BYMONTH narrows to
// MONTHLY, and a BYWEEKNO part narrows everything after it to weeks.
type scope int

const (
	scopeYearly scope = iota
	scopeMonthly
	scopeWeekly
	scopeWeeklyAndMonthly
)

func ruleScope(r *Rule) scope {
	weekly := r.Freq == Weekly || len(r.ByWeekNo) > 0
	monthly := r.Freq == Monthly || (r.Freq == Yearly && len(r.ByMonth) > 0)
	switch {
	case weekly && monthly:
		return scopeWeeklyAndMonthly
	case weekly:
		return scopeWeekly
	case monthly:
		return scopeMonthly
	default:
		return scopeYearly
	}
}

// buildStages assembles the stage vector for the rule, classifying each
// present BY part as expander or filter against the outer frequency.
// BYWEEKNO expanding under MONTHLY and BYYEARDAY expanding under
// MONTHLY/WEEKLY are the RFC 2445 tolerance rows; strict RFC 5545 only
// allows them under YEARLY.
func buildStages(r *Rule, cal calendar) []stage {
	sc := ruleScope(r)
	monthlyScope := r.Freq == Monthly || (r.Freq == Yearly && len(r.ByMonth) > 0)
	weekScoped := len(r.ByWeekNo) > 0

	var stages []stage
	addStage := func(expands bool, op stageOp) {
		kind := stageFilter
		if expands {
			kind = stageExpand
		}
		stages = append(stages, stage{kind: kind, op: op})
	}

	if len(r.ByMonth) > 0 {
		addStage(r.Freq == Yearly, &byMonthStage{cal: cal, months: r.ByMonth})
	}
	if len(r.ByWeekNo) > 0 {
		addStage(r.Freq >= Monthly, &byWeekNoStage{
			cal:          cal,
			weeks:        r.ByWeekNo,
			monthlyScope: monthlyScope,
			allowOverlap: monthlyScope && (len(r.ByDay) > 0 || len(r.ByMonthDay) > 0 || len(r.ByYearDay) > 0),
		})
	}
	if len(r.ByYearDay) > 0 {
		addStage(r.Freq >= Weekly, &byYearDayStage{cal: cal, days: r.ByYearDay, scope: sc})
	}
	if len(r.ByMonthDay) > 0 {
		addStage(r.Freq >= Monthly, &byMonthDayStage{cal: cal, days: r.ByMonthDay, weekScoped: weekScoped})
	}
	if len(r.ByDay) > 0 {
		// BYDAY limits instead of expanding when a BYMONTHDAY or
		// BYYEARDAY part already pinned the days (FREQ=MONTHLY;BYDAY=FR;
		// BYMONTHDAY=13 selects Fridays the 13th, not every Friday).
		// WEEKLY stays an expander; the combination is not legal there.
		expands := r.Freq == Weekly ||
			(r.Freq >= Weekly && len(r.ByMonthDay) == 0 && len(r.ByYearDay) == 0)
		addStage(expands, &byDayStage{
			cal:      cal,
			days:     r.ByDay,
			scope:    sc,
			allowPos: sc == scopeMonthly || sc == scopeYearly,
		})
	}
	if len(r.ByHour) > 0 {
		addStage(r.Freq >= Daily, &byTimeStage{unit: unitHour, values: r.ByHour})
	}
	if len(r.ByMinute) > 0 {
		addStage(r.Freq >= Hourly, &byTimeStage{unit: unitMinute, values: r.ByMinute})
	}
	if len(r.BySecond) > 0 {
		addStage(r.Freq >= Minutely, &byTimeStage{unit: unitSecond, values: r.BySecond})
	}
	return stages
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
