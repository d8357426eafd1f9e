package recur

// byTimeStage covers BYHOUR, BYMINUTE and BYSECOND, which are structurally
// identical: expansion is the cross product of the upstream candidates
// with the value list, filtering is plain membership. A time field never
// influences the date fields, so no re-derivation is needed.
type byTimeUnit int

const (
	unitHour byTimeUnit = iota
	unitMinute
	unitSecond
)

type byTimeStage struct {
	unit   byTimeUnit
	values []int
}

func (s *byTimeStage) expand(out *intervalSet, seed instance) {
	for _, v := range s.values {
		inst := seed
		switch s.unit {
		case unitHour:
			inst.hour = v
		case unitMinute:
			inst.minute = v
		case unitSecond:
			// A leap second is only ever matched, never synthesized: 60
			// passes through when the seed already sits on one.
			if v == 60 && seed.second != 60 {
				continue
			}
			inst.second = v
		}
		out.add(inst)
	}
}

func (s *byTimeStage) pass(inst instance) bool {
	switch s.unit {
	case unitHour:
		return containsInt(s.values, inst.hour)
	case unitMinute:
		return containsInt(s.values, inst.minute)
	default:
		return containsInt(s.values, inst.second)
	}
}
