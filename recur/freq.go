package recur

// freqIterator is the source stage of the pipeline: it produces one seed
// instance per outer interval, starting at the iterator's anchor instant
// and advancing by the rule's interval in frequency units.
//
// Month and year advancement keep the raw day-of-month even when it
// overflows the target month (January 31 plus one month stays day 31); the
// derived fields are computed from the clamped day and the sanity filter
// drops the instance if no later stage replaces the day.
type freqIterator struct {
	cal      calendar
	freq     Freq
	interval int
	upcoming instance
}

func newFreqIterator(r *Rule, cal calendar, start instance) *freqIterator {
	return &freqIterator{
		cal:      cal,
		freq:     r.Freq,
		interval: r.interval(),
		upcoming: start,
	}
}

// nextSeed returns the seed of the next interval and advances.
func (f *freqIterator) nextSeed() instance {
	seed := f.upcoming
	f.upcoming = f.advanced(f.upcoming)
	return seed
}

// peekSeed returns the seed n intervals ahead without advancing. n=0 is
// the upcoming seed.
func (f *freqIterator) peekSeed(n int) instance {
	seed := f.upcoming
	for ; n > 0; n-- {
		seed = f.advanced(seed)
	}
	return seed
}

// skipTo advances whole intervals while the interval two seeds ahead still
// begins at or before floor. The one-interval slack keeps candidates that
// an interval emits beyond its own seed (week overlap across a boundary)
// reachable.
func (f *freqIterator) skipTo(floor int64) {
	for f.peekSeed(2).key() <= floor {
		f.upcoming = f.advanced(f.upcoming)
	}
}

func (f *freqIterator) advanced(i instance) instance {
	n := f.interval
	switch f.freq {
	case Yearly:
		i.year += n
		f.cal.rederive(&i)
	case Monthly:
		m := i.month + n
		i.year += m / 12
		i.month = m % 12
		f.cal.rederive(&i)
	case Weekly:
		f.cal.addDays(&i, 7*n)
	case Daily:
		f.cal.addDays(&i, n)
	case Hourly:
		h := i.hour + n
		i.hour = h % 24
		if days := h / 24; days > 0 {
			f.cal.addDays(&i, days)
		}
	case Minutely:
		m := i.minute + n
		i.minute = m % 60
		h := i.hour + m/60
		i.hour = h % 24
		if days := h / 24; days > 0 {
			f.cal.addDays(&i, days)
		}
	case Secondly:
		s := i.second + n
		i.second = s % 60
		m := i.minute + s/60
		i.minute = m % 60
		h := i.hour + m/60
		i.hour = h % 24
		if days := h / 24; days > 0 {
			f.cal.addDays(&i, days)
		}
	}
	return i
}
