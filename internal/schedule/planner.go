// Package schedule spreads replacement commit timestamps across a trailing
// window so the rewritten history looks organically authored rather than
// machine-regular.
package schedule

import (
	"math/rand"
	"sort"
	"time"
)

// Policy controls the spread. The jitter distribution is configuration, not
// a fixed algorithm.
type Policy struct {
	// WindowDays is the length of the trailing window, ending now, that
	// raw timestamps are drawn from.
	WindowDays int
	// EveningBias is the probability that a weekday timestamp is moved
	// into the evening band.
	EveningBias float64
	// EveningStartHour and EveningEndHour bound the weekday evening band,
	// inclusive.
	EveningStartHour int
	EveningEndHour   int
	// WeekendShiftMinHours and WeekendShiftMaxHours bound the forward
	// shift applied to weekend timestamps, inclusive.
	WeekendShiftMinHours int
	WeekendShiftMaxHours int
}

// DefaultPolicy returns the standard spread: one year window, 60% weekday
// evening bias into 18:00-23:00, weekends shifted 12-23 hours later.
func DefaultPolicy() Policy {
	return Policy{
		WindowDays:           365,
		EveningBias:          0.6,
		EveningStartHour:     18,
		EveningEndHour:       23,
		WeekendShiftMinHours: 12,
		WeekendShiftMaxHours: 23,
	}
}

// normalized fills zero fields with defaults so a partially configured
// policy never produces a degenerate window or an inverted band.
func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.WindowDays <= 0 {
		p.WindowDays = def.WindowDays
	}
	if p.EveningBias < 0 || p.EveningBias > 1 {
		p.EveningBias = def.EveningBias
	}
	if p.EveningStartHour <= 0 || p.EveningStartHour > 23 {
		p.EveningStartHour = def.EveningStartHour
	}
	if p.EveningEndHour < p.EveningStartHour || p.EveningEndHour > 23 {
		p.EveningEndHour = def.EveningEndHour
		if p.EveningEndHour < p.EveningStartHour {
			p.EveningEndHour = p.EveningStartHour
		}
	}
	if p.WeekendShiftMinHours <= 0 {
		p.WeekendShiftMinHours = def.WeekendShiftMinHours
	}
	if p.WeekendShiftMaxHours < p.WeekendShiftMinHours {
		p.WeekendShiftMaxHours = p.WeekendShiftMinHours
	}
	return p
}

// Planner produces replacement timestamps. It is not safe for concurrent
// use; the pipeline is single threaded.
type Planner struct {
	policy Policy
	rng    *rand.Rand
	now    func() time.Time
}

// NewPlanner creates a planner with a time-seeded random source.
func NewPlanner(policy Policy) *Planner {
	return &Planner{
		policy: policy.normalized(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Plan returns exactly n timestamps sorted ascending. Sorting is what
// guarantees the rewritten history stays monotonic; the individual draws
// are independent.
func (p *Planner) Plan(n int) []time.Time {
	if n <= 0 {
		return nil
	}
	times := make([]time.Time, n)
	for i := range times {
		times[i] = p.draw()
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// draw picks one timestamp: uniform over the trailing window, then biased
// toward evenings on weekdays and shifted later on weekends.
func (p *Planner) draw() time.Time {
	window := time.Duration(p.policy.WindowDays) * 24 * time.Hour
	t := p.now().Add(-time.Duration(p.rng.Int63n(int64(window))))

	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		shift := p.policy.WeekendShiftMinHours + p.rng.Intn(p.policy.WeekendShiftMaxHours-p.policy.WeekendShiftMinHours+1)
		return t.Add(time.Duration(shift) * time.Hour)
	}

	if p.rng.Float64() < p.policy.EveningBias {
		hour := p.policy.EveningStartHour + p.rng.Intn(p.policy.EveningEndHour-p.policy.EveningStartHour+1)
		return time.Date(t.Year(), t.Month(), t.Day(), hour, t.Minute(), t.Second(), 0, t.Location())
	}
	return t
}
