package domain

import (
	"math"
	"sort"
)

// Simulator answers point-in-time questions about a charge pool given the consumptions recorded so far.
//
// A Simulator is not safe for concurrent use. Callers that share one across goroutines must
// serialize Use, Reset and the query methods themselves.
type Simulator struct {
	config PoolConfig
	events []ConsumptionEvent
}

type chargeDelta struct {
	at    float64
	delta int
}

func NewSimulator(config PoolConfig) *Simulator {
	return &Simulator{config: config}
}

func (s *Simulator) Config() PoolConfig {
	return s.config
}

// Events returns a copy of the recorded consumptions in time order.
func (s *Simulator) Events() []ConsumptionEvent {
	events := make([]ConsumptionEvent, len(s.events))
	copy(events, s.events)
	return events
}

func (s *Simulator) Reset() {
	s.events = nil
}

// ChargesAt replays every consumption at or before t, together with the regenerations that have
// completed by t, starting from a full pool. The running total is clamped after every step.
func (s *Simulator) ChargesAt(t float64) int {
	charges := s.config.Capacity
	if len(s.events) == 0 {
		return charges
	}

	deltas := make([]chargeDelta, 0, 2*len(s.events))
	for _, event := range s.events {
		if event.Time > t {
			continue
		}
		deltas = append(deltas, chargeDelta{at: event.Time, delta: -1})
		if regenAt := event.Time + s.config.RegenInterval; regenAt <= t {
			deltas = append(deltas, chargeDelta{at: regenAt, delta: 1})
		}
	}

	// At the same instant a spend applies before a regeneration.
	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].at != deltas[j].at {
			return deltas[i].at < deltas[j].at
		}
		return deltas[i].delta < deltas[j].delta
	})

	for _, d := range deltas {
		charges = clampInt(charges+d.delta, 0, s.config.Capacity)
	}

	return charges
}

// NextRegeneration returns the soonest regeneration still pending at t. It does not look at the
// pool level; callers hide the progress when ChargesAt(t) is already at capacity.
func (s *Simulator) NextRegeneration(t float64) (Regeneration, bool) {
	next := -1
	soonest := math.Inf(1)
	for i, event := range s.events {
		regenAt := event.Time + s.config.RegenInterval
		if regenAt > t && regenAt < soonest {
			soonest = regenAt
			next = i
		}
	}

	if next < 0 {
		return Regeneration{}, false
	}

	event := s.events[next]
	elapsed := t - event.Time

	return Regeneration{
		Label:     event.Label,
		Progress:  clampFloat(elapsed/s.config.RegenInterval, 0, 1),
		Remaining: soonest - t,
	}, true
}

// Use spends a charge at baseTime+offset (never earlier than 0) if one is available there.
// It reports whether the consumption was recorded.
func (s *Simulator) Use(baseTime float64, label string, offset float64) bool {
	actual := ActualTime(baseTime, offset)
	if s.ChargesAt(actual) <= 0 {
		return false
	}

	s.events = append(s.events, ConsumptionEvent{Time: actual, Label: label})
	s.sortEvents()

	return true
}

// Restore records consumptions that were accepted earlier without checking availability again.
// A history built with retroactive uses is not always reachable by replaying it in time order.
func (s *Simulator) Restore(events []ConsumptionEvent) {
	for _, event := range events {
		s.events = append(s.events, ConsumptionEvent{Time: ActualTime(event.Time, 0), Label: event.Label})
	}
	s.sortEvents()
}

func (s *Simulator) sortEvents() {
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].Time < s.events[j].Time
	})
}

// ActualTime is the instant a use lands on: baseTime+offset, never earlier than 0.
func ActualTime(baseTime, offset float64) float64 {
	actual := baseTime + offset
	if math.IsNaN(actual) || actual < 0 {
		return 0
	}
	return actual
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
