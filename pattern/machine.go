// Package pattern drives a boss: a looping movement timeline plus
// independent fire and minion timers that speed up once when the boss is
// badly hurt.
package pattern

import (
	"log"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/prefabs"
)

const (
	defaultEnrageThreshold  = 0.3
	defaultEnrageMultiplier = 0.7
)

// Actions is what a boss should do after a tick.
type Actions struct {
	Target  common.Vec2
	Shots   int
	Minions int
}

type Machine struct {
	segments    []segment
	index       int
	elapsed     float64
	movingRight bool
	cycles      int
	bounds      common.Vec2
	hold        common.Vec2

	fire       Timer
	minion     Timer
	perBurst   int
	threshold  float64
	multiplier float64
	enraged    bool
	stopped    bool
}

// NewMachine builds a machine from the boss spec. hold is the target used
// when the timeline is empty.
func NewMachine(spec prefabs.BossSpec, hold common.Vec2) *Machine {
	m := &Machine{
		movingRight: true,
		bounds:      spec.Bounds,
		hold:        hold,
		fire:        NewTimer(spec.Fire.Period),
		minion:      NewTimer(spec.Minions.Period),
		perBurst:    spec.Minions.PerWave,
		threshold:   spec.Enrage.Threshold,
		multiplier:  spec.Enrage.Multiplier,
	}
	if m.threshold <= 0 {
		m.threshold = defaultEnrageThreshold
	}
	if m.multiplier <= 0 {
		m.multiplier = defaultEnrageMultiplier
	}
	if n := len(spec.Minions.Points); m.perBurst > n {
		m.perBurst = n
	}
	for _, segSpec := range spec.Pattern {
		seg, ok := newSegment(segSpec)
		if !ok {
			log.Printf("pattern: boss %s: unknown segment kind %q skipped", spec.Name, segSpec.Kind)
			continue
		}
		m.segments = append(m.segments, seg)
	}
	return m
}

// Update advances the timeline and both timers by dt.
func (m *Machine) Update(dt float64) Actions {
	if m == nil || m.stopped {
		return Actions{}
	}
	if dt > 0 {
		m.advance(dt)
	}
	out := Actions{Target: m.Target(), Shots: m.fire.Tick(dt)}
	if m.perBurst > 0 {
		out.Minions = m.minion.Tick(dt) * m.perBurst
	}
	return out
}

func (m *Machine) advance(dt float64) {
	if len(m.segments) == 0 {
		return
	}
	for dt > 0 {
		seg := m.segments[m.index]
		left := seg.duration - m.elapsed
		if dt < left {
			m.elapsed += dt
			return
		}
		dt -= left
		m.elapsed = 0
		m.index++
		if m.index == len(m.segments) {
			m.index = 0
			m.cycles++
			m.movingRight = !m.movingRight
		}
	}
}

// Target is where the boss is currently heading.
func (m *Machine) Target() common.Vec2 {
	if m == nil {
		return common.Vec2{}
	}
	if len(m.segments) == 0 {
		return m.hold
	}
	return m.segments[m.index].target(m.elapsed, m.bounds, m.movingRight)
}

// ObserveHealth escalates the timers the first time fraction drops below
// the enrage threshold. It reports whether this call escalated.
func (m *Machine) ObserveHealth(fraction float64) bool {
	if m == nil || m.stopped || m.enraged || fraction >= m.threshold {
		return false
	}
	m.enraged = true
	m.fire.Scale(m.multiplier)
	m.minion.Scale(m.multiplier)
	return true
}

// Stop halts the machine; later updates do nothing.
func (m *Machine) Stop() {
	if m == nil {
		return
	}
	m.stopped = true
}

func (m *Machine) Stopped() bool { return m != nil && m.stopped }

func (m *Machine) Enraged() bool { return m != nil && m.enraged }

// SegmentIndex is the position in the timeline.
func (m *Machine) SegmentIndex() int { return m.index }

// Elapsed is the time spent in the current segment.
func (m *Machine) Elapsed() float64 { return m.elapsed }

func (m *Machine) MovingRight() bool { return m.movingRight }

// Cycles counts completed passes over the whole timeline.
func (m *Machine) Cycles() int { return m.cycles }

func (m *Machine) FirePeriod() float64 { return m.fire.Period }

func (m *Machine) MinionPeriod() float64 { return m.minion.Period }
