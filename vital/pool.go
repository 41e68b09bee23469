// Package vital tracks the bounded resources an actor spends and recovers:
// health, energy and lives. Every mutation clamps to [0, max] and notifies
// observers in registration order.
package vital

import "errors"

var ErrInsufficientResource = errors.New("vital: insufficient resource")

type Number interface {
	~int | ~float64
}

// Pool is a clamped {current, max} pair. A terminal pool latches once it
// hits zero and ignores every later delta until re-initialized.
type Pool[T Number] struct {
	current  T
	max      T
	terminal bool
	depleted bool
	full     bool

	onChanged  []func(current, max T)
	onDepleted []func()
	onFull     []func()
}

// Initialize resets the pool to max and clears the depleted latch.
func (p *Pool[T]) Initialize(max T) {
	p.reset(max, max)
}

// Restore sets an explicit value, clamped to [0, max].
func (p *Pool[T]) Restore(current, max T) {
	p.reset(current, max)
}

func (p *Pool[T]) reset(current, max T) {
	if p == nil {
		return
	}
	if max < 0 {
		max = 0
	}
	p.max = max
	p.current = clamp(current, 0, max)
	p.depleted = false
	p.full = p.max > 0 && p.current == p.max
	p.emitChanged()
}

// ApplyDelta adds amount (negative for damage or drain) and returns the
// change that actually landed after clamping. Changed observers hear about
// every call, including one that clamps to no change. A depleted terminal
// pool ignores deltas and stays silent.
func (p *Pool[T]) ApplyDelta(amount T) T {
	if p == nil || p.depleted {
		return 0
	}
	next := clamp(p.current+amount, 0, p.max)
	applied := next - p.current
	if applied == 0 {
		p.emitChanged()
		return 0
	}
	p.current = next
	p.settle()
	return applied
}

// TryConsume spends amount only if the pool holds at least that much.
func (p *Pool[T]) TryConsume(amount T) error {
	if p == nil || p.depleted || amount < 0 || p.current < amount {
		return ErrInsufficientResource
	}
	if amount == 0 {
		return nil
	}
	p.current -= amount
	p.settle()
	return nil
}

func (p *Pool[T]) settle() {
	p.emitChanged()

	if p.current < p.max {
		p.full = false
	} else if !p.full {
		p.full = true
		for _, fn := range p.onFull {
			fn()
		}
	}

	if p.terminal && p.current == 0 && !p.depleted {
		p.depleted = true
		for _, fn := range p.onDepleted {
			fn()
		}
	}
}

func (p *Pool[T]) emitChanged() {
	for _, fn := range p.onChanged {
		fn(p.current, p.max)
	}
}

func (p *Pool[T]) Current() T {
	if p == nil {
		return 0
	}
	return p.current
}

func (p *Pool[T]) Max() T {
	if p == nil {
		return 0
	}
	return p.max
}

// Fraction is current/max in [0, 1]; an empty pool reports 0.
func (p *Pool[T]) Fraction() float64 {
	if p == nil || p.max == 0 {
		return 0
	}
	return float64(p.current) / float64(p.max)
}

func (p *Pool[T]) Depleted() bool {
	return p != nil && p.depleted
}

func (p *Pool[T]) Full() bool {
	return p != nil && p.max > 0 && p.current == p.max
}

func (p *Pool[T]) OnChanged(fn func(current, max T)) {
	if p == nil || fn == nil {
		return
	}
	p.onChanged = append(p.onChanged, fn)
}

// OnDepleted fires at most once per initialization of a terminal pool.
func (p *Pool[T]) OnDepleted(fn func()) {
	if p == nil || fn == nil {
		return
	}
	p.onDepleted = append(p.onDepleted, fn)
}

// OnFull fires on the mutation that first brings the pool to max. It is
// re-armed whenever the pool drops below max.
func (p *Pool[T]) OnFull(fn func()) {
	if p == nil || fn == nil {
		return
	}
	p.onFull = append(p.onFull, fn)
}

func clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Health is an integer pool whose depletion is terminal.
type Health struct {
	Pool[int]
}

func NewHealth(max int) *Health {
	h := &Health{}
	h.terminal = true
	h.Initialize(max)
	return h
}

// Energy is a fractional pool that starts empty and regenerates.
type Energy struct {
	Pool[float64]
}

func NewEnergy(max float64) *Energy {
	e := &Energy{}
	e.Initialize(max)
	return e
}

// Initialize sets the cap and empties the pool.
func (e *Energy) Initialize(max float64) {
	e.reset(0, max)
}

// Regenerate adds rate*dt. A full pool is left alone.
func (e *Energy) Regenerate(rate, dt float64) float64 {
	if e == nil || rate <= 0 || dt <= 0 || e.Full() {
		return 0
	}
	return e.ApplyDelta(rate * dt)
}
