package combat

import "github.com/milk9111/skyraid/vital"

// Modifier adjusts incoming damage before it reaches a defender's health.
// It belongs to the defender, never to the attacker.
type Modifier interface {
	Modify(damage int) int
}

// ReducedDamage divides incoming damage, never letting a hit drop below
// Minimum. The zero value halves with a floor of 1.
type ReducedDamage struct {
	Divisor int
	Minimum int
}

func (r ReducedDamage) Modify(damage int) int {
	div := r.Divisor
	if div <= 0 {
		div = 2
	}
	floor := r.Minimum
	if floor <= 0 {
		floor = 1
	}
	return max(floor, damage/div)
}

// Outcome reports what a single hit did.
type Outcome struct {
	Applied int
	Killed  bool
}

// Resolve applies damage to the defender after its modifier. Killed is true
// only for the hit that depleted the pool.
func Resolve(damage int, defender *vital.Health, mod Modifier) Outcome {
	if defender == nil || damage <= 0 || defender.Depleted() {
		return Outcome{}
	}
	if mod != nil {
		damage = mod.Modify(damage)
	}
	applied := -defender.ApplyDelta(-damage)
	return Outcome{Applied: applied, Killed: defender.Depleted()}
}
