// Package economy keeps score, high score, and the energy rewards granted
// for landing hits and kills.
package economy

import "github.com/milk9111/skyraid/vital"

type Rewards struct {
	EnergyPerHit  float64
	EnergyPerKill float64
}

type Economy struct {
	score     int
	highScore int
	rewards   Rewards
	energy    *vital.Energy

	onScore []func(score, highScore int)
}

func New(rewards Rewards) *Economy {
	return &Economy{rewards: rewards}
}

// BindEnergy points rewards at the player's energy pool. A nil pool turns
// energy rewards off.
func (e *Economy) BindEnergy(pool *vital.Energy) {
	if e == nil {
		return
	}
	e.energy = pool
}

// LoadHighScore seeds the high score from a saved record. Lower values are
// ignored so the high score never decreases.
func (e *Economy) LoadHighScore(v int) {
	if e == nil || v <= e.highScore {
		return
	}
	e.highScore = v
	e.emit()
}

// Restore puts back a carried-over score.
func (e *Economy) Restore(score int) {
	if e == nil {
		return
	}
	e.score = max(0, score)
	if e.score > e.highScore {
		e.highScore = e.score
	}
	e.emit()
}

func (e *Economy) AddScore(points int) {
	if e == nil || points <= 0 {
		return
	}
	e.score += points
	if e.score > e.highScore {
		e.highScore = e.score
	}
	e.emit()
}

// CreditHit rewards the player for damaging an enemy.
func (e *Economy) CreditHit() {
	if e == nil || e.energy == nil {
		return
	}
	e.energy.ApplyDelta(e.rewards.EnergyPerHit)
}

// CreditKill awards score and kill energy.
func (e *Economy) CreditKill(scoreValue int) {
	if e == nil {
		return
	}
	e.AddScore(scoreValue)
	if e.energy != nil {
		e.energy.ApplyDelta(e.rewards.EnergyPerKill)
	}
}

// ResetScore starts a new run; the high score is kept.
func (e *Economy) ResetScore() {
	if e == nil {
		return
	}
	e.score = 0
	e.emit()
}

func (e *Economy) Score() int {
	if e == nil {
		return 0
	}
	return e.score
}

func (e *Economy) HighScore() int {
	if e == nil {
		return 0
	}
	return e.highScore
}

func (e *Economy) OnScoreChanged(fn func(score, highScore int)) {
	if e == nil || fn == nil {
		return
	}
	e.onScore = append(e.onScore, fn)
}

func (e *Economy) emit() {
	for _, fn := range e.onScore {
		fn(e.score, e.highScore)
	}
}
