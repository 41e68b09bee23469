package component

// SpecialAttack is the player's energy-fuelled laser.
type SpecialAttack struct {
	Cost     float64
	Duration float64
	Cooldown float64
	DPS      float64
	Width    float64

	Active       float64
	CooldownLeft float64
	// carry keeps fractional damage between ticks
	Carry float64
}

func (s *SpecialAttack) Firing() bool {
	return s != nil && s.Active > 0
}

var SpecialAttackComponent = NewComponent[SpecialAttack]()
