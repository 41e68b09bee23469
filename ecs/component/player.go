package component

// Player holds ship stats and the gun cooldown.
type Player struct {
	Ship           string
	Speed          float64
	FirePeriod     float64
	FireCooldown   float64
	BulletDamage   int
	BulletSpeed    float64
	BulletLifetime float64
	Pierce         bool
}

var PlayerComponent = NewComponent[Player]()
