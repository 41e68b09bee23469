package component

// Shooter fires fans of enemy bullets on a fixed period.
type Shooter struct {
	Period    float64
	Remaining float64
	Bullets   int
	Spread    float64
	Damage    int
	Speed     float64
	Lifetime  float64
	Aimed     bool
}

var ShooterComponent = NewComponent[Shooter]()
