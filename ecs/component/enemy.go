package component

// Enemy is a spawned hostile. Damage is what it deals by ramming the player.
type Enemy struct {
	Prefab string
	Damage int
	Minion bool
}

var EnemyComponent = NewComponent[Enemy]()

// Explosive actors damage everything around them when they die.
type Explosive struct {
	Radius float64
	Damage int
}

var ExplosiveComponent = NewComponent[Explosive]()
