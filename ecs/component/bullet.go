package component

type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

type Bullet struct {
	Faction Faction
	Damage  int
	Pierce  bool
	// Hits remembers pierced targets so one bullet hits each actor once.
	Hits map[uint64]struct{}
}

var BulletComponent = NewComponent[Bullet]()
