package component

// CollisionTag identifies what a shape represents in contact events.
type CollisionTag int

const (
	TagNone CollisionTag = iota
	TagPlayer
	TagEnemy
	TagBoss
	TagPlayerBullet
	TagEnemyBullet
	TagPickup
	TagPortal
)

func (t CollisionTag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagEnemy:
		return "enemy"
	case TagBoss:
		return "boss"
	case TagPlayerBullet:
		return "player_bullet"
	case TagEnemyBullet:
		return "enemy_bullet"
	case TagPickup:
		return "pickup"
	case TagPortal:
		return "portal"
	}
	return "none"
}

// Collider is a circular trigger volume.
type Collider struct {
	Radius float64
	Tag    CollisionTag
}

var ColliderComponent = NewComponent[Collider]()
