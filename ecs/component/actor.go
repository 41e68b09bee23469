package component

// LifeState is where an actor is in Active -> Dying -> Removed.
type LifeState int

const (
	Active LifeState = iota
	Dying
	Removed
)

func (s LifeState) String() string {
	switch s {
	case Active:
		return "active"
	case Dying:
		return "dying"
	case Removed:
		return "removed"
	}
	return "unknown"
}

type ActorRole int

const (
	RolePlayer ActorRole = iota
	RoleEnemy
	RoleBoss
)

// DeathCause records why an actor left Active.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseKilled
	// CauseEscaped actors left the playfield and earn no credit.
	CauseEscaped
	// CauseRammed actors died by colliding with the player; they still
	// count as kills.
	CauseRammed
)

// Actor is the lifecycle record every enemy and boss carries.
type Actor struct {
	Role       ActorRole
	State      LifeState
	Cause      DeathCause
	ScoreValue int
}

var ActorComponent = NewComponent[Actor]()
