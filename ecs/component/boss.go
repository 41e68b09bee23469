package component

import (
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/pattern"
)

// Boss carries the pattern machine and the parameters for what it spawns.
type Boss struct {
	Name           string
	Machine        *pattern.Machine
	MoveSpeed      float64
	Damage         int
	BulletDamage   int
	BulletSpeed    float64
	BulletLifetime float64
	MinionPrefab   string
	MinionPoints   []common.Vec2
	NextPoint      int
}

var BossComponent = NewComponent[Boss]()
