package component

import "github.com/milk9111/skyraid/combat"

// Defense lets a defender reshape incoming damage.
type Defense struct {
	Modifier combat.Modifier
}

var DefenseComponent = NewComponent[Defense]()
