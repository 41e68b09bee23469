package component

import "github.com/milk9111/skyraid/vital"

var HealthComponent = NewComponent[vital.Health]()

var EnergyComponent = NewComponent[vital.Energy]()

var LivesComponent = NewComponent[vital.Lives]()

// Regen refills an energy pool at Rate per second.
type Regen struct {
	Rate float64
}

var RegenComponent = NewComponent[Regen]()
