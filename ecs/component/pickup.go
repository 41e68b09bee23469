package component

// Pickup restores a resource when the player touches it.
type Pickup struct {
	Kind   string
	Amount float64
}

var PickupComponent = NewComponent[Pickup]()
