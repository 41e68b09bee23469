package component

// WhiteFlash makes an actor render white while On. It toggles every
// Interval seconds until Remaining runs out.
type WhiteFlash struct {
	Remaining float64
	Interval  float64
	Timer     float64
	On        bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
