package pattern

// Timer fires every Period seconds. The first firing happens one full
// period after Reset.
type Timer struct {
	Period    float64
	Remaining float64
}

func NewTimer(period float64) Timer {
	return Timer{Period: period, Remaining: period}
}

// Tick advances the timer and returns how many times it fired.
func (t *Timer) Tick(dt float64) int {
	if t == nil || t.Period <= 0 || dt <= 0 {
		return 0
	}
	t.Remaining -= dt
	fired := 0
	for t.Remaining <= 0 {
		fired++
		t.Remaining += t.Period
	}
	return fired
}

// Scale multiplies the period, pulling the pending firing forward when the
// new period is shorter than what is left.
func (t *Timer) Scale(factor float64) {
	if t == nil || factor <= 0 {
		return
	}
	t.Period *= factor
	if t.Remaining > t.Period {
		t.Remaining = t.Period
	}
}
