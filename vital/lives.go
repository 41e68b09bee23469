package vital

// Lives counts the player's remaining attempts.
type Lives struct {
	current   int
	max       int
	exhausted bool

	onChanged   []func(current, max int)
	onExhausted []func()
}

func NewLives(starting, max int) *Lives {
	l := &Lives{}
	l.Initialize(starting, max)
	return l
}

func (l *Lives) Initialize(starting, max int) {
	if l == nil {
		return
	}
	if max < 0 {
		max = 0
	}
	l.max = max
	l.current = clamp(starting, 0, max)
	l.exhausted = false
	l.emit()
}

// LoseLife removes one life and reports whether any remain.
func (l *Lives) LoseLife() bool {
	if l == nil || l.current == 0 {
		return false
	}
	l.current--
	l.emit()
	if l.current == 0 && !l.exhausted {
		l.exhausted = true
		for _, fn := range l.onExhausted {
			fn()
		}
	}
	return l.current > 0
}

// GainLife adds one life unless already at max.
func (l *Lives) GainLife() bool {
	if l == nil || l.current >= l.max {
		return false
	}
	l.current++
	l.exhausted = false
	l.emit()
	return true
}

func (l *Lives) emit() {
	for _, fn := range l.onChanged {
		fn(l.current, l.max)
	}
}

func (l *Lives) Current() int {
	if l == nil {
		return 0
	}
	return l.current
}

func (l *Lives) Max() int {
	if l == nil {
		return 0
	}
	return l.max
}

func (l *Lives) Exhausted() bool {
	return l != nil && l.current == 0
}

func (l *Lives) OnChanged(fn func(current, max int)) {
	if l == nil || fn == nil {
		return
	}
	l.onChanged = append(l.onChanged, fn)
}

func (l *Lives) OnExhausted(fn func()) {
	if l == nil || fn == nil {
		return
	}
	l.onExhausted = append(l.onExhausted, fn)
}
