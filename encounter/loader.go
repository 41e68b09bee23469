package encounter

// SceneLoader prepares a stage's scene and calls ready once it can be
// populated.
type SceneLoader interface {
	LoadScene(ref string, ready func())
}

// DeferredLoader completes loads on the next Pump, standing in for an
// asynchronous asset load.
type DeferredLoader struct {
	pending []func()
	loaded  []string
}

func (l *DeferredLoader) LoadScene(ref string, ready func()) {
	l.loaded = append(l.loaded, ref)
	l.pending = append(l.pending, ready)
}

// Pump runs the ready callbacks queued before this call.
func (l *DeferredLoader) Pump() {
	if len(l.pending) == 0 {
		return
	}
	ready := l.pending
	l.pending = nil
	for _, fn := range ready {
		fn()
	}
}

// Loaded lists every scene reference requested so far.
func (l *DeferredLoader) Loaded() []string {
	return append([]string(nil), l.loaded...)
}

// InstantLoader calls ready immediately.
type InstantLoader struct{}

func (InstantLoader) LoadScene(_ string, ready func()) {
	ready()
}
