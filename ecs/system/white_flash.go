package system

import (
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

const (
	hitFlashDuration = 0.2
	hitFlashInterval = 0.05
)

type WhiteFlashSystem struct{}

func NewWhiteFlashSystem() *WhiteFlashSystem { return &WhiteFlashSystem{} }

func (s *WhiteFlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, wf *component.WhiteFlash) {
		if wf.Interval <= 0 {
			wf.Interval = hitFlashInterval
		}
		wf.Timer += dt
		for wf.Timer >= wf.Interval {
			wf.Timer -= wf.Interval
			wf.On = !wf.On
		}
		wf.Remaining -= dt
		if wf.Remaining <= 0 {
			ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
		}
	})
}

// flash starts or restarts the hit flash on e.
func flash(w *ecs.World, e ecs.Entity) {
	if wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok {
		wf.Remaining = hitFlashDuration
		return
	}
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Remaining: hitFlashDuration,
		Interval:  hitFlashInterval,
		On:        true,
	})
}
