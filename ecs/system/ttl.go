package system

import (
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

// bulletMargin lets bullets leave the screen fully before culling.
const bulletMargin = 1.0

// TTLSystem counts down TTL components and destroys expired entities. It
// also culls bullets that have left the playfield.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Remaining -= dt
		if ttl.Remaining <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Bullet, t *component.Transform) {
		if !common.InField(t.Pos, bulletMargin) {
			ecs.DestroyEntity(w, e)
		}
	})
}
