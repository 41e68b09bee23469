package system

import (
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

// playerPosition returns the player's position if there is a player.
func playerPosition(w *ecs.World) (ecs.Entity, common.Vec2, bool) {
	player, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return 0, common.Vec2{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return 0, common.Vec2{}, false
	}
	return player, t.Pos, true
}

// isActive reports whether e is an actor that can still act and be hit.
// Entities without an Actor record (the player) count as active.
func isActive(w *ecs.World, e ecs.Entity) bool {
	if !ecs.IsAlive(w, e) {
		return false
	}
	actor, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		return true
	}
	return actor.State == component.Active && actor.Cause == component.CauseNone
}

func invulnerable(w *ecs.World, e ecs.Entity) bool {
	inv, ok := ecs.Get(w, e, component.InvulnerableComponent.Kind())
	return ok && inv.Remaining > 0
}

// fan returns count unit directions spread evenly over spread degrees,
// centred on dir.
func fan(dir common.Vec2, count int, spread float64) []common.Vec2 {
	if count <= 0 {
		return nil
	}
	dir = dir.Normalized()
	if count == 1 || spread == 0 {
		out := make([]common.Vec2, count)
		for i := range out {
			out[i] = dir
		}
		return out
	}
	out := make([]common.Vec2, 0, count)
	step := spread / float64(count-1)
	for i := 0; i < count; i++ {
		out = append(out, dir.Rotate(-spread/2+float64(i)*step))
	}
	return out
}

var down = common.V(0, -1)
