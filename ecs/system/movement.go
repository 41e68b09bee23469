package system

import (
	"log"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

// MovementSystem steers movers and integrates every non-player velocity.
type MovementSystem struct {
	scripts map[string]*moveScript
	broken  map[string]bool
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{
		scripts: make(map[string]*moveScript),
		broken:  make(map[string]bool),
	}
}

// Invalidate drops compiled scripts so edited files are picked up.
func (s *MovementSystem) Invalidate() {
	if s == nil {
		return
	}
	s.scripts = make(map[string]*moveScript)
	s.broken = make(map[string]bool)
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	_, playerPos, havePlayer := playerPosition(w)

	ecs.ForEach3(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, m *component.Mover, t *component.Transform, v *component.Velocity) {
		if !isActive(w, e) {
			v.Vec2 = common.Vec2{}
			return
		}
		v.Vec2 = s.steer(m, t.Pos, playerPos, havePlayer, dt)
		m.Age += dt
	})

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, t *component.Transform, v *component.Velocity) {
		if ecs.Has(w, e, component.PlayerComponent.Kind()) {
			return
		}
		t.Pos = t.Pos.Add(v.Vec2.Scale(dt))
	})
}

func (s *MovementSystem) steer(m *component.Mover, pos, playerPos common.Vec2, havePlayer bool, dt float64) common.Vec2 {
	fall := common.V(0, -m.Speed)

	switch m.Kind {
	case component.MoveDive:
		mult := m.Param("dive_multiplier", 2)
		if !m.Diving && havePlayer && pos.Dist(playerPos) <= m.Param("dive_distance", 3) {
			m.Diving = true
			m.DiveDir = playerPos.Sub(pos).Normalized()
		}
		if m.Diving {
			return m.DiveDir.Scale(m.Speed * mult)
		}
		return fall

	case component.MovePatrol:
		hold := m.Param("hold_y", 3)
		if pos.Y > hold {
			return fall
		}
		half := m.Param("half_width", 7)
		if m.Dir == 0 {
			m.Dir = 1
		}
		if pos.X >= half && m.Dir > 0 {
			m.Dir = -1
		} else if pos.X <= -half && m.Dir < 0 {
			m.Dir = 1
		}
		return common.V(m.Dir*m.Speed, 0)

	case component.MoveScript:
		script := s.script(m.Script)
		if script == nil {
			return fall
		}
		vel, err := script.velocity(m, pos, dt)
		if err != nil {
			log.Printf("movement: %v", err)
			s.broken[m.Script] = true
			delete(s.scripts, m.Script)
			return fall
		}
		return vel
	}

	return fall
}

// script compiles on first use. A script that fails is not retried until
// Invalidate.
func (s *MovementSystem) script(name string) *moveScript {
	if name == "" || s.broken[name] {
		return nil
	}
	if c, ok := s.scripts[name]; ok {
		return c
	}
	c, err := compileMoveScript(name)
	if err != nil {
		log.Printf("movement: %v", err)
		s.broken[name] = true
		return nil
	}
	s.scripts[name] = c
	return c
}
