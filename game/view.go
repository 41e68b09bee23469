package game

import (
	"sort"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteEnemy
	SpriteBoss
	SpritePlayerBullet
	SpriteEnemyBullet
	SpritePickup
	SpritePortal
)

// Sprite is a drawable snapshot of one collidable entity.
type Sprite struct {
	Kind   SpriteKind
	Pos    common.Vec2
	Radius float64
	Label  string
	// Flash is set while the player is invulnerable.
	Flash bool
	// White is set on the frames an actor's hit flash is showing.
	White bool
}

var spriteKinds = map[component.CollisionTag]SpriteKind{
	component.TagPlayer:       SpritePlayer,
	component.TagEnemy:        SpriteEnemy,
	component.TagBoss:         SpriteBoss,
	component.TagPlayerBullet: SpritePlayerBullet,
	component.TagEnemyBullet:  SpriteEnemyBullet,
	component.TagPickup:       SpritePickup,
	component.TagPortal:       SpritePortal,
}

// Sprites lists what a host should draw this frame, back to front.
func (s *Session) Sprites() []Sprite {
	var out []Sprite
	ecs.ForEach2(s.world, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		kind, ok := spriteKinds[col.Tag]
		if !ok {
			return
		}
		sp := Sprite{Kind: kind, Pos: t.Pos, Radius: col.Radius}
		if wf, ok := ecs.Get(s.world, e, component.WhiteFlashComponent.Kind()); ok {
			sp.White = wf.On
		}
		switch kind {
		case SpriteEnemy:
			if en, ok := ecs.Get(s.world, e, component.EnemyComponent.Kind()); ok {
				sp.Label = en.Prefab
			}
		case SpritePickup:
			if p, ok := ecs.Get(s.world, e, component.PickupComponent.Kind()); ok {
				sp.Label = p.Kind
			}
		case SpritePlayer:
			sp.Flash = ecs.Has(s.world, e, component.InvulnerableComponent.Kind())
		}
		out = append(out, sp)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kind > out[j].Kind })
	return out
}

// Beam describes the player's laser column while it fires.
type Beam struct {
	Origin    common.Vec2
	HalfWidth float64
}

func (s *Session) Beam() (Beam, bool) {
	sp, ok := ecs.Get(s.world, s.player, component.SpecialAttackComponent.Kind())
	if !ok || !sp.Firing() {
		return Beam{}, false
	}
	t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	if !ok {
		return Beam{}, false
	}
	return Beam{Origin: t.Pos, HalfWidth: sp.Width / 2}, true
}
