// Package physics turns overlapping colliders into tagged contact events.
// Positions are owned by the ECS transforms; the cp space is only used for
// broad phase and overlap detection.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

// Contact reports that Self started touching Other. Each pair is reported
// once per overlap, ordered so SelfTag is the first tag of the handled pair.
type Contact struct {
	Self     ecs.Entity
	Other    ecs.Entity
	SelfTag  component.CollisionTag
	OtherTag component.CollisionTag
}

// pairs lists the tag combinations gameplay cares about.
var pairs = [][2]component.CollisionTag{
	{component.TagPlayer, component.TagEnemy},
	{component.TagPlayer, component.TagBoss},
	{component.TagPlayer, component.TagEnemyBullet},
	{component.TagPlayer, component.TagPickup},
	{component.TagPlayer, component.TagPortal},
	{component.TagPlayerBullet, component.TagEnemy},
	{component.TagPlayerBullet, component.TagBoss},
}

type proxy struct {
	body   *cp.Body
	shape  *cp.Shape
	tag    component.CollisionTag
	radius float64
}

type ContactWorld struct {
	space    *cp.Space
	proxies  map[ecs.Entity]*proxy
	shapes   map[*cp.Shape]ecs.Entity
	tags     map[*cp.Shape]component.CollisionTag
	contacts []Contact
}

func NewContactWorld() *ContactWorld {
	cw := &ContactWorld{
		space:   cp.NewSpace(),
		proxies: make(map[ecs.Entity]*proxy),
		shapes:  make(map[*cp.Shape]ecs.Entity),
		tags:    make(map[*cp.Shape]component.CollisionTag),
	}
	cw.space.SetGravity(cp.Vector{})

	for _, pair := range pairs {
		handler := cw.space.NewCollisionHandler(cp.CollisionType(pair[0]), cp.CollisionType(pair[1]))
		handler.BeginFunc = cw.begin
	}
	return cw
}

func (cw *ContactWorld) begin(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	shapeA, shapeB := arb.Shapes()
	a, okA := cw.shapes[shapeA]
	b, okB := cw.shapes[shapeB]
	if !okA || !okB {
		return false
	}
	cw.contacts = append(cw.contacts, Contact{
		Self:     a,
		Other:    b,
		SelfTag:  cw.tags[shapeA],
		OtherTag: cw.tags[shapeB],
	})
	return true
}

// Sync mirrors every collider in w into the space and drops proxies for
// entities that are gone.
func (cw *ContactWorld) Sync(w *ecs.World) {
	if cw == nil || w == nil {
		return
	}

	for e, p := range cw.proxies {
		col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok || col.Tag != p.tag || col.Radius != p.radius {
			cw.remove(e)
		}
	}

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		if col.Tag == component.TagNone || col.Radius <= 0 {
			return
		}
		p, ok := cw.proxies[e]
		if !ok {
			p = cw.add(e, col)
		}
		p.body.SetPosition(cp.Vector{X: t.Pos.X, Y: t.Pos.Y})
		p.body.SetVelocityVector(cp.Vector{})
	})
}

func (cw *ContactWorld) add(e ecs.Entity, col *component.Collider) *proxy {
	const mass = 1
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, col.Radius, cp.Vector{}))
	shape := cp.NewCircle(body, col.Radius, cp.Vector{})
	shape.SetSensor(true)
	shape.SetCollisionType(cp.CollisionType(col.Tag))

	cw.space.AddBody(body)
	cw.space.AddShape(shape)

	p := &proxy{body: body, shape: shape, tag: col.Tag, radius: col.Radius}
	cw.proxies[e] = p
	cw.shapes[shape] = e
	cw.tags[shape] = col.Tag
	return p
}

func (cw *ContactWorld) remove(e ecs.Entity) {
	p, ok := cw.proxies[e]
	if !ok {
		return
	}
	cw.space.RemoveShape(p.shape)
	cw.space.RemoveBody(p.body)
	delete(cw.shapes, p.shape)
	delete(cw.tags, p.shape)
	delete(cw.proxies, e)
}

// Step runs overlap detection and returns the contacts that began during
// this step. The slice is reused by the next call.
func (cw *ContactWorld) Step(dt float64) []Contact {
	if cw == nil {
		return nil
	}
	cw.contacts = cw.contacts[:0]
	if dt <= 0 {
		return nil
	}
	cw.space.Step(dt)
	return cw.contacts
}

// Reset drops every proxy, used when a stage is torn down.
func (cw *ContactWorld) Reset() {
	if cw == nil {
		return
	}
	for e := range cw.proxies {
		cw.remove(e)
	}
	cw.contacts = cw.contacts[:0]
}

// Len reports how many colliders are mirrored.
func (cw *ContactWorld) Len() int {
	if cw == nil {
		return 0
	}
	return len(cw.proxies)
}
