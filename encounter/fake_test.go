package encounter

import (
	"fmt"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/prefabs"
)

type spawnCall struct {
	name string
	at   common.Vec2
	id   ecs.Entity
}

type fakeHost struct {
	next    ecs.Entity
	missing map[string]bool
	enemies []spawnCall
	bosses  []spawnCall
	setups  []int
	portals []int
	saves   int

	portalErr error
}

func newFakeHost(missing ...string) *fakeHost {
	h := &fakeHost{missing: make(map[string]bool)}
	for _, m := range missing {
		h.missing[m] = true
	}
	return h
}

func (h *fakeHost) SpawnEnemy(prefab string, at common.Vec2) (ecs.Entity, error) {
	if h.missing[prefab] {
		return 0, fmt.Errorf("enemy %q: %w", prefab, prefabs.ErrConfigurationMissing)
	}
	h.next++
	h.enemies = append(h.enemies, spawnCall{name: prefab, at: at, id: h.next})
	return h.next, nil
}

func (h *fakeHost) SpawnBoss(name string, at common.Vec2) (ecs.Entity, error) {
	if h.missing[name] {
		return 0, fmt.Errorf("boss %q: %w", name, prefabs.ErrConfigurationMissing)
	}
	h.next++
	h.bosses = append(h.bosses, spawnCall{name: name, at: at, id: h.next})
	return h.next, nil
}

func (h *fakeHost) SetupStage(index int, _ prefabs.StageSpec) {
	h.setups = append(h.setups, index)
}

func (h *fakeHost) SpawnPortal(next int) (ecs.Entity, error) {
	if h.portalErr != nil {
		return 0, h.portalErr
	}
	h.next++
	h.portals = append(h.portals, next)
	return h.next, nil
}

func (h *fakeHost) SaveProgress() { h.saves++ }

// recorder captures dispatched event kinds in order.
type recorder struct {
	kinds []EventKind
}

func (r *recorder) attach(d *Dispatcher) {
	d.SubscribeAll(func(e Event) { r.kinds = append(r.kinds, e.Kind) })
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, k := range r.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func wave(name string, delay float64, spawns ...prefabs.SpawnSpec) prefabs.WaveSpec {
	return prefabs.WaveSpec{Name: name, Spawns: spawns, DelayBeforeNext: delay}
}

func spawn(prefab string, count int, interval float64) prefabs.SpawnSpec {
	return prefabs.SpawnSpec{Prefab: prefab, Count: count, Interval: interval}
}
