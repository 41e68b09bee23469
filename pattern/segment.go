package pattern

import (
	"math"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/prefabs"
)

type SegmentKind string

const (
	Linear   SegmentKind = "linear"
	Circular SegmentKind = "circular"
)

// segment is one leg of the boss timeline. Targets step discretely: each
// step holds for interval seconds.
type segment struct {
	kind     SegmentKind
	steps    int
	interval float64
	duration float64

	// linear
	drop float64

	// circular
	radius     float64
	vRadius    float64
	stepDeg    float64
	centerDrop float64
}

func newSegment(spec prefabs.PatternSegmentSpec) (segment, bool) {
	s := segment{kind: SegmentKind(spec.Kind)}
	switch s.kind {
	case Linear:
		s.steps = int(spec.Param("points", 5))
		s.interval = spec.Param("interval", 1)
		s.drop = spec.Param("drop", 1.5)
	case Circular:
		s.steps = int(spec.Param("steps", 20))
		s.interval = spec.Param("interval", 0.2)
		s.radius = spec.Param("radius", 3)
		s.vRadius = spec.Param("vertical_radius", 1)
		s.stepDeg = spec.Param("step_degrees", 18)
		s.centerDrop = spec.Param("center_drop", 2)
	default:
		return segment{}, false
	}
	if s.steps < 1 {
		s.steps = 1
	}
	if s.interval <= 0 {
		s.interval = 0.1
	}
	s.duration = float64(s.steps) * s.interval
	if spec.Duration > 0 {
		s.duration = spec.Duration
	}
	return s, true
}

func (s segment) stepAt(elapsed float64) int {
	k := int(math.Floor(elapsed/s.interval + 1e-9))
	if k >= s.steps {
		k = s.steps - 1
	}
	if k < 0 {
		k = 0
	}
	return k
}

func (s segment) target(elapsed float64, bounds common.Vec2, movingRight bool) common.Vec2 {
	k := s.stepAt(elapsed)
	switch s.kind {
	case Linear:
		x := -bounds.X
		if movingRight {
			x = bounds.X
		}
		return common.V(x, bounds.Y-float64(k)*s.drop)
	case Circular:
		center := common.V(0, bounds.Y-s.centerDrop)
		rad := float64(k+1) * s.stepDeg * math.Pi / 180
		return common.V(center.X+math.Cos(rad)*s.radius, center.Y+math.Sin(rad)*s.vRadius)
	}
	return bounds
}
