package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/prefabs"
)

// moveScriptInputs are the globals every movement script can read.
var moveScriptInputs = []string{"t", "dt", "x", "y", "origin_x", "origin_y", "speed"}

// moveScript is a compiled movement script. Scripts read the inputs and
// the params map and assign vx and vy.
type moveScript struct {
	name     string
	compiled *tengo.Compiled
}

func compileMoveScript(name string) (*moveScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("movement: load script %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	for _, v := range moveScriptInputs {
		_ = script.Add(v, 0.0)
	}
	_ = script.Add("params", map[string]interface{}{})
	_ = script.Add("vx", 0.0)
	_ = script.Add("vy", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("movement: compile script %s: %w", name, err)
	}
	return &moveScript{name: name, compiled: compiled}, nil
}

// velocity runs the script for one mover. The previous outputs are reset
// to a straight descent so a script that only sets vx still falls.
func (s *moveScript) velocity(m *component.Mover, pos common.Vec2, dt float64) (common.Vec2, error) {
	inputs := map[string]float64{
		"t":        m.Age,
		"dt":       dt,
		"x":        pos.X,
		"y":        pos.Y,
		"origin_x": m.Origin.X,
		"origin_y": m.Origin.Y,
		"speed":    m.Speed,
	}
	for name, v := range inputs {
		if err := s.compiled.Set(name, v); err != nil {
			return common.Vec2{}, err
		}
	}

	params := make(map[string]interface{}, len(m.Params))
	for k, v := range m.Params {
		params[k] = v
	}
	if err := s.compiled.Set("params", params); err != nil {
		return common.Vec2{}, err
	}
	if err := s.compiled.Set("vx", 0.0); err != nil {
		return common.Vec2{}, err
	}
	if err := s.compiled.Set("vy", -m.Speed); err != nil {
		return common.Vec2{}, err
	}

	if err := s.compiled.Run(); err != nil {
		return common.Vec2{}, fmt.Errorf("movement: run script %s: %w", s.name, err)
	}
	return common.V(s.compiled.Get("vx").Float(), s.compiled.Get("vy").Float()), nil
}
