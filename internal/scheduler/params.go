package scheduler

import (
	"math"

	"lafont/internal/core"
)

// Parameters reports the reduction and layout state for the HUD.
func (s *Scheduler) Parameters() core.ParameterSnapshot {
	pc := s.layout.Config()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Reduction",
			Params: []core.Parameter{
				core.TextParam("strategy", "Strategy", s.engine.Strategy().String(), "Active pair selection order."),
				core.TextParam("state", "State", s.state.String(), ""),
				core.IntParam("skip", "Steps/frame", s.cfg.Skip, "Rewrites applied per frame."),
				core.IntParam("steps", "Steps", s.total, "Rewrites since reset."),
				core.IntParam("agents", "Agents", s.net.Len(), ""),
			},
		},
		{
			Name: "Layout",
			Params: []core.Parameter{
				core.IntParam("substeps", "Substeps", pc.Substeps, "Integration steps per frame."),
				core.FloatParam("spring", "Spring", pc.Spring, "Stiffness of wires."),
				core.FloatParam("repulsion", "Repulsion", pc.Repulsion, "Strength of the inverse-square push."),
				core.FloatParam("damping", "Damping", pc.Damping, "Velocity kept per substep."),
			},
		},
		{
			Name:   "Display",
			Params: []core.Parameter{core.BoolParam("edges", "Edges", s.cfg.ShowEdges, "")},
		},
	}}
}

// ParameterControls lists the values the HUD can adjust.
func (s *Scheduler) ParameterControls() []core.ParameterControl {
	return controls
}

var controls = []core.ParameterControl{
	{Key: "skip", Label: "Steps/frame", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 10000, HasMax: true},
	{Key: "substeps", Label: "Substeps", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 64, HasMax: true},
	{Key: "spring", Label: "Spring", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true, Max: 10, HasMax: true},
	{Key: "repulsion", Label: "Repulsion", Type: core.ParamTypeFloat, Step: 0.25, Min: 0, HasMin: true, Max: 50, HasMax: true},
	{Key: "damping", Label: "Damping", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true, Max: 1, HasMax: true},
}

func control(key string) (core.ParameterControl, bool) {
	for _, c := range controls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter updates skip or substeps.
func (s *Scheduler) SetIntParameter(key string, value int) bool {
	c, ok := control(key)
	if !ok || c.Type != core.ParamTypeInt {
		return false
	}
	value = int(math.Round(c.Clamp(float64(value))))
	switch key {
	case "skip":
		s.SetSkip(value)
	case "substeps":
		pc := s.layout.Config()
		pc.Substeps = value
		s.layout.SetConfig(pc)
	}
	return true
}

// SetFloatParameter updates a layout force constant.
func (s *Scheduler) SetFloatParameter(key string, value float64) bool {
	c, ok := control(key)
	if !ok || c.Type != core.ParamTypeFloat || math.IsNaN(value) {
		return false
	}
	value = c.Clamp(value)
	pc := s.layout.Config()
	switch key {
	case "spring":
		pc.Spring = value
	case "repulsion":
		pc.Repulsion = value
	case "damping":
		pc.Damping = value
	}
	s.layout.SetConfig(pc)
	return true
}
