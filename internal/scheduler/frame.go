package scheduler

import (
	"lafont/internal/engine"
	"lafont/internal/physics"
	"lafont/pkg/inet"
)

// AgentView is one agent as a renderer sees it.
type AgentView struct {
	ID   inet.AgentID
	Kind inet.Kind
	Pos  physics.Vec3
}

// EdgeView is a wire between two agents. Wires with a free end have no
// position and never appear in a frame.
type EdgeView struct {
	A, B     inet.Port
	From, To physics.Vec3
	Active   bool
}

// Frame is the snapshot handed to an Exporter after every tick.
type Frame struct {
	Index int
	// Steps is the number of rewrites applied during this tick.
	Steps  int
	Total  int
	Normal bool
	Agents []AgentView
	Edges  []EdgeView
	Layout physics.Stats
}

// Exporter consumes frames, for instance a window or a log.
type Exporter interface {
	Export(Frame) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(Frame) error

// Export calls f.
func (f ExporterFunc) Export(fr Frame) error { return f(fr) }

func (s *Scheduler) snapshot(steps int, st physics.Stats) Frame {
	f := Frame{
		Index:  s.frame,
		Steps:  steps,
		Total:  s.total,
		Normal: s.state == engine.Normal,
		Layout: st,
	}
	ids := s.net.IDs()
	f.Agents = make([]AgentView, 0, len(ids))
	for _, id := range ids {
		a, _ := s.net.Agent(id)
		pos, _ := s.layout.Position(id)
		f.Agents = append(f.Agents, AgentView{ID: id, Kind: a.Kind, Pos: pos})
	}
	if !s.cfg.ShowEdges {
		return f
	}
	for _, w := range s.net.Wires() {
		if w.A.IsFree() || w.B.IsFree() {
			continue
		}
		from, _ := s.layout.Position(w.A.Agent)
		to, _ := s.layout.Position(w.B.Agent)
		f.Edges = append(f.Edges, EdgeView{A: w.A, B: w.B, From: from, To: to, Active: w.Active()})
	}
	return f
}
