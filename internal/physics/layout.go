// Package physics keeps a 3D position for every agent of a net and relaxes
// the positions with springs along wires and pairwise repulsion.
package physics

import (
	"lafont/pkg/core"
	"lafont/pkg/inet"
)

// Body is the simulation state of one agent.
type Body struct {
	Pos Vec3
	Vel Vec3
}

// Stats describes one Relax call.
type Stats struct {
	Bodies int
	Seeded int
	Pruned int
	// MaxDisplacement is the largest distance any body moved during the last
	// substep.
	MaxDisplacement float64
}

// Layout owns the bodies, keyed by agent id so they survive rewrites of the
// net.
type Layout struct {
	cfg    Config
	rng    *core.RNG
	bodies map[inet.AgentID]*Body

	// per-Relax scratch, indexed like ids
	ids     []inet.AgentID
	springs [][]spring
	pos     []Vec3
	forces  []Vec3
}

type spring struct {
	to   int
	rest float64
}

// New returns an empty layout.
func New(cfg Config) *Layout {
	cfg = cfg.sanitized()
	return &Layout{
		cfg:    cfg,
		rng:    core.NewRNG(cfg.Seed),
		bodies: make(map[inet.AgentID]*Body),
	}
}

// Config returns the active configuration.
func (l *Layout) Config() Config { return l.cfg }

// SetConfig replaces the force constants. Bodies are kept.
func (l *Layout) SetConfig(cfg Config) { l.cfg = cfg.sanitized() }

// Reset drops every body and reseeds the jitter source.
func (l *Layout) Reset() {
	clear(l.bodies)
	l.rng = core.NewRNG(l.cfg.Seed)
}

// Len returns the number of bodies.
func (l *Layout) Len() int { return len(l.bodies) }

// Body returns a copy of the body of agent id.
func (l *Layout) Body(id inet.AgentID) (Body, bool) {
	b, ok := l.bodies[id]
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// Position returns the position of agent id.
func (l *Layout) Position(id inet.AgentID) (Vec3, bool) {
	b, ok := l.bodies[id]
	if !ok {
		return Vec3{}, false
	}
	return b.Pos, true
}

// Relax brings the bodies in line with n and integrates Substeps steps of
// length dt, or Config.DT when dt <= 0.
func (l *Layout) Relax(n *inet.Net, dt float64) Stats {
	if dt <= 0 {
		dt = l.cfg.DT
	}
	st := l.sync(n)
	l.prepare(n)
	for range l.cfg.Substeps {
		st.MaxDisplacement = l.substep(dt)
	}
	st.Bodies = len(l.bodies)
	return st
}

// sync creates bodies for new agents and drops those of removed agents.
// Seeding runs first so that the bodies of a consumed redex can still anchor
// the agents it produced.
func (l *Layout) sync(n *inet.Net) Stats {
	var st Stats
	for _, id := range n.IDs() {
		if _, ok := l.bodies[id]; ok {
			continue
		}
		a, _ := n.Agent(id)
		l.bodies[id] = &Body{Pos: l.seed(a)}
		st.Seeded++
	}
	for id := range l.bodies {
		if !n.Has(id) {
			delete(l.bodies, id)
			st.Pruned++
		}
	}
	return st
}

// seed picks the starting position of a new agent: the centre of the redex
// that created it, else the centre of its positioned neighbours, else the
// origin, plus a small random offset.
func (l *Layout) seed(a inet.Agent) Vec3 {
	var (
		sum   Vec3
		count int
	)
	for _, p := range a.Parents {
		if b, ok := l.bodies[p]; ok && p != inet.Free {
			sum = sum.Add(b.Pos)
			count++
		}
	}
	if count == 0 {
		for s := 0; s <= a.Arity(); s++ {
			q := a.Peer(s)
			if q.IsFree() {
				continue
			}
			if b, ok := l.bodies[q.Agent]; ok {
				sum = sum.Add(b.Pos)
				count++
			}
		}
	}
	center := Vec3{}
	if count > 0 {
		center = sum.Scale(1 / float64(count))
	}
	x, y, z := l.rng.Direction()
	return center.Add(Vec3{x, y, z}.Scale(l.cfg.Jitter))
}

// prepare indexes the bodies in id order and builds the spring lists.
func (l *Layout) prepare(n *inet.Net) {
	l.ids = n.IDs()
	index := make(map[inet.AgentID]int, len(l.ids))
	for i, id := range l.ids {
		index[id] = i
	}
	l.springs = resize(l.springs, len(l.ids))
	for i := range l.springs {
		l.springs[i] = l.springs[i][:0]
	}
	for _, w := range n.Wires() {
		if w.A.IsFree() || w.B.IsFree() || w.A.Agent == w.B.Agent {
			continue
		}
		rest := l.cfg.RestLength
		if w.Active() {
			rest = l.cfg.ActiveRestLength
		}
		i, j := index[w.A.Agent], index[w.B.Agent]
		l.springs[i] = append(l.springs[i], spring{to: j, rest: rest})
		l.springs[j] = append(l.springs[j], spring{to: i, rest: rest})
	}
	l.pos = resize(l.pos, len(l.ids))
	l.forces = resize(l.forces, len(l.ids))
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
