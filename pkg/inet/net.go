package inet

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// AgentID is a stable handle for an agent. Ids are allocated in increasing
// order and never reused within a net.
type AgentID uint32

// Free is the pseudo-agent that owns the boundary ports of a net.
const Free AgentID = 0

// Port addresses a connection point. Slot 0 of an agent is its principal port.
// Ports owned by Free are the net's free ports.
type Port struct {
	Agent AgentID
	Slot  int
}

// unwired marks a port whose peer has not been set yet.
var unwired = Port{Agent: Free, Slot: -1}

// IsFree reports whether p is a boundary port.
func (p Port) IsFree() bool { return p.Agent == Free }

// IsPrincipal reports whether p is the principal port of an agent.
func (p Port) IsPrincipal() bool { return p.Agent != Free && p.Slot == 0 }

// Less orders ports by agent then slot. Free ports sort first.
func (p Port) Less(q Port) bool {
	if p.Agent != q.Agent {
		return p.Agent < q.Agent
	}
	return p.Slot < q.Slot
}

func (p Port) String() string {
	if p.IsFree() {
		return fmt.Sprintf("free:%d", p.Slot)
	}
	return fmt.Sprintf("(%d,%d)", p.Agent, p.Slot)
}

// Wire is an unordered pair of ports, stored with A < B.
type Wire struct {
	A, B Port
}

// NewWire returns the canonical wire between p and q.
func NewWire(p, q Port) Wire {
	if q.Less(p) {
		p, q = q, p
	}
	return Wire{A: p, B: q}
}

// Active reports whether the wire joins two principal ports.
func (w Wire) Active() bool { return w.A.IsPrincipal() && w.B.IsPrincipal() }

// Redex is an active pair, with A < B.
type Redex struct {
	A, B AgentID
}

// Agent is a typed node of the net.
type Agent struct {
	ID   AgentID
	Kind Kind
	// Parents holds the redex that created the agent, or zeros for agents of
	// the initial net.
	Parents [2]AgentID

	ports [3]Port
}

// Arity returns the number of auxiliary ports.
func (a Agent) Arity() int { return a.Kind.Arity() }

// Port returns the agent's own port at slot.
func (a Agent) Port(slot int) Port { return Port{Agent: a.ID, Slot: slot} }

// Peer returns the port wired to the agent's slot.
func (a Agent) Peer(slot int) Port { return a.ports[slot] }

// Net is an arena of agents plus the table of free ports. Every port stores
// the port it is wired to.
type Net struct {
	agents map[AgentID]*Agent
	free   []Port
	next   AgentID
}

// New returns an empty net.
func New() *Net {
	return &Net{agents: make(map[AgentID]*Agent), next: 1}
}

// Add creates an unwired agent of the given kind.
func (n *Net) Add(k Kind) AgentID {
	return n.add(k, [2]AgentID{})
}

func (n *Net) add(k Kind, parents [2]AgentID) AgentID {
	id := n.next
	n.next++
	a := &Agent{ID: id, Kind: k, Parents: parents}
	for i := range a.ports {
		a.ports[i] = unwired
	}
	n.agents[id] = a
	return id
}

// AddFree creates an unwired boundary port.
func (n *Net) AddFree() Port {
	n.free = append(n.free, unwired)
	return Port{Agent: Free, Slot: len(n.free) - 1}
}

func (n *Net) remove(id AgentID) {
	delete(n.agents, id)
}

// cell returns the storage holding the peer of p, or nil when p does not
// exist in the net.
func (n *Net) cell(p Port) *Port {
	if p.IsFree() {
		if p.Slot < 0 || p.Slot >= len(n.free) {
			return nil
		}
		return &n.free[p.Slot]
	}
	a, ok := n.agents[p.Agent]
	if !ok || p.Slot < 0 || p.Slot > a.Arity() {
		return nil
	}
	return &a.ports[p.Slot]
}

func (n *Net) link(p, q Port) {
	*n.cell(p) = q
	*n.cell(q) = p
}

// Link wires two unwired ports together.
func (n *Net) Link(p, q Port) error {
	if p == q {
		return fmt.Errorf("%w: cannot wire %s to itself", ErrStructuralViolation, p)
	}
	for _, x := range [2]Port{p, q} {
		c := n.cell(x)
		if c == nil {
			return fmt.Errorf("%w: unknown port %s", ErrStructuralViolation, x)
		}
		if *c != unwired {
			return fmt.Errorf("%w: port %s already wired to %s", ErrStructuralViolation, x, *c)
		}
	}
	n.link(p, q)
	return nil
}

// Peer returns the port wired to p.
func (n *Net) Peer(p Port) (Port, bool) {
	c := n.cell(p)
	if c == nil || *c == unwired {
		return Port{}, false
	}
	return *c, true
}

// Agent returns a copy of the agent with the given id.
func (n *Net) Agent(id AgentID) (Agent, bool) {
	a, ok := n.agents[id]
	if !ok {
		return Agent{}, false
	}
	return *a, true
}

// Has reports whether the agent is live.
func (n *Net) Has(id AgentID) bool {
	_, ok := n.agents[id]
	return ok
}

// Len returns the number of live agents.
func (n *Net) Len() int { return len(n.agents) }

// FreePorts returns the boundary ports in slot order.
func (n *Net) FreePorts() []Port {
	ports := make([]Port, len(n.free))
	for i := range n.free {
		ports[i] = Port{Agent: Free, Slot: i}
	}
	return ports
}

func (n *Net) ids() []AgentID {
	return slices.Sorted(maps.Keys(n.agents))
}

// IDs returns the live agent ids in increasing order.
func (n *Net) IDs() []AgentID { return n.ids() }

// Agents returns copies of the live agents in increasing id order.
func (n *Net) Agents() []Agent {
	ids := n.ids()
	out := make([]Agent, len(ids))
	for i, id := range ids {
		out[i] = *n.agents[id]
	}
	return out
}

// Wires returns every wire once, ordered by its lower endpoint.
func (n *Net) Wires() []Wire {
	var wires []Wire
	visit := func(p Port) {
		if q, ok := n.Peer(p); ok && p.Less(q) {
			wires = append(wires, Wire{A: p, B: q})
		}
	}
	for i := range n.free {
		visit(Port{Agent: Free, Slot: i})
	}
	for _, id := range n.ids() {
		a := n.agents[id]
		for s := 0; s <= a.Arity(); s++ {
			visit(a.Port(s))
		}
	}
	return wires
}

// Redexes enumerates the active pairs by increasing lower agent id. The
// sequence is lazy and can be ranged over any number of times.
func (n *Net) Redexes() iter.Seq[Redex] {
	return func(yield func(Redex) bool) {
		for _, id := range n.ids() {
			a, ok := n.agents[id]
			if !ok {
				continue
			}
			q := a.ports[0]
			if q.Slot != 0 || q.Agent <= id {
				continue
			}
			if !yield(Redex{A: id, B: q.Agent}) {
				return
			}
		}
	}
}

// Reducible reports whether the net has at least one active pair.
func (n *Net) Reducible() bool {
	for range n.Redexes() {
		return true
	}
	return false
}

// IsRedex reports whether a and b are wired principal to principal.
func (n *Net) IsRedex(a, b AgentID) bool {
	x, ok := n.agents[a]
	if !ok || a == b || !n.Has(b) {
		return false
	}
	return x.ports[0] == Port{Agent: b, Slot: 0}
}

// Clone returns a deep copy of the net. Ids are preserved.
func (n *Net) Clone() *Net {
	c := &Net{
		agents: make(map[AgentID]*Agent, len(n.agents)),
		free:   slices.Clone(n.free),
		next:   n.next,
	}
	for id, a := range n.agents {
		cp := *a
		c.agents[id] = &cp
	}
	return c
}

func (n *Net) String() string {
	var b strings.Builder
	for i, p := range n.free {
		fmt.Fprintf(&b, "free:%d -> %s\n", i, p)
	}
	for _, id := range n.ids() {
		a := n.agents[id]
		fmt.Fprintf(&b, "%d: %s", id, a.Kind.Symbol())
		for s := 0; s <= a.Arity(); s++ {
			fmt.Fprintf(&b, " %s", a.ports[s])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
