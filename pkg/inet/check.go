package inet

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate checks that every port of every live agent and every free port is
// wired exactly once, to an existing port that points back.
func (n *Net) Validate() error {
	var errs []error
	check := func(p Port) {
		q, ok := n.Peer(p)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: port %s is dangling", ErrStructuralViolation, p))
			return
		}
		if q == p {
			errs = append(errs, fmt.Errorf("%w: port %s is wired to itself", ErrStructuralViolation, p))
			return
		}
		back, ok := n.Peer(q)
		if !ok || back != p {
			errs = append(errs, fmt.Errorf("%w: port %s points to %s which points to %s",
				ErrStructuralViolation, p, q, back))
		}
	}
	for _, p := range n.FreePorts() {
		check(p)
	}
	for _, id := range n.ids() {
		a := n.agents[id]
		if !a.Kind.Valid() {
			errs = append(errs, fmt.Errorf("%w: agent %d has %s", ErrStructuralViolation, id, a.Kind))
			continue
		}
		for s := 0; s <= a.Arity(); s++ {
			check(a.Port(s))
		}
	}
	return errors.Join(errs...)
}

// Signature summarises the net: the multiset of agent kinds and the multiset
// of wires with endpoints written as kind and slot. Free ports keep their slot
// since they are the net's interface. It ignores agent ids but is not a
// canonical form: nets that differ only in how the same kinds of wire are
// arranged share a signature. Use Canonical to compare nets.
func (n *Net) Signature() string {
	var counts [3]int
	for _, a := range n.agents {
		if a.Kind.Valid() {
			counts[a.Kind]++
		}
	}
	endpoint := func(p Port) string {
		if p.IsFree() {
			return p.String()
		}
		return fmt.Sprintf("%s%d", n.agents[p.Agent].Kind.Symbol(), p.Slot)
	}
	var wires []string
	for _, w := range n.Wires() {
		x, y := endpoint(w.A), endpoint(w.B)
		if y < x {
			x, y = y, x
		}
		wires = append(wires, x+"-"+y)
	}
	slices.Sort(wires)

	var b strings.Builder
	fmt.Fprintf(&b, "c=%d d=%d e=%d", counts[Constructor], counts[Duplicator], counts[Eraser])
	if len(wires) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(wires, " "))
	}
	return b.String()
}

// Canonical returns a string that two nets share exactly when they are
// isomorphic by a renaming of agents that keeps every free port in place.
//
// Ports are ordered, so a breadth-first walk from a fixed agent numbers a
// connected component the same way in every isomorphic copy. Components
// reaching the interface are walked from the agent on their lowest free port;
// closed components take the least encoding over all starting agents.
func (n *Net) Canonical() string {
	seen := make(map[AgentID]bool, len(n.agents))
	var parts []string
	for i, p := range n.free {
		if p.IsFree() {
			if i < p.Slot {
				parts = append(parts, fmt.Sprintf("f%d-f%d", i, p.Slot))
			}
			continue
		}
		if seen[p.Agent] {
			continue
		}
		enc, members := n.encode(p.Agent)
		for _, id := range members {
			seen[id] = true
		}
		parts = append(parts, fmt.Sprintf("f%d:%s", i, enc))
	}

	var closed []string
	for _, id := range n.ids() {
		if seen[id] {
			continue
		}
		best, members := n.encode(id)
		for _, m := range members {
			seen[m] = true
			if enc, _ := n.encode(m); enc < best {
				best = enc
			}
		}
		closed = append(closed, best)
	}
	slices.Sort(closed)
	return strings.Join(append(parts, closed...), " | ")
}

// encode walks the component of root breadth-first, numbering agents in the
// order they are reached. Each agent is written as its kind followed by the
// peers of its ports as number.slot, or fN for free port N.
func (n *Net) encode(root AgentID) (string, []AgentID) {
	index := map[AgentID]int{root: 0}
	order := []AgentID{root}
	var b strings.Builder
	for i := 0; i < len(order); i++ {
		a := n.agents[order[i]]
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Kind.Symbol())
		b.WriteByte('[')
		for s := 0; s <= a.Arity(); s++ {
			if s > 0 {
				b.WriteByte(',')
			}
			q := a.ports[s]
			if q.IsFree() {
				fmt.Fprintf(&b, "f%d", q.Slot)
				continue
			}
			j, ok := index[q.Agent]
			if !ok {
				j = len(order)
				index[q.Agent] = j
				order = append(order, q.Agent)
			}
			fmt.Fprintf(&b, "%d.%d", j, q.Slot)
		}
		b.WriteByte(']')
	}
	return b.String(), order
}
