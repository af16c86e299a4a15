package inet

import "fmt"

// Rewrite describes one rule firing.
type Rewrite struct {
	Rule  Rule
	A, B  AgentID
	KindA Kind
	KindB Kind
	// Created lists the fresh agents in allocation order.
	Created []AgentID
}

func (n *Net) redex(a, b AgentID) (*Agent, *Agent, error) {
	x, ok := n.agents[a]
	if !ok {
		return nil, nil, fmt.Errorf("%w: agent %d is not live", ErrStructuralViolation, a)
	}
	y, ok := n.agents[b]
	if !ok {
		return nil, nil, fmt.Errorf("%w: agent %d is not live", ErrStructuralViolation, b)
	}
	if !n.IsRedex(a, b) {
		return nil, nil, fmt.Errorf("%w: agents %d and %d are not an active pair", ErrStructuralViolation, a, b)
	}
	return x, y, nil
}

// Apply fires the rule matching the kinds of the active pair (a, b).
func (n *Net) Apply(a, b AgentID) (Rewrite, error) {
	x, y, err := n.redex(a, b)
	if err != nil {
		return Rewrite{}, err
	}
	if RuleFor(x.Kind, y.Kind) == RuleAnnihilation {
		return n.Annihilate(a, b)
	}
	return n.Duplicate(a, b)
}

// Annihilate removes an active pair of agents of the same kind. Auxiliary port
// i of a is fused with auxiliary port i of b, so the two wires that met there
// become one. Wires that loop entirely through the pair disappear.
func (n *Net) Annihilate(a, b AgentID) (Rewrite, error) {
	x, y, err := n.redex(a, b)
	if err != nil {
		return Rewrite{}, err
	}
	if x.Kind != y.Kind {
		return Rewrite{}, fmt.Errorf("%w: annihilation of %s %d with %s %d",
			ErrStructuralViolation, x.Kind, a, y.Kind, b)
	}

	inside := func(p Port) bool {
		return (p.Agent == a || p.Agent == b) && p.Slot > 0
	}
	fused := func(p Port) Port {
		if p.Agent == a {
			return Port{Agent: b, Slot: p.Slot}
		}
		return Port{Agent: a, Slot: p.Slot}
	}

	// Each chain starts at an aux port whose wire leaves the pair and is
	// followed through fused ports until it leaves the pair again.
	arity := x.Arity()
	visited := make(map[Port]bool, 2*arity)
	for _, id := range [2]AgentID{a, b} {
		for s := 1; s <= arity; s++ {
			start := Port{Agent: id, Slot: s}
			if visited[start] {
				continue
			}
			outer := *n.cell(start)
			if inside(outer) {
				continue
			}
			visited[start] = true
			cur := fused(start)
			for {
				visited[cur] = true
				next := *n.cell(cur)
				if !inside(next) {
					n.link(outer, next)
					break
				}
				visited[next] = true
				cur = fused(next)
			}
		}
	}

	n.remove(a)
	n.remove(b)
	return Rewrite{Rule: RuleAnnihilation, A: a, B: b, KindA: x.Kind, KindB: y.Kind}, nil
}

// Duplicate rewrites an active pair of agents of different kinds. Each agent
// is copied once per auxiliary port of its partner: copy i of b takes over the
// wire of a's auxiliary port i on its principal port, copy j of a takes over
// b's auxiliary port j, and aux port j of b's copy i is wired to aux port i of
// a's copy j. An eraser has no auxiliary ports, so meeting one simply erases
// the partner into one eraser per auxiliary port.
func (n *Net) Duplicate(a, b AgentID) (Rewrite, error) {
	x, y, err := n.redex(a, b)
	if err != nil {
		return Rewrite{}, err
	}
	if x.Kind == y.Kind {
		return Rewrite{}, fmt.Errorf("%w: duplication of two %s agents %d and %d",
			ErrStructuralViolation, x.Kind, a, b)
	}

	parents := [2]AgentID{a, b}
	ra, rb := x.Arity(), y.Arity()
	rw := Rewrite{Rule: RuleDuplication, A: a, B: b, KindA: x.Kind, KindB: y.Kind}

	copiesOfB := make([]AgentID, ra)
	for i := range copiesOfB {
		copiesOfB[i] = n.add(y.Kind, parents)
		rw.Created = append(rw.Created, copiesOfB[i])
	}
	copiesOfA := make([]AgentID, rb)
	for j := range copiesOfA {
		copiesOfA[j] = n.add(x.Kind, parents)
		rw.Created = append(rw.Created, copiesOfA[j])
	}

	// replacement returns the fresh principal port taking over the wire of an
	// auxiliary port of the pair.
	replacement := func(p Port) (Port, bool) {
		switch {
		case p.Agent == a && p.Slot > 0:
			return Port{Agent: copiesOfB[p.Slot-1], Slot: 0}, true
		case p.Agent == b && p.Slot > 0:
			return Port{Agent: copiesOfA[p.Slot-1], Slot: 0}, true
		}
		return Port{}, false
	}

	// Old cells of a and b are only read here; link writes to fresh agents
	// and to the outside of the pair.
	for _, old := range [2]*Agent{x, y} {
		for s := 1; s <= old.Arity(); s++ {
			p := old.Port(s)
			q := old.ports[s]
			np, _ := replacement(p)
			if nq, ok := replacement(q); ok {
				if p.Less(q) {
					n.link(np, nq)
				}
				continue
			}
			n.link(np, q)
		}
	}

	for i, cb := range copiesOfB {
		for j, ca := range copiesOfA {
			n.link(Port{Agent: cb, Slot: j + 1}, Port{Agent: ca, Slot: i + 1})
		}
	}

	n.remove(a)
	n.remove(b)
	return rw, nil
}
