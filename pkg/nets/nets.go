// Package nets builds the initial nets that can be reduced and animated.
package nets

import (
	"lafont/pkg/core"
	"lafont/pkg/inet"
)

type builder struct {
	net *inet.Net
	err error
}

func newBuilder() *builder { return &builder{net: inet.New()} }

func (b *builder) add(k inet.Kind) inet.AgentID { return b.net.Add(k) }

func (b *builder) free() inet.Port { return b.net.AddFree() }

func (b *builder) link(p, q inet.Port) {
	if b.err != nil {
		return
	}
	b.err = b.net.Link(p, q)
}

func (b *builder) done() (*inet.Net, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.net.Validate(); err != nil {
		return nil, err
	}
	return b.net, nil
}

// tree builds a complete binary tree of constructors with erasers as leaves
// and returns its root. The root's principal port is left unwired.
func (b *builder) tree(depth int) inet.AgentID {
	if depth <= 0 {
		return b.add(inet.Eraser)
	}
	root := b.add(inet.Constructor)
	for s := 1; s <= 2; s++ {
		child := b.tree(depth - 1)
		b.link(port(root, s), port(child, 0))
	}
	return root
}

func port(id inet.AgentID, slot int) inet.Port { return inet.Port{Agent: id, Slot: slot} }

// Annihilate is two constructors facing each other. One aux port of each is
// free and the other two are tied together, so a single annihilation leaves
// only a wire between the two free ports.
func Annihilate() (*inet.Net, error) {
	b := newBuilder()
	x, y := b.add(inet.Constructor), b.add(inet.Constructor)
	b.link(port(x, 0), port(y, 0))
	b.link(port(x, 1), b.free())
	b.link(port(y, 1), b.free())
	b.link(port(x, 2), port(y, 2))
	return b.done()
}

// Commute is a constructor facing a duplicator with all four aux ports free.
func Commute() (*inet.Net, error) {
	b := newBuilder()
	c, d := b.add(inet.Constructor), b.add(inet.Duplicator)
	b.link(port(c, 0), port(d, 0))
	b.link(port(c, 1), b.free())
	b.link(port(c, 2), b.free())
	b.link(port(d, 1), b.free())
	b.link(port(d, 2), b.free())
	return b.done()
}

// Lafont is a constructor and a duplicator facing each other, wired into a
// loop through one aux port each and capped by two erasers.
func Lafont() (*inet.Net, error) {
	b := newBuilder()
	e1, e2 := b.add(inet.Eraser), b.add(inet.Eraser)
	c, d := b.add(inet.Constructor), b.add(inet.Duplicator)
	b.link(port(e1, 0), port(c, 1))
	b.link(port(c, 2), port(d, 1))
	b.link(port(d, 2), port(e2, 0))
	b.link(port(c, 0), port(d, 0))
	return b.done()
}

// DupTree feeds a constructor tree of the given depth into a duplicator whose
// aux ports are free. The normal form is two copies of the tree.
func DupTree(depth int) (*inet.Net, error) {
	b := newBuilder()
	d := b.add(inet.Duplicator)
	root := b.tree(depth)
	b.link(port(d, 0), port(root, 0))
	b.link(port(d, 1), b.free())
	b.link(port(d, 2), b.free())
	return b.done()
}

// EraseTree feeds a constructor tree of the given depth into an eraser. The
// normal form is the empty net.
func EraseTree(depth int) (*inet.Net, error) {
	b := newBuilder()
	e := b.add(inet.Eraser)
	root := b.tree(depth)
	b.link(port(e, 0), port(root, 0))
	return b.done()
}

// Random wires n agents of random kinds by pairing up their ports in a random
// order. When the port count is odd the last port is left on the interface.
func Random(n int, seed int64) (*inet.Net, error) {
	rng := core.NewRNG(seed)
	b := newBuilder()
	var ports []inet.Port
	for range n {
		id := b.add(inet.Kind(rng.IntN(3)))
		a, _ := b.net.Agent(id)
		for s := 0; s <= a.Arity(); s++ {
			ports = append(ports, a.Port(s))
		}
	}
	rng.Shuffle(len(ports), func(i, j int) { ports[i], ports[j] = ports[j], ports[i] })
	for len(ports) >= 2 {
		b.link(ports[0], ports[1])
		ports = ports[2:]
	}
	if len(ports) == 1 {
		b.link(ports[0], b.free())
	}
	return b.done()
}

func init() {
	core.Register("annihilate", "two constructors annihilating into a single wire",
		func(map[string]string) (*inet.Net, error) { return Annihilate() })
	core.Register("commute", "a constructor duplicated through a duplicator",
		func(map[string]string) (*inet.Net, error) { return Commute() })
	core.Register("lafont", "constructor/duplicator loop capped by erasers",
		func(map[string]string) (*inet.Net, error) { return Lafont() })
	core.Register("dup-tree", "a duplicator copying a constructor tree (depth)",
		func(cfg map[string]string) (*inet.Net, error) { return DupTree(FromMap(cfg).Depth) })
	core.Register("erase-tree", "an eraser consuming a constructor tree (depth)",
		func(cfg map[string]string) (*inet.Net, error) { return EraseTree(FromMap(cfg).Depth) })
	core.Register("random", "randomly wired agents (agents, seed)",
		func(cfg map[string]string) (*inet.Net, error) {
			c := FromMap(cfg)
			return Random(c.Agents, c.Seed)
		})
}
