package physics

import (
	"math"
	"testing"

	"lafont/pkg/inet"
	"lafont/pkg/nets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair is two constructors tied together through both aux ports, with free
// principal ports. It has no active pair, so its topology never changes.
func pair(t *testing.T) *inet.Net {
	t.Helper()
	n := inet.New()
	a, b := n.Add(inet.Constructor), n.Add(inet.Constructor)
	require.NoError(t, n.Link(inet.Port{Agent: a, Slot: 1}, inet.Port{Agent: b, Slot: 1}))
	require.NoError(t, n.Link(inet.Port{Agent: a, Slot: 2}, inet.Port{Agent: b, Slot: 2}))
	require.NoError(t, n.Link(inet.Port{Agent: a}, n.AddFree()))
	require.NoError(t, n.Link(inet.Port{Agent: b}, n.AddFree()))
	return n
}

func finite(v Vec3) bool {
	for _, x := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func TestRelaxSeedsFirstNetAroundOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DT = 1e-9
	l := New(cfg)
	n, err := nets.Lafont()
	require.NoError(t, err)

	st := l.Relax(n, 0)
	assert.Equal(t, 4, st.Seeded)
	assert.Zero(t, st.Pruned)
	assert.Equal(t, 4, st.Bodies)

	// every body starts within a chain of jitters from the origin
	for _, id := range n.IDs() {
		p, ok := l.Position(id)
		require.True(t, ok)
		assert.LessOrEqual(t, p.Len(), float64(n.Len())*cfg.Jitter+1e-6)
	}
}

func TestRelaxSeedsCopiesNearTheirRedex(t *testing.T) {
	cfg := DefaultConfig()
	l := New(cfg)
	n, err := nets.Commute()
	require.NoError(t, err)
	for range 20 {
		l.Relax(n, 0)
	}
	ids := n.IDs()
	pa, _ := l.Position(ids[0])
	pb, _ := l.Position(ids[1])
	center := pa.Mid(pb)

	rw, err := n.Apply(ids[0], ids[1])
	require.NoError(t, err)

	frozen := cfg
	frozen.DT = 1e-9
	l.SetConfig(frozen)
	st := l.Relax(n, 0)
	assert.Equal(t, 4, st.Seeded)
	assert.Equal(t, 2, st.Pruned)
	assert.Equal(t, 4, l.Len())

	for _, id := range rw.Created {
		p, ok := l.Position(id)
		require.True(t, ok)
		assert.InDelta(t, cfg.Jitter, p.Sub(center).Len(), 1e-6)
	}
	_, ok := l.Body(ids[0])
	assert.False(t, ok)
}

func TestCoincidentBodiesArePushedApart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jitter = 0
	l := New(cfg)
	n := pair(t)

	l.Relax(n, 0)
	ids := n.IDs()
	pa, _ := l.Position(ids[0])
	pb, _ := l.Position(ids[1])
	assert.True(t, finite(pa))
	assert.True(t, finite(pb))
	assert.Greater(t, pa.Sub(pb).Len(), 0.0)

	d := pairDirection(3, 7)
	assert.InDelta(t, 1.0, d.Len(), 1e-12)
	assert.Equal(t, d.Scale(-1), pairDirection(7, 3))
}

func TestRelaxConvergesWithoutTopologyChange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Damping = 0.5
	cfg.Spring = 1
	cfg.Repulsion = 0.5
	cfg.Gravity = 0
	cfg.Cutoff = 0
	l := New(cfg)
	n := pair(t)

	for range 20 {
		l.Relax(n, 0)
	}
	first := l.Relax(n, 0).MaxDisplacement
	prev := first
	for tick := 0; tick < 30; tick++ {
		cur := l.Relax(n, 0).MaxDisplacement
		assert.LessOrEqual(t, cur, prev*(1+1e-6), "tick %d", tick)
		prev = cur
	}
	assert.Less(t, prev, first/10)

	ids := n.IDs()
	pa, _ := l.Position(ids[0])
	pb, _ := l.Position(ids[1])
	assert.InDelta(t, cfg.RestLength, pa.Sub(pb).Len(), 0.2)
}

func TestParallelForcesMatchSerial(t *testing.T) {
	build := func(workers int) (*Layout, *inet.Net) {
		cfg := DefaultConfig()
		cfg.Workers = workers
		n, err := nets.Random(40, 5)
		require.NoError(t, err)
		return New(cfg), n
	}
	serial, n1 := build(1)
	parallel, n2 := build(4)
	for range 10 {
		serial.Relax(n1, 0)
		parallel.Relax(n2, 0)
	}
	for _, id := range n1.IDs() {
		a, _ := serial.Body(id)
		b, ok := parallel.Body(id)
		require.True(t, ok)
		assert.Equal(t, a, b)
	}
}

func TestResetDropsBodies(t *testing.T) {
	l := New(DefaultConfig())
	n, err := nets.DupTree(2)
	require.NoError(t, err)
	l.Relax(n, 0)
	assert.Equal(t, n.Len(), l.Len())
	l.Reset()
	assert.Zero(t, l.Len())
}

func TestSanitizedConfig(t *testing.T) {
	c := Config{Substeps: -1, Damping: 3, Cutoff: -4}.sanitized()
	d := DefaultConfig()
	assert.Equal(t, 1, c.Substeps)
	assert.Equal(t, d.Damping, c.Damping)
	assert.Equal(t, d.DT, c.DT)
	assert.Equal(t, d.Mass, c.Mass)
	assert.Zero(t, c.Cutoff)
	assert.Equal(t, 1, c.Workers)
}
