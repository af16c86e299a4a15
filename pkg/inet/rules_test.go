package inet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnihilationJoinsFreePorts(t *testing.T) {
	n := New()
	a, b := n.Add(Constructor), n.Add(Constructor)
	fa, fb := n.AddFree(), n.AddFree()
	link(t, n, principal(a), principal(b))
	link(t, n, aux(a, 1), fa)
	link(t, n, aux(b, 1), fb)
	link(t, n, aux(a, 2), aux(b, 2))
	require.NoError(t, n.Validate())

	rw, err := n.Annihilate(a, b)
	require.NoError(t, err)
	assert.Equal(t, RuleAnnihilation, rw.Rule)
	assert.Empty(t, rw.Created)

	assert.Equal(t, 0, n.Len())
	assert.Equal(t, []Wire{NewWire(fa, fb)}, n.Wires())
	assert.False(t, n.Reducible())
	require.NoError(t, n.Validate())
}

func TestAnnihilationPairsAuxPortsByIndex(t *testing.T) {
	for _, k := range []Kind{Constructor, Duplicator} {
		t.Run(k.String(), func(t *testing.T) {
			n := New()
			a, b := n.Add(k), n.Add(k)
			x1, x2 := n.Add(Eraser), n.Add(Eraser)
			y1, y2 := n.Add(Eraser), n.Add(Eraser)
			link(t, n, principal(a), principal(b))
			link(t, n, aux(a, 1), principal(x1))
			link(t, n, aux(a, 2), principal(x2))
			link(t, n, aux(b, 1), principal(y1))
			link(t, n, aux(b, 2), principal(y2))
			before := n.Len()

			_, err := n.Annihilate(a, b)
			require.NoError(t, err)
			require.NoError(t, n.Validate())

			assert.Equal(t, before-2, n.Len())
			// the two aux wires of each side survive, re-paired by index
			assert.Len(t, n.Wires(), 2)
			assert.True(t, n.IsRedex(x1, y1))
			assert.True(t, n.IsRedex(x2, y2))
		})
	}
}

func TestAnnihilationFollowsWiresThroughThePair(t *testing.T) {
	n := New()
	a, b := n.Add(Duplicator), n.Add(Duplicator)
	f0, f1 := n.AddFree(), n.AddFree()
	link(t, n, principal(a), principal(b))
	link(t, n, aux(a, 1), aux(b, 2))
	link(t, n, aux(a, 2), f0)
	link(t, n, aux(b, 1), f1)

	_, err := n.Annihilate(a, b)
	require.NoError(t, err)
	require.NoError(t, n.Validate())
	assert.Equal(t, []Wire{NewWire(f0, f1)}, n.Wires())
}

func TestAnnihilationDropsClosedLoops(t *testing.T) {
	n := New()
	a, b := n.Add(Constructor), n.Add(Constructor)
	link(t, n, principal(a), principal(b))
	link(t, n, aux(a, 1), aux(b, 1))
	link(t, n, aux(a, 2), aux(b, 2))

	_, err := n.Annihilate(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, n.Len())
	assert.Empty(t, n.Wires())
}

func TestDuplicationOfConstructorAndDuplicator(t *testing.T) {
	n := New()
	c, d := n.Add(Constructor), n.Add(Duplicator)
	f := []Port{n.AddFree(), n.AddFree(), n.AddFree(), n.AddFree()}
	link(t, n, principal(c), principal(d))
	link(t, n, aux(c, 1), f[0])
	link(t, n, aux(c, 2), f[1])
	link(t, n, aux(d, 1), f[2])
	link(t, n, aux(d, 2), f[3])

	rw, err := n.Duplicate(c, d)
	require.NoError(t, err)
	require.NoError(t, n.Validate())
	assert.Equal(t, RuleDuplication, rw.Rule)
	require.Len(t, rw.Created, 4)

	counts := map[Kind]int{}
	for _, ag := range n.Agents() {
		counts[ag.Kind]++
		assert.Equal(t, [2]AgentID{c, d}, ag.Parents)
	}
	assert.Equal(t, map[Kind]int{Constructor: 2, Duplicator: 2}, counts)
	assert.False(t, n.Has(c))
	assert.False(t, n.Has(d))

	// every free port now meets a fresh principal port
	for i, p := range f {
		q, ok := n.Peer(p)
		require.True(t, ok)
		require.True(t, q.IsPrincipal())
		ag, _ := n.Agent(q.Agent)
		if i < 2 {
			assert.Equal(t, Duplicator, ag.Kind, "free port %d", i)
		} else {
			assert.Equal(t, Constructor, ag.Kind, "free port %d", i)
		}
	}
	assert.False(t, n.Reducible())

	// the copies are cross-wired aux to aux
	for _, ag := range n.Agents() {
		for s := 1; s <= 2; s++ {
			peer := ag.Peer(s)
			other, ok := n.Agent(peer.Agent)
			require.True(t, ok)
			assert.NotEqual(t, ag.Kind, other.Kind)
			assert.Equal(t, ag.ID, other.Peer(peer.Slot).Agent)
		}
	}
}

func TestDuplicationWithEraser(t *testing.T) {
	for _, eraserFirst := range []bool{false, true} {
		n := New()
		var c, e AgentID
		if eraserFirst {
			e, c = n.Add(Eraser), n.Add(Constructor)
		} else {
			c, e = n.Add(Constructor), n.Add(Eraser)
		}
		f0, f1 := n.AddFree(), n.AddFree()
		link(t, n, principal(c), principal(e))
		link(t, n, aux(c, 1), f0)
		link(t, n, aux(c, 2), f1)

		rw, err := n.Apply(min(c, e), max(c, e))
		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Len(t, rw.Created, 2)

		for _, ag := range n.Agents() {
			assert.Equal(t, Eraser, ag.Kind)
		}
		for _, f := range []Port{f0, f1} {
			q, ok := n.Peer(f)
			require.True(t, ok)
			assert.True(t, q.IsPrincipal())
		}
	}
}

func TestDuplicationMapsWiresBetweenThePair(t *testing.T) {
	n := New()
	c, d := n.Add(Constructor), n.Add(Duplicator)
	f0, f1 := n.AddFree(), n.AddFree()
	link(t, n, principal(c), principal(d))
	link(t, n, aux(c, 1), aux(d, 1))
	link(t, n, aux(c, 2), f0)
	link(t, n, aux(d, 2), f1)

	_, err := n.Duplicate(c, d)
	require.NoError(t, err)
	require.NoError(t, n.Validate())
	assert.Equal(t, 4, n.Len())

	var redexes []Redex
	for r := range n.Redexes() {
		redexes = append(redexes, r)
	}
	require.Len(t, redexes, 1)
	x, _ := n.Agent(redexes[0].A)
	y, _ := n.Agent(redexes[0].B)
	assert.NotEqual(t, x.Kind, y.Kind)
}

func TestRulesRejectInvalidPairs(t *testing.T) {
	n := New()
	c1, c2 := n.Add(Constructor), n.Add(Constructor)
	d := n.Add(Duplicator)
	link(t, n, principal(c1), principal(c2))
	link(t, n, principal(d), aux(c1, 1))

	_, err := n.Duplicate(c1, c2)
	assert.ErrorIs(t, err, ErrStructuralViolation)
	_, err = n.Annihilate(c1, d)
	assert.ErrorIs(t, err, ErrStructuralViolation)
	_, err = n.Duplicate(c1, d)
	assert.ErrorIs(t, err, ErrStructuralViolation)
	_, err = n.Apply(c1, 42)
	assert.ErrorIs(t, err, ErrStructuralViolation)

	assert.Equal(t, 3, n.Len())
}
