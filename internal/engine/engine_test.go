package engine

import (
	"context"
	"testing"

	"lafont/pkg/inet"
	"lafont/pkg/nets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategies = []Strategy{StrategyPriority, StrategyLowest, StrategyHighest}

func TestStepAnnihilationScenario(t *testing.T) {
	n, err := nets.Annihilate()
	require.NoError(t, err)
	e := New(WithValidation(true))
	assert.Equal(t, Reducible, StateOf(n))

	rw, err := e.Step(n)
	require.NoError(t, err)
	assert.Equal(t, inet.RuleAnnihilation, rw.Rule)
	assert.Equal(t, 0, n.Len())
	assert.Len(t, n.Wires(), 1)
	assert.Equal(t, Normal, StateOf(n))

	_, err = e.Step(n)
	assert.ErrorIs(t, err, inet.ErrNoRedex)
	assert.Equal(t, Stats{Steps: 1, Annihilations: 1}, e.Stats())

	e.ResetStats()
	assert.Equal(t, Stats{}, e.Stats())
}

func TestStepDuplicationScenario(t *testing.T) {
	n, err := nets.Commute()
	require.NoError(t, err)
	e := New(WithValidation(true))

	rw, err := e.Step(n)
	require.NoError(t, err)
	assert.Equal(t, inet.RuleDuplication, rw.Rule)
	assert.Len(t, rw.Created, 4)

	counts := map[inet.Kind]int{}
	for _, a := range n.Agents() {
		counts[a.Kind]++
	}
	assert.Equal(t, 2, counts[inet.Constructor])
	assert.Equal(t, 2, counts[inet.Duplicator])
	assert.Len(t, n.FreePorts(), 4)
	require.NoError(t, n.Validate())
	assert.Equal(t, Normal, StateOf(n))
}

func TestStepNReportsRemainingBudget(t *testing.T) {
	n, err := nets.EraseTree(2)
	require.NoError(t, err)
	e := New()

	res, err := e.StepN(n, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Applied)
	assert.Zero(t, res.Remaining)
	assert.False(t, res.Normal)
	assert.Len(t, res.Rewrites, 3)

	// seven interactions in total: the root, two children and four leaves
	res, err = e.StepN(n, 100)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Applied)
	assert.Equal(t, 96, res.Remaining)
	assert.True(t, res.Normal)
	assert.Zero(t, n.Len())

	res, err = e.StepN(n, 5)
	require.NoError(t, err)
	assert.Zero(t, res.Applied)
	assert.Equal(t, 5, res.Remaining)
	assert.True(t, res.Normal)
}

func TestHooksObserveEveryRewrite(t *testing.T) {
	n, err := nets.DupTree(2)
	require.NoError(t, err)
	var rewrites, normals int
	e := New(WithHooks(Hooks{
		OnRewrite: func(rw inet.Rewrite) {
			rewrites++
			assert.NotZero(t, rw.A)
		},
		OnNormal: func() { normals++ },
	}))

	steps, err := e.Reduce(context.Background(), n, 0)
	require.NoError(t, err)
	assert.Equal(t, steps, rewrites)
	assert.Equal(t, 1, normals)
	assert.Equal(t, steps, e.Stats().Steps)
	assert.Equal(t, e.Stats().Steps, e.Stats().Annihilations+e.Stats().Duplications)
}

func TestReduceHonoursLimitAndContext(t *testing.T) {
	n, err := nets.DupTree(4)
	require.NoError(t, err)
	steps, err := New().Reduce(context.Background(), n, 5)
	assert.ErrorIs(t, err, ErrStepLimit)
	assert.Equal(t, 5, steps)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	steps, err = New().Reduce(ctx, n, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, steps)

	// a limit that is exactly enough is not an error
	n, err = nets.Commute()
	require.NoError(t, err)
	steps, err = New().Reduce(context.Background(), n, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)
}

func TestNormalFormIsIndependentOfStrategy(t *testing.T) {
	type program struct {
		name  string
		build func() (*inet.Net, error)
	}
	programs := []program{
		{"annihilate", nets.Annihilate},
		{"commute", nets.Commute},
		{"dup-tree", func() (*inet.Net, error) { return nets.DupTree(3) }},
		{"erase-tree", func() (*inet.Net, error) { return nets.EraseTree(3) }},
	}
	for seed := int64(1); seed <= 30; seed++ {
		programs = append(programs, program{"random", func() (*inet.Net, error) { return nets.Random(10, seed) }})
	}

	for _, p := range programs {
		initial, err := p.build()
		require.NoError(t, err)

		var (
			signatures []string
			lengths    []int
		)
		for _, s := range strategies {
			n := initial.Clone()
			steps, err := New(WithStrategy(s), WithValidation(true)).Reduce(context.Background(), n, 2000)
			if err != nil {
				require.ErrorIs(t, err, ErrStepLimit, p.name)
				break
			}
			signatures = append(signatures, n.Canonical())
			lengths = append(lengths, steps)
		}
		if len(signatures) != len(strategies) {
			// no normal form within the limit; nothing to compare
			continue
		}
		for i := 1; i < len(signatures); i++ {
			assert.Equal(t, signatures[0], signatures[i], "%s: %s vs %s", p.name, strategies[0], strategies[i])
			assert.Equal(t, lengths[0], lengths[i], "%s: path length", p.name)
		}
	}
}

func TestStrategyPick(t *testing.T) {
	n := inet.New()
	add := func(x, y inet.Kind) {
		a, b := n.Add(x), n.Add(y)
		require.NoError(t, n.Link(inet.Port{Agent: a}, inet.Port{Agent: b}))
	}
	add(inet.Constructor, inet.Duplicator)  // 1,2
	add(inet.Eraser, inet.Eraser)           // 3,4
	add(inet.Constructor, inet.Constructor) // 5,6

	r, ok := StrategyPriority.pick(n)
	require.True(t, ok)
	assert.Equal(t, inet.Redex{A: 3, B: 4}, r)
	r, _ = StrategyLowest.pick(n)
	assert.Equal(t, inet.Redex{A: 1, B: 2}, r)
	r, _ = StrategyHighest.pick(n)
	assert.Equal(t, inet.Redex{A: 5, B: 6}, r)

	_, ok = StrategyLowest.pick(inet.New())
	assert.False(t, ok)
}

func TestParseStrategy(t *testing.T) {
	for _, s := range strategies {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStrategy("random")
	assert.Error(t, err)
}
