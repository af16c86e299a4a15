// Package engine drives the reduction of interaction nets one rewrite at a
// time.
package engine

import (
	"context"
	"errors"
	"fmt"

	"lafont/pkg/inet"
)

// ErrStepLimit is returned by Reduce when the net is still reducible after
// the allowed number of steps.
var ErrStepLimit = errors.New("step limit reached")

// State is the reduction state of a net.
type State uint8

const (
	// Reducible nets have at least one active pair.
	Reducible State = iota
	// Normal nets have none. It is a terminal state.
	Normal
)

func (s State) String() string {
	if s == Normal {
		return "normal"
	}
	return "reducible"
}

// StateOf reports whether n is reducible or in normal form.
func StateOf(n *inet.Net) State {
	if n.Reducible() {
		return Reducible
	}
	return Normal
}

// Hooks are called synchronously from Step.
type Hooks struct {
	OnRewrite func(inet.Rewrite)
	// OnNormal is called every time Step finds no active pair.
	OnNormal func()
}

// Stats counts the rewrites applied by an engine.
type Stats struct {
	Steps         int
	Annihilations int
	Duplications  int
}

// Result summarises a StepN call.
type Result struct {
	Applied int
	// Remaining is the part of the requested budget left unused because the
	// net reached normal form.
	Remaining int
	Normal    bool
	Rewrites  []inet.Rewrite
}

// Engine selects active pairs and applies the matching rule.
type Engine struct {
	strategy Strategy
	hooks    Hooks
	validate bool
	stats    Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy sets the redex selection strategy.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithHooks installs observer callbacks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithValidation makes every step check the whole net's port invariant.
func WithValidation(on bool) Option {
	return func(e *Engine) { e.validate = on }
}

// New returns an Engine using StrategyPriority unless configured otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{strategy: StrategyPriority}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the configured selection strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Stats returns the counters accumulated since New or the last ResetStats.
func (e *Engine) Stats() Stats { return e.stats }

// ResetStats zeroes the counters.
func (e *Engine) ResetStats() { e.stats = Stats{} }

// Step rewrites one active pair of n in place. It returns inet.ErrNoRedex when
// n is in normal form; any other error means the net is corrupt.
func (e *Engine) Step(n *inet.Net) (inet.Rewrite, error) {
	r, ok := e.strategy.pick(n)
	if !ok {
		if e.hooks.OnNormal != nil {
			e.hooks.OnNormal()
		}
		return inet.Rewrite{}, inet.ErrNoRedex
	}
	rw, err := n.Apply(r.A, r.B)
	if err != nil {
		return rw, err
	}
	if e.validate {
		if err := n.Validate(); err != nil {
			return rw, fmt.Errorf("after %s of %d and %d: %w", rw.Rule, rw.A, rw.B, err)
		}
	}

	e.stats.Steps++
	switch rw.Rule {
	case inet.RuleAnnihilation:
		e.stats.Annihilations++
	case inet.RuleDuplication:
		e.stats.Duplications++
	}
	if e.hooks.OnRewrite != nil {
		e.hooks.OnRewrite(rw)
	}
	return rw, nil
}

// StepN applies up to count steps, stopping early at normal form.
func (e *Engine) StepN(n *inet.Net, count int) (Result, error) {
	var res Result
	for i := 0; i < count; i++ {
		rw, err := e.Step(n)
		if errors.Is(err, inet.ErrNoRedex) {
			res.Normal = true
			res.Remaining = count - i
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res.Applied++
		res.Rewrites = append(res.Rewrites, rw)
	}
	res.Normal = !n.Reducible()
	return res, nil
}

// Reduce steps n until normal form. A positive limit bounds the number of
// steps; it returns the number of steps applied.
func (e *Engine) Reduce(ctx context.Context, n *inet.Net, limit int) (int, error) {
	steps := 0
	for {
		if steps%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return steps, err
			}
		}
		if limit > 0 && steps >= limit {
			if !n.Reducible() {
				return steps, nil
			}
			return steps, fmt.Errorf("%w after %d steps", ErrStepLimit, steps)
		}
		_, err := e.Step(n)
		if errors.Is(err, inet.ErrNoRedex) {
			return steps, nil
		}
		if err != nil {
			return steps, err
		}
		steps++
	}
}
