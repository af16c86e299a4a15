package engine

import (
	"fmt"

	"lafont/pkg/inet"
)

// Strategy picks which active pair is rewritten next. The rule set is
// confluent, so the choice only changes the path, not the normal form.
type Strategy uint8

const (
	// StrategyPriority fires eraser pairs first, then other erasures, then
	// annihilations and finally duplications. Ties go to the lowest id.
	StrategyPriority Strategy = iota
	// StrategyLowest fires the first redex of the enumeration.
	StrategyLowest
	// StrategyHighest fires the last redex of the enumeration.
	StrategyHighest
)

var strategyNames = map[Strategy]string{
	StrategyPriority: "priority",
	StrategyLowest:   "lowest",
	StrategyHighest:  "highest",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy maps a config name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// priority ranks an active pair; lower fires first.
func priority(a, b inet.Kind) int {
	switch {
	case a == inet.Eraser && b == inet.Eraser:
		return 0
	case a == inet.Eraser || b == inet.Eraser:
		return 1
	case a == b:
		return 2
	default:
		return 3
	}
}

func (s Strategy) pick(n *inet.Net) (inet.Redex, bool) {
	var (
		best  inet.Redex
		rank  = -1
		found bool
	)
	for r := range n.Redexes() {
		switch s {
		case StrategyLowest:
			return r, true
		case StrategyHighest:
			best, found = r, true
		default:
			x, _ := n.Agent(r.A)
			y, _ := n.Agent(r.B)
			p := priority(x.Kind, y.Kind)
			if !found || p < rank {
				best, rank, found = r, p, true
			}
			if p == 0 {
				return best, true
			}
		}
	}
	return best, found
}
