package inet

import "fmt"

// Kind enumerates the three interaction combinators.
type Kind uint8

const (
	// Constructor is the binary alpha agent.
	Constructor Kind = iota
	// Duplicator is the binary delta agent.
	Duplicator
	// Eraser is the nullary epsilon agent.
	Eraser
)

var kindNames = [...]string{
	Constructor: "constructor",
	Duplicator:  "duplicator",
	Eraser:      "eraser",
}

var kindSymbols = [...]string{
	Constructor: "c",
	Duplicator:  "d",
	Eraser:      "e",
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Symbol returns the one-letter name used in signatures and debug dumps.
func (k Kind) Symbol() string {
	if !k.Valid() {
		return "?"
	}
	return kindSymbols[k]
}

// Valid reports whether k is one of the three combinators.
func (k Kind) Valid() bool { return k <= Eraser }

// Arity returns the number of auxiliary ports.
func (k Kind) Arity() int {
	if k == Eraser {
		return 0
	}
	return 2
}

// ParseKind accepts the long name or the one-letter symbol.
func ParseKind(s string) (Kind, error) {
	for k := Constructor; k <= Eraser; k++ {
		if s == kindNames[k] || s == kindSymbols[k] {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown agent kind %q", s)
}

// Rule identifies one of the two rewrite rules.
type Rule uint8

const (
	// RuleAnnihilation fires between agents of the same kind.
	RuleAnnihilation Rule = iota + 1
	// RuleDuplication fires between agents of different kinds.
	RuleDuplication
)

func (r Rule) String() string {
	switch r {
	case RuleAnnihilation:
		return "annihilation"
	case RuleDuplication:
		return "duplication"
	default:
		return "unknown"
	}
}

// RuleFor reports which rule fires when agents of kinds a and b meet
// principal to principal.
func RuleFor(a, b Kind) Rule {
	if a == b {
		return RuleAnnihilation
	}
	return RuleDuplication
}
