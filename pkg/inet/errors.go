package inet

import "errors"

// ErrStructuralViolation is returned when a rewrite or a link would break the
// wiring invariants of a net. It indicates a bug in the caller.
var ErrStructuralViolation = errors.New("structural violation")

// ErrNoRedex is returned when a net has no active pair left. Reaching it is the
// normal end of a reduction.
var ErrNoRedex = errors.New("no redex available")
