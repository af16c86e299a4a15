package core

import (
	"context"
	"time"
)

// FixedStep paces a loop at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
// A non-positive rate falls back to 60.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether a tick is due and consumes it.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		// a stalled caller does not get a burst of catch-up ticks
		f.accumulator = min(f.accumulator, f.step)
		return true
	}
	return false
}

// Wait blocks until the next tick is due or ctx is done.
func (f *FixedStep) Wait(ctx context.Context) error {
	for !f.ShouldStep() {
		t := time.NewTimer(f.step - f.accumulator)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return ctx.Err()
}
