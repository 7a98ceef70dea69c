// Package clock runs a simulation at a fixed step independent of the frame
// rate.
package clock

import "time"

// DefaultMaxSteps bounds the catch-up steps run in one frame.
const DefaultMaxSteps = 240

// Accumulator collects frame time and spends it in fixed steps.
type Accumulator struct {
	Step time.Duration
	// MaxSteps <= 0 means DefaultMaxSteps.
	MaxSteps int

	pending time.Duration
	total   uint64
}

func New(step time.Duration) *Accumulator {
	return &Accumulator{Step: step, MaxSteps: DefaultMaxSteps}
}

// NewHz returns an accumulator stepping hz times per second. A rate of 0
// or less gives an accumulator that never steps.
func NewHz(hz int) *Accumulator {
	if hz <= 0 {
		return New(0)
	}
	return New(time.Second / time.Duration(hz))
}

// Advance adds elapsed to the pending time and calls update once per whole
// step it covers, with the step in seconds. When more than MaxSteps steps
// are due, only MaxSteps run and the rest of the backlog is dropped.
func (a *Accumulator) Advance(elapsed time.Duration, update func(dt float64)) (steps int, dropped bool) {
	if a.Step <= 0 {
		return 0, false
	}
	if elapsed > 0 {
		a.pending += elapsed
	}

	limit := a.MaxSteps
	if limit <= 0 {
		limit = DefaultMaxSteps
	}

	steps = int(a.pending / a.Step)
	if steps > limit {
		steps = limit
		dropped = true
	}

	dt := a.Step.Seconds()
	for i := 0; i < steps; i++ {
		update(dt)
	}

	if dropped {
		a.pending = 0
	} else {
		a.pending -= time.Duration(steps) * a.Step
	}
	a.total += uint64(steps)
	return steps, dropped
}

// Pending returns the time not yet spent on a step.
func (a *Accumulator) Pending() time.Duration {
	return a.pending
}

// Alpha returns how far the pending time is into the next step, in [0, 1).
func (a *Accumulator) Alpha() float64 {
	if a.Step <= 0 {
		return 0
	}
	return float64(a.pending) / float64(a.Step)
}

// Total returns the number of steps run so far.
func (a *Accumulator) Total() uint64 {
	return a.total
}

func (a *Accumulator) Reset() {
	a.pending = 0
}
