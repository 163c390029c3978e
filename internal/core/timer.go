package core

import "time"

// DefaultMaxLag bounds how far the wall clock may run ahead of the simulation
// before the backlog is dropped.
const DefaultMaxLag = 500 * time.Millisecond

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxLag      time.Duration

	now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{maxLag: DefaultMaxLag, now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// SetMaxLag changes the catch-up clamp. Zero or negative disables clamping.
func (f *FixedStep) SetMaxLag(d time.Duration) { f.maxLag = d }

// ShouldStep reports whether the simulation should advance by one tick.
// Calling it repeatedly drains the backlog one tick at a time; a backlog
// larger than the max lag is discarded so a stalled process does not replay
// a storm of ticks.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.maxLag > 0 && f.accumulator > f.maxLag {
		f.accumulator = f.maxLag
	}
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Step returns the tick duration.
func (f *FixedStep) Step() time.Duration { return f.step }
