package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/open-roads/physics"
	"github.com/lixenwraith/open-roads/status"
)

const (
	// DefaultTickRate is the physics rate of the original game
	DefaultTickRate = 30
	// DefaultMaxCatchUp is the backlog, in steps, at which pending time is dropped
	DefaultMaxCatchUp = 3
)

// Stepper is advanced once per fixed physics step
// Both *physics.Simulation and *Session satisfy it
type Stepper interface {
	RunFrame() physics.GameSnapshot
}

// FrameDriver converts rendered frames of arbitrary length into fixed physics steps
// Not safe for concurrent use; call Frame from the render loop only
type FrameDriver struct {
	stepper  Stepper
	clock    TimeProvider
	provider SnapshotProvider

	step       time.Duration
	maxCatchUp int

	last    time.Time
	pending time.Duration
	hasRun  bool

	steps uint64

	statSteps   *atomic.Int64
	statDropped *atomic.Int64
}

// DriverOption configures a FrameDriver
type DriverOption func(*FrameDriver)

// WithTickRate sets the number of physics steps per second
func WithTickRate(hz int) DriverOption {
	return func(d *FrameDriver) {
		if hz > 0 {
			d.step = time.Second / time.Duration(hz)
		}
	}
}

// WithMaxCatchUp sets the backlog at which pending time collapses to a single step
func WithMaxCatchUp(steps int) DriverOption {
	return func(d *FrameDriver) {
		if steps > 0 {
			d.maxCatchUp = steps
		}
	}
}

// WithProvider pushes every stepped snapshot into p
func WithProvider(p SnapshotProvider) DriverOption {
	return func(d *FrameDriver) { d.provider = p }
}

// WithStatus publishes step and dropped-step counters to reg
func WithStatus(reg *status.Registry) DriverOption {
	return func(d *FrameDriver) {
		d.statSteps = reg.Int(status.KeySteps)
		d.statDropped = reg.Int(status.KeyDropped)
	}
}

// NewFrameDriver creates a driver that starts accumulating from clock's current time
func NewFrameDriver(stepper Stepper, clock TimeProvider, opts ...DriverOption) *FrameDriver {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	d := &FrameDriver{
		stepper:    stepper,
		clock:      clock,
		step:       time.Second / DefaultTickRate,
		maxCatchUp: DefaultMaxCatchUp,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.last = clock.Now()
	return d
}

// Frame accounts for the time since the previous call and runs the physics
// steps that are due, returning how many ran
// A backlog of maxCatchUp steps or more is dropped to one step; the very
// first call always runs one step
func (d *FrameDriver) Frame() int {
	now := d.clock.Now()
	d.pending += now.Sub(d.last)
	d.last = now

	if d.pending >= d.step*time.Duration(d.maxCatchUp) {
		if d.statDropped != nil {
			d.statDropped.Add(int64(d.pending/d.step) - 1)
		}
		d.pending = d.step
	}
	if d.pending < d.step && !d.hasRun {
		d.pending = d.step
	}
	d.hasRun = true

	n := 0
	for d.pending >= d.step {
		snap := d.stepper.RunFrame()
		if d.provider != nil {
			d.provider.Push(snap)
		}
		d.pending -= d.step
		n++
	}
	d.steps += uint64(n)
	if d.statSteps != nil {
		d.statSteps.Store(int64(d.steps))
	}
	return n
}

// Step returns the fixed physics step length
func (d *FrameDriver) Step() time.Duration {
	return d.step
}

// Steps returns the total number of physics steps run
func (d *FrameDriver) Steps() uint64 {
	return d.steps
}

// Pending returns accumulated time not yet consumed by a step
func (d *FrameDriver) Pending() time.Duration {
	return d.pending
}
