package physics

import (
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/open-roads/event"
	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
)

// winMargin is how far short of the last row the finish line sits
const winMargin = 0.5

// Simulation owns one craft flying one level
// Not safe for concurrent use; the Level may be shared between simulations
type Simulation struct {
	level      *level.Level
	notifier   *event.Notifier
	controller input.Controller
	tracer     *logrus.Entry

	initial  Ship
	current  Ship
	expected Ship

	frame  uint64
	didWin bool
}

// Option configures a Simulation
type Option func(*Simulation)

// WithNotifier routes events to n
func WithNotifier(n *event.Notifier) Option {
	return func(s *Simulation) { s.notifier = n }
}

// WithController sets the input source sampled by RunFrame
func WithController(c input.Controller) Option {
	return func(s *Simulation) { s.controller = c }
}

// WithTracer logs kinematics to e: every step at trace, craft state changes
// at info and jump assist engagement at debug
func WithTracer(e *logrus.Entry) Option {
	return func(s *Simulation) { s.tracer = e }
}

// WithShip starts from a custom craft state instead of the level start
func WithShip(ship Ship) Option {
	return func(s *Simulation) { s.initial = ship }
}

// NewSimulation places a fresh craft at the start of lvl
func NewSimulation(lvl *level.Level, opts ...Option) *Simulation {
	s := &Simulation{
		level:   lvl,
		initial: NewShip(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset restores the initial craft and clears the frame counter and win flag
func (s *Simulation) Reset() {
	s.current = s.initial
	s.expected = s.initial
	s.frame = 0
	s.didWin = false
}

// RunFrame samples the controller and steps once
// A simulation without a controller flies with neutral input
func (s *Simulation) RunFrame() GameSnapshot {
	cs := input.Neutral
	if s.controller != nil {
		cs = s.controller.Update(&s.current)
	}
	return s.Step(cs)
}

// Step advances exactly one fixed frame with the given input
func (s *Simulation) Step(cs input.ControllerState) GameSnapshot {
	prevState := s.current.State
	prevAssist := s.current.JumpOMasterInUse

	s.current.update(s.level, &s.expected, cs, s.notifier)
	s.frame++

	if s.current.Z >= float64(s.level.Length())-winMargin &&
		s.level.IsInsideTunnel(s.current.X, s.current.Y, s.current.Z) {
		s.didWin = true
	}

	if s.tracer != nil {
		s.trace(prevState, prevAssist)
	}

	return newSnapshot(&s.current, s.frame, s.didWin)
}

func (s *Simulation) trace(prevState State, prevAssist bool) {
	c := &s.current
	fields := logrus.Fields{
		"frame": s.frame,
		"x":     c.X,
		"y":     c.Y,
		"z":     c.Z,
		"zv":    c.ZVelocity,
		"state": c.State.String(),
	}
	if c.State != prevState {
		s.tracer.WithFields(fields).WithField("from", prevState.String()).Info("craft state changed")
	}
	if c.JumpOMasterInUse && !prevAssist {
		s.tracer.WithFields(fields).WithField("delta", c.JumpOMasterVelocityDelta).Debug("jump assist engaged")
	}
	s.tracer.WithFields(fields).Trace("step")
}

// Snapshot captures the current state without stepping
func (s *Simulation) Snapshot() GameSnapshot {
	return newSnapshot(&s.current, s.frame, s.didWin)
}

// Ship returns a copy of the authoritative craft state
func (s *Simulation) Ship() Ship {
	return s.current
}

// Expected returns a copy of the unconstrained target from the last frame
func (s *Simulation) Expected() Ship {
	return s.expected
}

// Level returns the level being flown
func (s *Simulation) Level() *level.Level {
	return s.level
}

// Frame returns the number of frames stepped since the last reset
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// DidWin reports whether the craft has reached the finish tunnel
func (s *Simulation) DidWin() bool {
	return s.didWin
}
