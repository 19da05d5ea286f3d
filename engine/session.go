package engine

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/physics"
	"github.com/lixenwraith/open-roads/status"
)

// Outcome is the result of one attempt at a level
type Outcome int

const (
	Running Outcome = iota
	Won
	Crashed
	Stranded
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "Running"
	case Won:
		return "Won"
	case Crashed:
		return "Crashed"
	case Stranded:
		return "Stranded"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the attempt has ended
func (o Outcome) Terminal() bool {
	return o != Running
}

// fallOffY is the height below which a craft is abandoned immediately
const fallOffY = -10

// Session runs attempts at one level, deciding when an attempt is over
type Session struct {
	level    *level.Level
	simOpts  []physics.Option
	log      *logrus.Entry
	fadeStep int

	sim      *physics.Simulation
	last     physics.GameSnapshot
	outcome  Outcome
	fading   int
	attempts int

	statAttempts *atomic.Int64
	statOutcome  *status.AtomicString
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithSimulationOptions passes opts to every simulation the session builds
func WithSimulationOptions(opts ...physics.Option) SessionOption {
	return func(s *Session) { s.simOpts = append(s.simOpts, opts...) }
}

// WithSessionLogger logs attempt outcomes to e
func WithSessionLogger(e *logrus.Entry) SessionOption {
	return func(s *Session) { s.log = e }
}

// WithFadeSteps sets how many steps a wrecked or stranded craft lingers before the attempt ends
func WithFadeSteps(n int) SessionOption {
	return func(s *Session) {
		if n >= 0 {
			s.fadeStep = n
		}
	}
}

// WithSessionStatus publishes the attempt count and outcome to reg
func WithSessionStatus(reg *status.Registry) SessionOption {
	return func(s *Session) {
		s.statAttempts = reg.Int(status.KeyAttempts)
		s.statOutcome = reg.Text(status.KeyOutcome)
	}
}

// NewSession starts the first attempt at lvl
func NewSession(lvl *level.Level, opts ...SessionOption) *Session {
	s := &Session{
		level:    lvl,
		fadeStep: DefaultTickRate,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Restart()
	return s
}

// Restart discards the current attempt and builds a fresh simulation
func (s *Session) Restart() {
	s.sim = physics.NewSimulation(s.level, s.simOpts...)
	s.last = s.sim.Snapshot()
	s.outcome = Running
	s.fading = 0
	s.attempts++
	s.publish()
	if s.log != nil {
		s.log.WithFields(logrus.Fields{"level": s.level.Name, "attempt": s.attempts}).Debug("attempt started")
	}
}

// RunFrame steps the current attempt once; a finished attempt is not stepped
// and returns its final snapshot
func (s *Session) RunFrame() physics.GameSnapshot {
	if s.outcome.Terminal() {
		return s.last
	}
	s.last = s.sim.RunFrame()
	s.judge()
	return s.last
}

func (s *Session) judge() {
	snap := s.last
	switch {
	case snap.DidWin:
		s.finish(Won)
	case snap.Position.Z() >= float64(s.level.Length()):
		// past the last row without entering the finish tunnel
		s.finish(Crashed)
	case snap.Position.Y() < fallOffY:
		s.finish(Crashed)
	case snap.CraftState == physics.Exploded:
		if s.fade() {
			s.finish(Crashed)
		}
	case snap.CraftState == physics.OutOfFuel || snap.CraftState == physics.OutOfOxygen:
		if s.fade() {
			s.finish(Stranded)
		}
	}
}

func (s *Session) fade() bool {
	s.fading++
	return s.fading >= s.fadeStep
}

func (s *Session) publish() {
	if s.statAttempts != nil {
		s.statAttempts.Store(int64(s.attempts))
		s.statOutcome.Store(s.outcome.String())
	}
}

func (s *Session) finish(o Outcome) {
	s.outcome = o
	s.publish()
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"level":   s.level.Name,
			"attempt": s.attempts,
			"outcome": o.String(),
			"frame":   s.last.Frame,
			"z":       s.last.Position.Z(),
		}).Info("attempt finished")
	}
}

// Outcome returns the state of the current attempt
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Attempts returns how many attempts have been started, including the current one
func (s *Session) Attempts() int {
	return s.attempts
}

// Simulation returns the simulation of the current attempt
func (s *Session) Simulation() *physics.Simulation {
	return s.sim
}

// Level returns the level being attempted
func (s *Session) Level() *level.Level {
	return s.level
}

// Snapshot returns the most recent snapshot of the current attempt
func (s *Session) Snapshot() physics.GameSnapshot {
	return s.last
}
