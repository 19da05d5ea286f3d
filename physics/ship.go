package physics

import "github.com/lixenwraith/open-roads/level"

// State is the craft lifecycle; only Alive accepts control input
type State int

const (
	Alive State = iota
	Exploded
	OutOfFuel
	OutOfOxygen
)

var stateNames = [...]string{
	Alive:       "Alive",
	Exploded:    "Exploded",
	OutOfFuel:   "OutOfFuel",
	OutOfOxygen: "OutOfOxygen",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Start-of-level values
const (
	StartX = 0x8000 / 128.0
	StartY = level.GroundHeight
	StartZ = 3.0

	// TankCapacity is a full fuel or oxygen tank
	TankCapacity = 0x7530
	// RefillThreshold is the level below which a refill pad reports a refill
	RefillThreshold = 0x6978
)

// Ship is the complete kinematic state of the craft
// A plain value: assigning a Ship is a full independent copy, which the
// collision resolver relies on for trial positions
type Ship struct {
	X, Y, Z float64

	YVelocity float64
	ZVelocity float64

	// Lateral drift from resting on a ledge edge, and its direction counter
	SlideAmount  float64
	SlidingAccel int
	// XMovementBase is the steering amount latched while grounded
	XMovementBase float64
	// OffsetAtWhichNotInsideTile is the last edge probe distance that found free space
	OffsetAtWhichNotInsideTile int

	IsOnGround bool
	IsGoingUp  bool

	HasRunJumpOMaster        bool
	JumpOMasterInUse         bool
	JumpOMasterVelocityDelta float64
	JumpedFromYPosition      float64

	FuelRemaining   float64
	OxygenRemaining float64

	State State
}

// NewShip returns the craft as placed at the start of every level
func NewShip() Ship {
	return Ship{
		X:               StartX,
		Y:               StartY,
		Z:               StartZ,
		IsOnGround:      true,
		FuelRemaining:   TankCapacity,
		OxygenRemaining: TankCapacity,
		State:           Alive,
	}
}

func (s *Ship) XPosition() float64 { return s.X }
func (s *Ship) YPosition() float64 { return s.Y }
func (s *Ship) ZPosition() float64 { return s.Z }

// SamePosition reports exact positional equality
func (s *Ship) SamePosition(o *Ship) bool {
	return s.X == o.X && s.Y == o.Y && s.Z == o.Z
}
