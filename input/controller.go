package input

import (
	"errors"
	"fmt"
)

var (
	ErrTurnOutOfRange  = errors.New("turn input out of range [-1,1]")
	ErrAccelOutOfRange = errors.New("accel input out of range [-1,1]")
)

// ControllerState is one frame of normalized pilot intent
// Construct through NewControllerState so the ranges are checked
type ControllerState struct {
	TurnInput  float64
	AccelInput float64
	JumpInput  bool
}

// Neutral is the no-input state
var Neutral = ControllerState{}

// NewControllerState validates turn and accel against [-1,1]
func NewControllerState(turn, accel float64, jump bool) (ControllerState, error) {
	if !(turn >= -1 && turn <= 1) {
		return ControllerState{}, fmt.Errorf("%w: %v", ErrTurnOutOfRange, turn)
	}
	if !(accel >= -1 && accel <= 1) {
		return ControllerState{}, fmt.Errorf("%w: %v", ErrAccelOutOfRange, accel)
	}
	return ControllerState{TurnInput: turn, AccelInput: accel, JumpInput: jump}, nil
}

// MustControllerState panics on out-of-range input
// For sources whose normalization is a programming contract
func MustControllerState(turn, accel float64, jump bool) ControllerState {
	cs, err := NewControllerState(turn, accel, jump)
	if err != nil {
		panic(err)
	}
	return cs
}

// Position is the slice of craft state controllers may observe
type Position interface {
	XPosition() float64
	YPosition() float64
	ZPosition() float64
}

// Controller produces the input for the next simulation frame
type Controller interface {
	Update(pos Position) ControllerState
}

// ControllerFunc adapts a function to Controller
type ControllerFunc func(pos Position) ControllerState

func (f ControllerFunc) Update(pos Position) ControllerState {
	return f(pos)
}

// Constant always returns the same state
type Constant ControllerState

func (c Constant) Update(Position) ControllerState {
	return ControllerState(c)
}

// Tape replays a fixed per-frame sequence, then neutral
// Used by regression runs where input is indexed by frame rather than position
type Tape struct {
	frames []ControllerState
	next   int
}

// NewTape creates a tape over the given frames
func NewTape(frames []ControllerState) *Tape {
	return &Tape{frames: frames}
}

func (t *Tape) Update(Position) ControllerState {
	if t.next >= len(t.frames) {
		return Neutral
	}
	cs := t.frames[t.next]
	t.next++
	return cs
}

// Rewind restarts the tape from its first frame
func (t *Tape) Rewind() {
	t.next = 0
}
