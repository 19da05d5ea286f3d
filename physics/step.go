package physics

import (
	"math"

	"github.com/lixenwraith/open-roads/event"
	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/vmath"
)

// Per-frame tuning, in the units of the original executable
const (
	touchAccel      = 0x12F / 65536.0
	forwardBias     = 0x618 / 65536.0
	slideDrag       = 0x97 / 65536.0
	turnRate        = 0x1D
	accelRate       = 0x4B
	jumpVelocity    = 0x480 / 128.0
	jumpGravityMax  = 0x14
	jumpAssistY     = 110
	jumpControlSpan = 30
	gravityFloorY   = 0x28
	maxFallVelocity = -105 / 128.0
	heightEpsilon   = 0.01
	bumpOffset      = 0x3A0 / 128.0
	edgeProbeMax    = 0xE
	slideStep       = 0x11
	fallOffY        = -10

	// Expected x never jumps across the track between these
	wrapMinX = 0x2F80 / 128.0
	wrapMaxX = 0xD080 / 128.0
)

// update advances the ship one frame
// expected carries the unconstrained target between frames and is rewritten here
func (s *Ship) update(lvl *level.Level, expected *Ship, cs input.ControllerState, n *event.Notifier) {
	s.sanitize()
	canControl := s.State == Alive

	cell := lvl.GetCell(s.X, s.Y, s.Z)
	isAboveNothing := cell.IsEmpty()
	effect := s.touchEffect(cell)

	isOnSlidingTile := effect == level.EffectSlide
	isOnDecelPad := effect == level.EffectDecelerate

	s.applyTouchEffect(effect, n)
	s.updateYVelocity(expected, lvl, n)
	s.updateZVelocity(canControl, cs.AccelInput)
	s.updateXVelocity(canControl, cs.TurnInput, isOnSlidingTile, isAboveNothing)
	s.updateJump(canControl, isAboveNothing, cs.JumpInput, lvl)
	s.updateJumpOMaster(cs, lvl)
	s.updateGravity(lvl.GravityAcceleration())

	*expected = *s
	expected.attemptMotion(isOnDecelPad)
	s.settleExpected(expected)

	s.moveTo(expected, lvl)
	s.sanitize()
	expected.sanitize()

	s.handleBumps(expected, lvl, n)
	s.handleCollision(expected, n)
	s.handleSlideCollision(expected)
	s.handleBounce(expected, lvl)
	s.handleOxygenAndFuel(lvl)
	s.handleFallOff(n)
}

// sanitize snaps position onto the fixed-point grids
func (s *Ship) sanitize() {
	s.X = vmath.SnapFP16(s.X)
	s.Y = vmath.SnapFP16(s.Y)
	s.Z = vmath.SnapFP32(s.Z)
}

// touchEffect resolves the surface the grounded craft rests on
func (s *Ship) touchEffect(cell level.Cell) level.TouchEffect {
	if !s.IsOnGround {
		return level.EffectNone
	}
	fy := math.Floor(s.Y)
	switch {
	case fy == level.GroundHeight && cell.Tile != nil:
		return cell.Tile.Effect
	case fy > level.GroundHeight && cell.Cube != nil && cell.Cube.Height == s.Y:
		return cell.Cube.Effect
	}
	return level.EffectNone
}

func (s *Ship) applyTouchEffect(effect level.TouchEffect, n *event.Notifier) {
	switch effect {
	case level.EffectAccelerate:
		s.ZVelocity += touchAccel
	case level.EffectDecelerate:
		s.ZVelocity -= touchAccel
	case level.EffectKill:
		s.explode(n)
	case level.EffectRefillOxygen:
		if s.State == Alive {
			if s.FuelRemaining < RefillThreshold || s.OxygenRemaining < RefillThreshold {
				n.Fire(event.Refilled)
			}
			s.FuelRemaining = TankCapacity
			s.OxygenRemaining = TankCapacity
		}
	}
	s.clampZVelocity()
}

// explode wrecks the craft, reporting only the first transition
func (s *Ship) explode(n *event.Notifier) {
	if s.State == Exploded {
		return
	}
	s.State = Exploded
	n.Fire(event.Exploded)
}

func (s *Ship) updateYVelocity(expected *Ship, lvl *level.Level, n *event.Notifier) {
	if !s.isDifferentHeight(expected) {
		return
	}
	if s.SlideAmount == 0 || s.OffsetAtWhichNotInsideTile >= 2 {
		threshold := float64(lvl.Gravity) * 0x104 / 8 / 0x80
		if math.Abs(s.YVelocity) > threshold {
			if s.YVelocity < 0 {
				n.Fire(event.Bounced)
			}
			s.YVelocity = -0.5 * s.YVelocity
		} else {
			s.YVelocity = 0
		}
	} else {
		s.YVelocity = 0
	}
}

func (s *Ship) updateZVelocity(canControl bool, accel float64) {
	if !canControl {
		accel = 0
	}
	s.ZVelocity += accel * accelRate / 0x10000
	s.clampZVelocity()
}

// updateXVelocity latches steering while grounded, or once early in a jump
func (s *Ship) updateXVelocity(canControl bool, turn float64, isOnSlidingTile, isAboveNothing bool) {
	if isOnSlidingTile {
		return
	}
	airborne := (s.IsGoingUp || isAboveNothing) && s.XMovementBase == 0 &&
		s.YVelocity > 0 && (s.Y-s.JumpedFromYPosition) < jumpControlSpan
	grounded := !s.IsGoingUp && !isAboveNothing
	if !airborne && !grounded {
		return
	}
	if canControl {
		s.XMovementBase = turn * turnRate / 0x80
	} else {
		s.XMovementBase = 0
	}
}

func (s *Ship) updateJump(canControl, isAboveNothing, jump bool, lvl *level.Level) {
	if !s.IsGoingUp && !isAboveNothing && jump && lvl.Gravity < jumpGravityMax && canControl {
		s.YVelocity = jumpVelocity
		s.IsGoingUp = true
		s.JumpedFromYPosition = s.Y
	}
}

func (s *Ship) updateJumpOMaster(cs input.ControllerState, lvl *level.Level) {
	if s.IsGoingUp && !s.HasRunJumpOMaster && s.Y >= jumpAssistY {
		s.runJumpOMaster(cs, lvl)
		s.HasRunJumpOMaster = true
	}
}

func (s *Ship) updateGravity(g float64) {
	if s.Y >= gravityFloorY {
		s.YVelocity += g
		s.YVelocity = vmath.RoundFP16(s.YVelocity)
	} else if s.YVelocity > maxFallVelocity {
		s.YVelocity = maxFallVelocity
	}
}

// clampWrap stops expected x from crossing the track between the far edges in one frame
// settleExpected applies the wrap clamp to the raw target, then snaps it
func (s *Ship) settleExpected(expected *Ship) {
	s.clampWrap(expected)
	expected.sanitize()
}

func (s *Ship) clampWrap(expected *Ship) {
	cur, next := s.X, expected.X
	if (cur < wrapMinX && next > wrapMaxX) || (next < wrapMinX && cur > wrapMaxX) {
		expected.X = cur
	}
}

func (s *Ship) clampZVelocity() {
	s.ZVelocity = vmath.ClampZVelocity(s.ZVelocity)
}

func (s *Ship) isDifferentHeight(o *Ship) bool {
	return math.Abs(o.Y-s.Y) > heightEpsilon
}

// handleFallOff wrecks a live craft once it has dropped well below the road
func (s *Ship) handleFallOff(n *event.Notifier) {
	if s.State == Alive && s.Y < fallOffY {
		s.explode(n)
	}
}
