package physics

import (
	"math"

	"github.com/lixenwraith/open-roads/event"
	"github.com/lixenwraith/open-roads/level"
)

// handleBumps sidesteps a blocked craft around a corner when either side is free
func (s *Ship) handleBumps(expected *Ship, lvl *level.Level, n *event.Notifier) {
	if s.Z == expected.Z || !lvl.IsInsideTile(s.X, s.Y, expected.Z) {
		return
	}

	for _, x := range [2]float64{s.X - bumpOffset, s.X + bumpOffset} {
		if !lvl.IsInsideTile(x, s.Y, expected.Z) {
			s.X = x
			expected.Z = s.Z
			n.Fire(event.BumpedWall)
			return
		}
	}
}

// handleCollision stops or wrecks a craft whose forward motion was blocked
func (s *Ship) handleCollision(expected *Ship, n *event.Notifier) {
	if math.Abs(s.Z-expected.Z) <= heightEpsilon {
		return
	}
	third := 1.0 / 3.0
	if s.ZVelocity < third*0x2AAA/0x10000 {
		s.ZVelocity = 0
		n.Fire(event.BumpedWall)
	} else if s.State != Exploded {
		s.explode(n)
	}
}

// handleSlideCollision bleeds speed when lateral motion was blocked
func (s *Ship) handleSlideCollision(expected *Ship) {
	if math.Abs(s.X-expected.X) <= heightEpsilon {
		return
	}
	s.XMovementBase = 0
	if s.SlideAmount != 0 {
		expected.X = s.X
		s.SlideAmount = 0
	}
	s.ZVelocity -= slideDrag
	s.clampZVelocity()
}

// handleBounce settles a descending craft that was stopped by the ground,
// then probes for a nearby ledge edge to slide off
func (s *Ship) handleBounce(expected *Ship, lvl *level.Level) {
	s.IsOnGround = false
	if !(s.YVelocity < 0 && expected.Y != s.Y) {
		return
	}

	s.ZVelocity += s.JumpOMasterVelocityDelta
	s.JumpOMasterVelocityDelta = 0
	s.HasRunJumpOMaster = false
	s.JumpOMasterInUse = false

	s.IsGoingUp = false
	s.IsOnGround = true
	s.SlidingAccel = 0

	probeY := s.Y - 1.0/0x80
	for i := 1; i <= edgeProbeMax; i++ {
		if !lvl.IsInsideTile(s.X+float64(i), probeY, s.Z) {
			s.SlidingAccel++
			s.OffsetAtWhichNotInsideTile = i
			break
		}
	}
	for i := 1; i <= edgeProbeMax; i++ {
		if !lvl.IsInsideTile(s.X-float64(i), probeY, s.Z) {
			s.SlidingAccel--
			s.OffsetAtWhichNotInsideTile = i
			break
		}
	}

	if s.SlidingAccel != 0 {
		s.SlideAmount += float64(slideStep*s.SlidingAccel) / 0x80
	} else {
		s.SlideAmount = 0
	}
}

// handleOxygenAndFuel drains the tanks; oxygen is checked first so an
// empty fuel tank on the same frame wins
func (s *Ship) handleOxygenAndFuel(lvl *level.Level) {
	s.OxygenRemaining -= float64(TankCapacity) / float64(0x24*lvl.Oxygen)
	if s.OxygenRemaining <= 0 {
		s.OxygenRemaining = 0
		s.State = OutOfOxygen
	}

	s.FuelRemaining -= s.ZVelocity * TankCapacity / float64(lvl.Fuel)
	if s.FuelRemaining <= 0 {
		s.FuelRemaining = 0
		s.State = OutOfFuel
	}
}
