package physics

import (
	"math"

	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/vmath"
)

// Resolver step sizes
const (
	interpSteps = 5
	zGranStart  = 0x1000 / 65536.0
	zGranShrink = 0x10
	xyGranStart = 0x7D / 128.0
	xyGranDiv   = 5.0
)

// attemptMotion integrates velocity into position without collision
func (s *Ship) attemptMotion(onDecelPad bool) {
	motionVel := s.ZVelocity
	if !onDecelPad {
		motionVel += forwardBias
	}

	xMotion := vmath.TruncToward(s.XMovementBase*0x80)*vmath.TruncToward(motionVel*0x10000)/0x10000 + s.SlideAmount
	if s.State != Exploded {
		s.X += xMotion
		s.Y += s.YVelocity
		s.Z += s.ZVelocity
	}
}

// interp moves to the fraction p of the way toward dest, floored onto the grids
func (s *Ship) interp(dest *Ship, p float64) {
	s.X = vmath.FloorFP16((dest.X-s.X)*p + s.X)
	s.Y = vmath.FloorFP16((dest.Y-s.Y)*p + s.Y)
	s.Z = vmath.FloorFP32((dest.Z-s.Z)*p + s.Z)
}

// moveTo advances toward dest as far as the geometry allows
// A coarse linear search picks the last free fifth of the path, then each
// axis creeps forward in shrinking steps in the order z, x, y.
// The result is path dependent and intentionally not a true sweep.
func (s *Ship) moveTo(dest *Ship, lvl *level.Level) {
	if s.SamePosition(dest) {
		return
	}

	iter := 1
	for ; iter <= interpSteps; iter++ {
		fake := *s
		fake.interp(dest, float64(iter)/interpSteps)
		if lvl.IsInsideTile(fake.X, fake.Y, fake.Z) {
			break
		}
	}
	iter--
	s.interp(dest, float64(iter)/interpSteps)

	zGran := zGranStart
	for zGran != 0 {
		fz := s.Z + zGran
		if dest.Z-s.Z >= zGran && !lvl.IsInsideTile(s.X, s.Y, fz) {
			s.Z = fz
		} else {
			zGran /= zGranShrink
			zGran = vmath.FloorFP32(zGran)
		}
	}
	s.Z = vmath.FloorFP32(s.Z)

	xGran := granToward(dest.X, s.X)
	for math.Abs(xGran) > 0 {
		fx := s.X + xGran
		if math.Abs(dest.X-s.X) >= math.Abs(xGran) && !lvl.IsInsideTile(fx, s.Y, s.Z) {
			s.X = fx
		} else {
			xGran = vmath.RoundFP16(xGran / xyGranDiv)
		}
	}
	s.X = vmath.FloorFP16(s.X)

	yGran := granToward(dest.Y, s.Y)
	for math.Abs(yGran) > 0 {
		fy := s.Y + yGran
		if math.Abs(dest.Y-s.Y) >= math.Abs(yGran) && !lvl.IsInsideTile(s.X, fy, s.Z) {
			s.Y = fy
		} else {
			yGran = vmath.RoundFP16(yGran / xyGranDiv)
		}
	}
	s.Y = vmath.FloorFP16(s.Y)
}

func granToward(dest, cur float64) float64 {
	if dest > cur {
		return xyGranStart
	}
	return -xyGranStart
}
