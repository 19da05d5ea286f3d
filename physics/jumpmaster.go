package physics

import (
	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/vmath"
)

const (
	// jumpAssistRounds is the number of ±10% perturbation rounds tried
	jumpAssistRounds = 6
	// predictionLimit bounds the ballistic loop; zero gravity never lands
	predictionLimit = 4096
)

// runJumpOMaster nudges a jump that would miss so it lands on solid road
// Steering is tried first, then forward speed; a speed change is banked as
// JumpOMasterVelocityDelta and repaid on landing
func (s *Ship) runJumpOMaster(cs input.ControllerState, lvl *level.Level) {
	if s.willLandOnTile(cs, lvl) {
		return
	}

	zVelocity := s.ZVelocity
	xMov := s.XMovementBase
	i := 1
	for ; i <= jumpAssistRounds; i++ {
		fi := float64(i)

		s.XMovementBase = vmath.FloorFP16(xMov + xMov*fi/10)
		if s.willLandOnTile(cs, lvl) {
			break
		}

		s.XMovementBase = vmath.FloorFP16(xMov - xMov*fi/10)
		if s.willLandOnTile(cs, lvl) {
			break
		}

		s.XMovementBase = xMov

		zv2 := vmath.FloorFP32(zVelocity + zVelocity*fi/10)
		s.ZVelocity = vmath.ClampZVelocity(zv2)
		if s.ZVelocity == zv2 && s.willLandOnTile(cs, lvl) {
			break
		}

		zv2 = vmath.FloorFP32(zVelocity - zVelocity*fi/10)
		s.ZVelocity = vmath.ClampZVelocity(zv2)
		if s.ZVelocity == zv2 && s.willLandOnTile(cs, lvl) {
			break
		}

		s.ZVelocity = zVelocity
	}

	s.JumpOMasterVelocityDelta = zVelocity - s.ZVelocity
	if i <= jumpAssistRounds {
		s.JumpOMasterInUse = true
	}
}

// willLandOnTile flies the current trajectory forward until it reaches
// ground height, reporting whether both the last airborne and the landing
// cells are solid, non-lethal road
func (s *Ship) willLandOnTile(cs input.ControllerState, lvl *level.Level) bool {
	x, y, z := s.X, s.Y, s.Z
	xVelocity, yVelocity, zVelocity := s.XMovementBase, s.YVelocity, s.ZVelocity
	g := lvl.GravityAcceleration()

	for n := 0; n < predictionLimit; n++ {
		curX, curZ := x, z

		yVelocity += g
		z += zVelocity

		xRate := zVelocity + forwardBias
		x += xVelocity*xRate*128 + s.SlideAmount
		if x < wrapMinX || x > wrapMaxX {
			return false
		}

		y += yVelocity
		zVelocity = vmath.ClampZVelocity(zVelocity + cs.AccelInput*accelRate/0x10000)

		if y <= level.GroundHeight {
			return !isOnNothing(lvl, curX, curZ) && !isOnNothing(lvl, x, z)
		}
	}
	return false
}

// isOnNothing reports void or lethal ground under (x, z)
func isOnNothing(lvl *level.Level, x, z float64) bool {
	c := lvl.GetCell(x, 0, z)
	return c.IsEmpty() || c.IsKill()
}
