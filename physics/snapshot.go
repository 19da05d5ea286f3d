package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/open-roads/vmath"
)

// GameSnapshot is the immutable per-frame view of the craft handed to presentation
type GameSnapshot struct {
	Position mgl64.Vec3
	// Velocity.Z() is the displayed forward speed: z-velocity plus any banked
	// jump-assist delta, bounded to [0, ZVelocityMax]
	Velocity mgl64.Vec3
	// ZVelocity is the raw ship z-velocity for frame-by-frame comparison
	ZVelocity float64

	CraftState    State
	FuelPercent   float64
	OxygenPercent float64

	JumpOMasterInUse         bool
	JumpOMasterVelocityDelta float64

	Frame  uint64
	DidWin bool
}

// newSnapshot captures s after frame
func newSnapshot(s *Ship, frame uint64, didWin bool) GameSnapshot {
	speed := vmath.ClampZVelocity(s.ZVelocity + s.JumpOMasterVelocityDelta)
	return GameSnapshot{
		Position:                 mgl64.Vec3{s.X, s.Y, s.Z},
		Velocity:                 mgl64.Vec3{0, 0, speed},
		ZVelocity:                s.ZVelocity,
		CraftState:               s.State,
		FuelPercent:              s.FuelRemaining / TankCapacity,
		OxygenPercent:            s.OxygenRemaining / TankCapacity,
		JumpOMasterInUse:         s.JumpOMasterInUse,
		JumpOMasterVelocityDelta: s.JumpOMasterVelocityDelta,
		Frame:                    frame,
		DidWin:                   didWin,
	}
}

// Lerp blends two snapshots; discrete fields come from b
// t is clamped to [0, 1]
func Lerp(a, b GameSnapshot, t float64) GameSnapshot {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	out := b
	out.Position = b.Position.Sub(a.Position).Mul(t).Add(a.Position)
	out.Velocity = b.Velocity.Sub(a.Velocity).Mul(t).Add(a.Velocity)
	return out
}

// Diverges reports whether two snapshots differ in any simulated field
func (g GameSnapshot) Diverges(o GameSnapshot) bool {
	return g.Position != o.Position ||
		g.ZVelocity != o.ZVelocity ||
		g.CraftState != o.CraftState ||
		g.FuelPercent != o.FuelPercent ||
		g.OxygenPercent != o.OxygenPercent ||
		g.JumpOMasterInUse != o.JumpOMasterInUse ||
		g.JumpOMasterVelocityDelta != o.JumpOMasterVelocityDelta ||
		g.DidWin != o.DidWin
}
