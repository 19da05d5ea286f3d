package physics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/open-roads/event"
	"github.com/lixenwraith/open-roads/input"
)

func TestJumpAssistEngages(t *testing.T) {
	// road ends after row 10; an unassisted jump from z=10 lands at z=11.0
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 11, voidRow, 20))

	s := NewShip()
	s.Y = 110
	s.Z = 10
	s.ZVelocity = 0x2000 / 65536.0
	s.IsGoingUp = true
	s.IsOnGround = false

	if s.willLandOnTile(input.Neutral, l) {
		t.Fatal("baseline trajectory should miss the road")
	}

	orig := s.ZVelocity
	s.runJumpOMaster(input.Neutral, l)

	if !s.JumpOMasterInUse {
		t.Fatal("jump assist did not engage")
	}
	// first round: +10% lands in the void, -10% (7372/65536) lands on row 10
	if want := 7372 / 65536.0; s.ZVelocity != want {
		t.Errorf("assisted z velocity = %v, want %v", s.ZVelocity, want)
	}
	if s.JumpOMasterVelocityDelta <= 0 || s.JumpOMasterVelocityDelta != orig-s.ZVelocity {
		t.Errorf("delta = %v, want %v", s.JumpOMasterVelocityDelta, orig-s.ZVelocity)
	}
	if !s.willLandOnTile(input.Neutral, l) {
		t.Error("assisted trajectory should land on the road")
	}
}

func TestJumpAssistSkipsGoodJump(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 30))
	s := NewShip()
	s.Y = 110
	s.Z = 10
	s.ZVelocity = 0x2000 / 65536.0
	s.IsGoingUp = true

	s.runJumpOMaster(input.Neutral, l)
	if s.JumpOMasterInUse || s.JumpOMasterVelocityDelta != 0 {
		t.Errorf("assist engaged on a landable jump: inUse=%v delta=%v", s.JumpOMasterInUse, s.JumpOMasterVelocityDelta)
	}
	if s.ZVelocity != 0x2000/65536.0 {
		t.Errorf("z velocity changed to %v", s.ZVelocity)
	}
}

func TestJumpAssistGivesUp(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 11, voidRow, 40))
	s := NewShip()
	s.Y = 110
	s.Z = 20
	s.ZVelocity = 0x2000 / 65536.0
	s.IsGoingUp = true

	s.runJumpOMaster(input.Neutral, l)
	if s.JumpOMasterInUse {
		t.Error("no perturbation can reach the road, assist should stay off")
	}
	if s.ZVelocity != 0x2000/65536.0 || s.JumpOMasterVelocityDelta != 0 {
		t.Errorf("failed search must restore velocity, got %v delta %v", s.ZVelocity, s.JumpOMasterVelocityDelta)
	}
}

func TestWillLandOnTileZeroGravity(t *testing.T) {
	l := testLevel(t, 0, 1000, 100, rows(plainRow, 30))
	s := NewShip()
	s.Y = 110
	s.YVelocity = 1
	if s.willLandOnTile(input.Neutral, l) {
		t.Error("a craft that never descends cannot land")
	}
}

func TestMoveToStopsAtGround(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 10))
	s := NewShip()
	dest := s
	dest.Y = 75
	dest.Z = 3.25

	s.moveTo(&dest, l)
	if s.Y != 80 {
		t.Errorf("y = %v, want 80 resting on the tile", s.Y)
	}
	if s.Z != 3.25 {
		t.Errorf("z = %v, want full forward travel 3.25", s.Z)
	}
}

func TestMoveToFreeFlight(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 10))
	s := NewShip()
	s.Y = 100
	dest := s
	dest.X = 260.5
	dest.Y = 97.25
	dest.Z = 3.5

	s.moveTo(&dest, l)
	if !s.SamePosition(&dest) {
		t.Errorf("free flight stopped at (%v, %v, %v)", s.X, s.Y, s.Z)
	}
}

func TestMoveToBlockedByWall(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 4, wallRow, 1, plainRow, 5))
	s := NewShip()
	s.Z = 3.9
	dest := s
	dest.Z = 4.2

	s.moveTo(&dest, l)
	if s.Z >= 4 {
		t.Errorf("z = %v entered the wall row", s.Z)
	}
	if 4-s.Z > 1.0/65536*16 {
		t.Errorf("z = %v stopped short of the wall face", s.Z)
	}
}

func TestClampWrap(t *testing.T) {
	tests := []struct {
		name      string
		cur, next float64
		want      float64
	}{
		{"left to right jump", 90, 420, 90},
		{"right to left jump", 420, 90, 420},
		{"normal motion", 250, 260, 260},
		{"inside bounds", 96, 416, 416},
	}
	for _, tt := range tests {
		s := Ship{X: tt.cur}
		e := Ship{X: tt.next}
		s.clampWrap(&e)
		if e.X != tt.want {
			t.Errorf("%s: expected x = %v, want %v", tt.name, e.X, tt.want)
		}
	}
}

func TestSettleExpectedClampsBeforeSnap(t *testing.T) {
	// 417 + 1/512 is past the right bound but snaps back onto it
	s := Ship{X: wrapMinX - 1.0/128}
	e := Ship{X: wrapMaxX + 1.0/512}
	s.settleExpected(&e)
	if e.X != s.X {
		t.Errorf("expected x = %v, want clamp to current %v", e.X, s.X)
	}

	s = Ship{X: 250}
	e = Ship{X: 260 + 1.0/512, Y: 80 + 1.0/512, Z: 1 + 1.0/(1<<20)}
	s.settleExpected(&e)
	if e.X != 260 || e.Y != 80 || e.Z != 1 {
		t.Errorf("settled = (%v, %v, %v), want (260, 80, 1)", e.X, e.Y, e.Z)
	}
}

func TestHandleBumpsSidesteps(t *testing.T) {
	// a block in the center column; a craft just left of it steps clear
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 4, "01 01 01 0102 01 01 01", 1, plainRow, 5))
	n := event.NewNotifier()
	rec := event.NewRecorder(n)

	s := NewShip()
	s.X = 222
	s.Z = 3.99
	expected := s
	expected.Z = 4.05

	s.handleBumps(&expected, l, n)
	if s.X != 222-bumpOffset {
		t.Errorf("x = %v, want sidestep to %v", s.X, 222-bumpOffset)
	}
	if expected.Z != s.Z {
		t.Error("sidestep should clear the blocked forward target")
	}
	if rec.Count(event.BumpedWall) != 1 {
		t.Errorf("BumpedWall count = %d", rec.Count(event.BumpedWall))
	}
}

func TestStateString(t *testing.T) {
	if OutOfOxygen.String() != "OutOfOxygen" || State(9).String() != "Unknown" {
		t.Error("state names")
	}
}

func TestLerp(t *testing.T) {
	a := GameSnapshot{Position: mgl64.Vec3{0, 80, 3}, CraftState: Alive}
	b := GameSnapshot{Position: mgl64.Vec3{10, 80, 4}, CraftState: Exploded, Frame: 2}

	mid := Lerp(a, b, 0.5)
	if mid.Position != (mgl64.Vec3{5, 80, 3.5}) {
		t.Errorf("position = %v", mid.Position)
	}
	if mid.CraftState != Exploded || mid.Frame != 2 {
		t.Error("discrete fields should come from the newer snapshot")
	}
	if Lerp(a, b, 7).Position != b.Position || Lerp(a, b, -1).Position != a.Position {
		t.Error("t should be clamped to [0, 1]")
	}
}

func TestDiverges(t *testing.T) {
	a := GameSnapshot{Position: mgl64.Vec3{1, 2, 3}}
	b := a
	b.Frame = 9
	if a.Diverges(b) {
		t.Error("frame numbers alone should not count as divergence")
	}
	b.ZVelocity = 1.0 / 65536
	if !a.Diverges(b) {
		t.Error("velocity difference not detected")
	}
}

func TestTracerLogsStateChange(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 4, "01 01 01 0C 01 01 01", 1, plainRow, 5))

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	sim := NewSimulation(l, WithTracer(logger.WithField("sim", "trace")))
	for i := 0; i < 200 && sim.Ship().State == Alive; i++ {
		sim.Step(input.MustControllerState(0, 1, false))
	}

	out := buf.String()
	if !strings.Contains(out, "craft state changed") || !strings.Contains(out, "state=Exploded") {
		t.Errorf("missing state change in trace output:\n%s", out)
	}
	if strings.Contains(out, "msg=step") {
		t.Error("per-step lines should be filtered below trace level")
	}
}
