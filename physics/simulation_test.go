package physics

import (
	"testing"

	"github.com/lixenwraith/open-roads/event"
	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/vmath"
)

const (
	plainRow = "01 01 01 01 01 01 01"
	voidRow  = ". . . . . . ."
	wallRow  = "0102 0102 0102 0102 0102 0102 0102"
)

// rows concatenates repeated row groups: rows(plainRow, 5, voidRow, 2)
func rows(pairs ...any) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		row := pairs[i].(string)
		n := pairs[i+1].(int)
		for j := 0; j < n; j++ {
			out = append(out, row)
		}
	}
	return out
}

func testLevel(t *testing.T, gravity, fuel, oxygen int, r []string) *level.Level {
	t.Helper()
	d := level.Description{Name: t.Name(), Gravity: gravity, Fuel: fuel, Oxygen: oxygen, Rows: r}
	l, err := d.Build()
	if err != nil {
		t.Fatalf("level build: %v", err)
	}
	return l
}

func newRecorded(l *level.Level, opts ...Option) (*Simulation, *event.Recorder) {
	n := event.NewNotifier()
	rec := event.NewRecorder(n)
	return NewSimulation(l, append([]Option{WithNotifier(n)}, opts...)...), rec
}

var (
	accelerate = input.ControllerState{AccelInput: 1}
	extreme    = input.ControllerState{TurnInput: 1, AccelInput: 1, JumpInput: true}
)

func TestNewShipDefaults(t *testing.T) {
	s := NewShip()
	if s.X != 256 || s.Y != 80 || s.Z != 3 {
		t.Errorf("start position = (%v, %v, %v)", s.X, s.Y, s.Z)
	}
	if s.FuelRemaining != TankCapacity || s.OxygenRemaining != TankCapacity {
		t.Errorf("tanks = %v/%v", s.FuelRemaining, s.OxygenRemaining)
	}
	if !s.IsOnGround || s.State != Alive {
		t.Errorf("ground=%v state=%v", s.IsOnGround, s.State)
	}
}

func TestStraightFlight(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 100))
	sim, rec := newRecorded(l)

	prev := sim.Snapshot()
	reachedMax := -1
	for i := 0; i < 300; i++ {
		snap := sim.Step(accelerate)

		if snap.Position.Z() < prev.Position.Z() {
			t.Fatalf("frame %d: z went backwards %v -> %v", i, prev.Position.Z(), snap.Position.Z())
		}
		if snap.ZVelocity < prev.ZVelocity {
			t.Fatalf("frame %d: z velocity dropped %v -> %v", i, prev.ZVelocity, snap.ZVelocity)
		}
		if snap.Position.X() != StartX || snap.Position.Y() != StartY {
			t.Fatalf("frame %d: left the road center at (%v, %v)", i, snap.Position.X(), snap.Position.Y())
		}
		if reachedMax >= 0 && snap.ZVelocity != vmath.ZVelocityMax {
			t.Fatalf("frame %d: velocity %v left the clamp reached at frame %d", i, snap.ZVelocity, reachedMax)
		}
		if reachedMax < 0 && snap.ZVelocity == vmath.ZVelocityMax {
			reachedMax = i
		}
		prev = snap
	}

	if reachedMax < 0 {
		t.Fatalf("never reached max velocity, final %v", prev.ZVelocity)
	}
	// 0x2AAA / 0x4B rounds up to 146 frames of full throttle
	if reachedMax != 145 {
		t.Errorf("reached max at frame index %d, want 145", reachedMax)
	}
	if prev.CraftState != Alive {
		t.Errorf("state = %v, want Alive", prev.CraftState)
	}
	if len(rec.Events) != 0 {
		t.Errorf("unexpected events on flat road: %v", rec.Events)
	}
}

func TestDeterminism(t *testing.T) {
	l, err := level.Builtin("blocks")
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}

	demo := make([]byte, 4000)
	seed := uint32(7)
	for i := range demo {
		seed = seed*1664525 + 1013904223
		demo[i] = byte(seed>>24) & 0x1F
	}

	run := func() ([]GameSnapshot, []event.Kind) {
		sim, rec := newRecorded(l, WithController(input.NewDemoController(demo)))
		out := make([]GameSnapshot, 0, 800)
		for i := 0; i < 800; i++ {
			out = append(out, sim.RunFrame())
		}
		return out, rec.Events
	}

	a, ea := run()
	b, eb := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("frame %d diverged:\n%+v\n%+v", i, a[i], b[i])
		}
	}
	if len(ea) != len(eb) {
		t.Fatalf("event streams differ: %v vs %v", ea, eb)
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Fatalf("event %d differs: %v vs %v", i, ea[i], eb[i])
		}
	}
}

func TestSnapshotInvariants(t *testing.T) {
	for _, name := range level.BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			l, err := level.Builtin(name)
			if err != nil {
				t.Fatalf("builtin: %v", err)
			}
			sim := NewSimulation(l)

			seed := uint32(42)
			for i := 0; i < 1500; i++ {
				seed = seed*1103515245 + 12345
				cs := input.DecodeDemoByte(byte(seed >> 16))
				snap := sim.Step(cs)

				if v := snap.Velocity.Z(); v < 0 || v > vmath.ZVelocityMax {
					t.Fatalf("frame %d: displayed speed %v outside [0, %v]", i, v, vmath.ZVelocityMax)
				}
				x, y, z := snap.Position.X(), snap.Position.Y(), snap.Position.Z()
				if vmath.SnapFP16(x) != x || vmath.SnapFP16(y) != y || vmath.SnapFP32(z) != z {
					t.Fatalf("frame %d: position (%v, %v, %v) off the fixed-point grid", i, x, y, z)
				}
				if snap.FuelPercent < 0 || snap.OxygenPercent < 0 || snap.OxygenPercent > 1 {
					t.Fatalf("frame %d: tanks %v/%v", i, snap.FuelPercent, snap.OxygenPercent)
				}
				if snap.Frame != uint64(i+1) {
					t.Fatalf("frame counter %d at step %d", snap.Frame, i)
				}
			}
		})
	}
}

func TestFatalDrop(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 5, voidRow, 40))
	if !l.GetCell(StartX, StartY, 5.5).IsEmpty() {
		t.Fatal("row 5 should be open space")
	}
	sim, rec := newRecorded(l)

	prev := sim.Ship()
	exploded := false
	for i := 0; i < 400 && !exploded; i++ {
		sim.Step(accelerate)
		cur := sim.Ship()
		if cur.State != Exploded {
			prev = cur
			continue
		}
		exploded = true

		if prev.State != Alive {
			t.Fatalf("state before the wreck = %v, want Alive", prev.State)
		}
		if !l.GetCell(cur.X, cur.Y, cur.Z).IsEmpty() {
			t.Errorf("wrecked over a cell at z=%v, want open space", cur.Z)
		}
		if cur.Y >= prev.Y {
			t.Errorf("y = %v after %v, want still falling", cur.Y, prev.Y)
		}
		if cur.Y >= fallOffY {
			t.Errorf("wrecked at y = %v, want below %v", cur.Y, fallOffY)
		}
		if prev.Y < fallOffY {
			t.Errorf("craft survived at y = %v below %v", prev.Y, fallOffY)
		}
	}
	if !exploded {
		t.Fatalf("craft never wrecked, y = %v z = %v", sim.Ship().Y, sim.Ship().Z)
	}

	for i := 0; i < 30; i++ {
		sim.Step(accelerate)
	}
	if got := rec.Count(event.Exploded); got != 1 {
		t.Errorf("Exploded fired %d times, want exactly 1", got)
	}
	if sim.Ship().State != Exploded {
		t.Errorf("state = %v, want Exploded", sim.Ship().State)
	}
	if sim.DidWin() {
		t.Error("falling craft should not win")
	}
}

func TestKillTileTerminality(t *testing.T) {
	killRow := "01 01 01 0C 01 01 01"
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 5, killRow, 1, plainRow, 20))

	a, recA := newRecorded(l)
	b, _ := newRecorded(l)

	for i := 0; i < 500 && a.Ship().State == Alive; i++ {
		a.Step(accelerate)
		b.Step(accelerate)
	}
	if a.Ship().State != Exploded {
		t.Fatalf("craft never exploded on kill tile, state %v at z=%v", a.Ship().State, a.Ship().Z)
	}
	if recA.Count(event.Exploded) != 1 {
		t.Fatalf("Exploded fired %d times on transition", recA.Count(event.Exploded))
	}

	for i := 0; i < 200; i++ {
		sa := a.Step(extreme)
		sb := b.Step(input.Neutral)
		if sa.Diverges(sb) {
			t.Fatalf("post-explosion frame %d: input changed trajectory\n%+v\n%+v", i, sa, sb)
		}
	}
	if recA.Count(event.Exploded) != 1 {
		t.Errorf("Exploded re-fired while resting on kill tile: %d", recA.Count(event.Exploded))
	}
}

func TestLowSpeedWallBump(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 6, wallRow, 1, plainRow, 10))
	sim, rec := newRecorded(l)

	for i := 0; i < 30; i++ {
		sim.Step(accelerate)
	}
	for i := 0; i < 200; i++ {
		sim.Step(input.Neutral)
	}

	ship := sim.Ship()
	if ship.State != Alive {
		t.Fatalf("state = %v, want Alive after gentle bump", ship.State)
	}
	if ship.ZVelocity != 0 {
		t.Errorf("z velocity = %v, want 0 after wall", ship.ZVelocity)
	}
	if ship.Z >= 6 {
		t.Errorf("z = %v passed through the wall", ship.Z)
	}
	if rec.Count(event.BumpedWall) == 0 {
		t.Error("BumpedWall never fired")
	}
	if rec.Count(event.Exploded) != 0 {
		t.Error("gentle bump should not explode")
	}
}

func TestHighSpeedWallCrash(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 6, wallRow, 1, plainRow, 10))
	sim, rec := newRecorded(l)

	for i := 0; i < 300; i++ {
		sim.Step(accelerate)
	}

	if sim.Ship().State != Exploded {
		t.Fatalf("state = %v, want Exploded", sim.Ship().State)
	}
	if sim.Ship().Z >= 6 {
		t.Errorf("z = %v passed through the wall", sim.Ship().Z)
	}
	if got := rec.Count(event.Exploded); got != 1 {
		t.Errorf("Exploded fired %d times", got)
	}
}

func TestDropBounces(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 20))
	start := NewShip()
	start.Y = 120
	start.IsOnGround = false
	sim, rec := newRecorded(l, WithShip(start))

	for i := 0; i < 120; i++ {
		sim.Step(input.Neutral)
	}

	if rec.Count(event.Bounced) == 0 {
		t.Fatal("no bounce from a 40 unit drop")
	}
	ship := sim.Ship()
	if ship.Y != StartY {
		t.Errorf("craft did not settle on the road, y=%v", ship.Y)
	}
	if !ship.IsOnGround {
		t.Error("craft should be grounded after settling")
	}
}

func TestRefillPad(t *testing.T) {
	padRow := "01 01 01 09 01 01 01"
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 3, padRow, 1, plainRow, 5))

	t.Run("depleted craft refills once", func(t *testing.T) {
		start := NewShip()
		start.FuelRemaining = 1000
		start.OxygenRemaining = 1000
		sim, rec := newRecorded(l, WithShip(start))

		var snap GameSnapshot
		for i := 0; i < 10; i++ {
			snap = sim.Step(input.Neutral)
		}
		if got := rec.Count(event.Refilled); got != 1 {
			t.Errorf("Refilled fired %d times, want 1", got)
		}
		if snap.FuelPercent != 1 {
			t.Errorf("fuel = %v, want full while parked", snap.FuelPercent)
		}
		oxygen := float64(TankCapacity)
		oxygen -= float64(TankCapacity) / float64(0x24*l.Oxygen)
		want := oxygen / TankCapacity
		if snap.OxygenPercent != want {
			t.Errorf("oxygen = %v, want %v", snap.OxygenPercent, want)
		}
	})

	t.Run("full craft refills silently", func(t *testing.T) {
		sim, rec := newRecorded(l)
		for i := 0; i < 10; i++ {
			sim.Step(input.Neutral)
		}
		if got := rec.Count(event.Refilled); got != 0 {
			t.Errorf("Refilled fired %d times for a full craft", got)
		}
	})
}

func TestTouchEffectPads(t *testing.T) {
	tests := []struct {
		name string
		pad  string
		want float64
	}{
		{"accelerate", "01 01 01 0A 01 01 01", 0x12F / 65536.0},
		{"decelerate clamps at zero", "01 01 01 02 01 01 01", 0},
		{"plain", plainRow, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLevel(t, 8, 1000, 100, rows(plainRow, 3, tt.pad, 1, plainRow, 5))
			sim := NewSimulation(l)
			snap := sim.Step(input.Neutral)
			if snap.ZVelocity != tt.want {
				t.Errorf("z velocity = %v, want %v", snap.ZVelocity, tt.want)
			}
		})
	}
}

func TestJump(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 30))
	sim := NewSimulation(l)

	sim.Step(input.ControllerState{JumpInput: true})
	ship := sim.Ship()
	if !ship.IsGoingUp {
		t.Fatal("jump did not start")
	}
	// 9.0 launch less one frame of gravity at G=8
	wantVel := 9.0 - 115.0/128
	if ship.YVelocity != wantVel {
		t.Errorf("y velocity = %v, want %v", ship.YVelocity, wantVel)
	}
	if ship.Y != StartY+wantVel {
		t.Errorf("y = %v, want %v", ship.Y, StartY+wantVel)
	}
	if ship.JumpedFromYPosition != StartY {
		t.Errorf("jumped from %v", ship.JumpedFromYPosition)
	}

	heavy := testLevel(t, 0x14, 1000, 100, rows(plainRow, 30))
	sim = NewSimulation(heavy)
	sim.Step(input.ControllerState{JumpInput: true})
	if sim.Ship().IsGoingUp {
		t.Error("gravity 0x14 should forbid jumping")
	}
}

func TestWinRunway(t *testing.T) {
	l, err := level.Builtin("runway")
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	sim := NewSimulation(l)

	var snap GameSnapshot
	for i := 0; i < 1000 && !snap.DidWin; i++ {
		snap = sim.Step(accelerate)
	}
	if !snap.DidWin || !sim.DidWin() {
		t.Fatalf("never won; z=%v state=%v", snap.Position.Z(), snap.CraftState)
	}
	if snap.Position.Z() < float64(l.Length())-0.5 {
		t.Errorf("won at z=%v before the finish", snap.Position.Z())
	}
	if snap.CraftState != Alive {
		t.Errorf("state at win = %v", snap.CraftState)
	}

	sim.Reset()
	if sim.DidWin() || sim.Frame() != 0 || sim.Ship() != NewShip() {
		t.Error("Reset did not restore the start state")
	}
}

func TestRunFrameUsesController(t *testing.T) {
	l := testLevel(t, 8, 1000, 100, rows(plainRow, 30))
	calls := 0
	ctrl := input.ControllerFunc(func(p input.Position) input.ControllerState {
		calls++
		if p.ZPosition() != StartZ && calls == 1 {
			t.Errorf("controller saw z=%v on first frame", p.ZPosition())
		}
		return accelerate
	})
	sim := NewSimulation(l, WithController(ctrl))
	snap := sim.RunFrame()
	if calls != 1 {
		t.Errorf("controller called %d times", calls)
	}
	if snap.ZVelocity != 0x4B/65536.0 {
		t.Errorf("z velocity = %v after one throttle frame", snap.ZVelocity)
	}

	// no controller flies neutral
	sim = NewSimulation(l)
	if snap := sim.RunFrame(); snap.ZVelocity != 0 {
		t.Errorf("neutral z velocity = %v", snap.ZVelocity)
	}
}

func TestOxygenRunsOut(t *testing.T) {
	l := testLevel(t, 8, 1000, 1, rows(plainRow, 20))
	sim := NewSimulation(l)
	var snap GameSnapshot
	// 0x7530 / 0x24 per frame drains a 1-unit tank in 36 frames
	for i := 0; i < 40; i++ {
		snap = sim.Step(input.Neutral)
	}
	if snap.CraftState != OutOfOxygen {
		t.Errorf("state = %v, want OutOfOxygen", snap.CraftState)
	}
	if snap.OxygenPercent != 0 {
		t.Errorf("oxygen = %v, want 0", snap.OxygenPercent)
	}
}
