package input

import "math"

// DemoBytesPerTile is how many demo bytes cover one row of road
const DemoBytesPerTile = float64(0x10000) / 0x666

// DemoController replays a recorded demo indexed by forward position
// Each byte packs accel in bits 0-1, turn in bits 2-3 and jump in bit 4,
// the two-bit fields biased by one
type DemoController struct {
	demo []byte
}

// NewDemoController wraps recorded demo bytes
func NewDemoController(demo []byte) *DemoController {
	return &DemoController{demo: demo}
}

// Len returns the number of recorded bytes
func (d *DemoController) Len() int {
	return len(d.demo)
}

func (d *DemoController) Update(pos Position) ControllerState {
	idx := math.Floor(pos.ZPosition() * DemoBytesPerTile)
	if idx < 0 || idx >= float64(len(d.demo)) {
		return Neutral
	}
	return DecodeDemoByte(d.demo[int(idx)])
}

// DecodeDemoByte unpacks one demo byte
// The unused field value 3 decodes to +2 and is clamped to +1
func DecodeDemoByte(b byte) ControllerState {
	turn := clampUnit(float64((b>>2)&3) - 1)
	accel := clampUnit(float64(b&3) - 1)
	jump := (b>>4)&1 > 0
	return ControllerState{TurnInput: turn, AccelInput: accel, JumpInput: jump}
}

// EncodeDemoByte packs a state into the demo byte layout
// Inputs are rounded to the nearest of -1, 0, 1
func EncodeDemoByte(cs ControllerState) byte {
	turn := byte(math.Round(clampUnit(cs.TurnInput)) + 1)
	accel := byte(math.Round(clampUnit(cs.AccelInput)) + 1)
	b := accel | turn<<2
	if cs.JumpInput {
		b |= 1 << 4
	}
	return b
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
