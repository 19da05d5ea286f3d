// Package hud derives the cockpit dashboard readouts from simulation snapshots
package hud

import (
	"math"

	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/physics"
	"github.com/lixenwraith/open-roads/vmath"
)

// gravityDigitBias is subtracted from level gravity before it is shown
const gravityDigitBias = 3

// blinkPeriod and blinkOn control the empty-tank warning lamp
const (
	blinkPeriod = 4
	blinkOn     = 2
)

// Dashboard holds the readouts of the most recent update
// The zero value shows empty gauges until the first Update
type Dashboard struct {
	oxygen   float64
	fuel     float64
	speed    float64
	z        float64
	length   float64
	gravity  int
	assist   bool
	state    physics.State
	frame    uint64
	finished bool
}

// NewDashboard creates a dashboard with no readings
func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// Update refreshes every readout from snap; lvl supplies gravity and length
// Each call counts one dashboard frame for the warning blink
func (d *Dashboard) Update(snap physics.GameSnapshot, lvl *level.Level) {
	d.oxygen = snap.OxygenPercent
	d.fuel = snap.FuelPercent
	d.speed = snap.Velocity.Z() / vmath.ZVelocityMax
	d.z = snap.Position.Z()
	d.assist = snap.JumpOMasterInUse
	d.state = snap.CraftState
	d.finished = snap.DidWin
	if lvl != nil {
		d.gravity = lvl.Gravity
		d.length = float64(lvl.Length())
	}
	d.frame++
}

// Oxygen is the remaining oxygen fraction
func (d *Dashboard) Oxygen() float64 { return d.oxygen }

// Fuel is the remaining fuel fraction
func (d *Dashboard) Fuel() float64 { return d.fuel }

// Speed is displayed forward speed as a fraction of the maximum
func (d *Dashboard) Speed() float64 { return d.speed }

// Progress is the fraction of the level covered; ok is false for an empty level
func (d *Dashboard) Progress() (frac float64, ok bool) {
	if d.length <= 0 {
		return 0, false
	}
	return d.z / d.length, true
}

// JumpMasterLamp reports whether the jump assist light is lit
func (d *Dashboard) JumpMasterLamp() bool { return d.assist }

// OxygenWarning reports whether the empty oxygen lamp is lit this frame
func (d *Dashboard) OxygenWarning() bool {
	return d.state == physics.OutOfOxygen && d.blink()
}

// FuelWarning reports whether the empty fuel lamp is lit this frame
func (d *Dashboard) FuelWarning() bool {
	return d.state == physics.OutOfFuel && d.blink()
}

func (d *Dashboard) blink() bool {
	return d.frame%blinkPeriod < blinkOn
}

// State is the craft state at the last update
func (d *Dashboard) State() physics.State { return d.state }

// Finished reports whether the last update was a winning frame
func (d *Dashboard) Finished() bool { return d.finished }

// Frame is the number of updates so far
func (d *Dashboard) Frame() uint64 { return d.frame }

// GravityDigits splits the shown gravity into tens and units
// A digit is only drawn when positive, so zero units and low gravities show blanks
func (d *Dashboard) GravityDigits() (tens, units int, showTens, showUnits bool) {
	g := d.gravity - gravityDigitBias
	tens = int(math.Floor(float64(g) / 10))
	units = g % 10
	return tens, units, tens > 0, units > 0
}

// GaugeFrame selects which of frames gauge images shows amt
// amt above 1 pins the gauge full; below 0 it reads empty
func GaugeFrame(amt float64, frames int) int {
	if frames <= 0 {
		return 0
	}
	i := int(math.Floor(math.Min(1, amt) * float64(frames-1)))
	if i < 0 {
		return 0
	}
	return i
}
