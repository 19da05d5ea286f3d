package level

import (
	"math"

	"github.com/lixenwraith/open-roads/vmath"
)

// Collision geometry constants lifted from the original executable
const (
	// ProbeOffset is the half-width of the craft used for the occupancy probes
	ProbeOffset = 14.0

	// LaneWidth is the period of the lane-center offset
	LaneWidth = 46.0
	// LaneCenterX is the x the lane offset is measured from
	LaneCenterX = 49.0
	// LaneHalf is the distance from a lane edge to its center
	LaneHalf = 23.0

	// SlabTop and SlabBottom bound the band under the ground surface that is always solid
	SlabTop    = 80.0
	SlabBottom = 0x1E80 / 128.0
	// ProfileFloor is the lowest y the profile tables are consulted at
	ProfileFloor = 0x2180 / 128.0

	// ProfileBase is the y the tunnel tables are relative to
	ProfileBase = 68.0
	// ProfileMax is the largest distance-from-center the tables cover
	ProfileMax = 37
)

// tunCeils is the tunnel roof height above ProfileBase per distance from lane center
var tunCeils = [38]float64{
	0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20,
	0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20,
	0x20, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1E, 0x1E,
	0x1E, 0x1D, 0x1D, 0x1D, 0x1C, 0x1B, 0x1A, 0x19,
	0x18, 0x16, 0x14, 0x12, 0x11, 0xE,
}

// tunLows is the tunnel floor height above ProfileBase per distance from lane center
// Shorter than tunCeils: distances 30-37 have no floor entry and every comparison against them fails
var tunLows = [30]float64{
	0x10, 0x10, 0x10, 0x10, 0x0F, 0x0E, 0x0D, 0x0B,
	0x08, 0x07, 0x06, 0x05, 0x03, 0x03, 0x03, 0x03,
	0x03, 0x03, 0x02, 0x01, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

func tunnelCeil(d int) (float64, bool) {
	if d < 0 || d >= len(tunCeils) {
		return 0, false
	}
	return tunCeils[d], true
}

func tunnelLow(d int) (float64, bool) {
	if d < 0 || d >= len(tunLows) {
		return 0, false
	}
	return tunLows[d], true
}

// laneOffset returns the distance from the lane center and the x step to the neighbor lane
func laneOffset(x float64) (dist, neighbor float64) {
	dist = LaneHalf - math.Mod(x-LaneCenterX, LaneWidth)
	neighbor = -LaneWidth
	if dist < 0 {
		dist = 1 - dist
		neighbor = LaneWidth
	}
	return dist, neighbor
}

// insideTileBand tests one cell's vertical occlusion at a distance from lane center
func insideTileBand(y, dist float64, c Cell) bool {
	d := int(vmath.RoundHalfUp(dist))
	if d > ProfileMax {
		return false
	}

	y2 := y - ProfileBase
	switch {
	case c.Tunnel != nil && c.Cube == nil:
		low, okLow := tunnelLow(d)
		ceil, okCeil := tunnelCeil(d)
		return okLow && okCeil && y2 > low && y2 < ceil
	case c.Tunnel == nil && c.Cube != nil:
		return y < c.Cube.Height
	case c.Tunnel != nil && c.Cube != nil:
		low, ok := tunnelLow(d)
		return ok && y2 > low && y < c.Cube.Height
	default:
		return false
	}
}

// insideTunnelBand tests whether y sits in the floor pocket of a tiled tunnel
func insideTunnelBand(y, dist float64, c Cell) bool {
	d := int(vmath.RoundHalfUp(dist))
	if d > ProfileMax {
		return false
	}
	low, ok := tunnelLow(d)
	return c.Tunnel != nil && c.Tile != nil && ok && y-ProfileBase < low && y >= SlabTop
}

// occupied reports whether either lateral probe touches any geometry
func (l *Level) occupied(x, y, z float64) bool {
	return !l.GetCell(x-ProbeOffset, y, z).IsEmpty() || !l.GetCell(x+ProbeOffset, y, z).IsEmpty()
}

// IsInsideTile reports whether a point lies inside solid tile, block or tunnel geometry
func (l *Level) IsInsideTile(x, y, z float64) bool {
	if !l.occupied(x, y, z) {
		return false
	}

	if y < SlabTop && y > SlabBottom {
		return true
	}
	if y < ProfileFloor {
		return false
	}

	dist, neighbor := laneOffset(x)
	if insideTileBand(y, dist, l.GetCell(x, y, z)) {
		return true
	}
	return insideTileBand(y, 47-dist, l.GetCell(x+neighbor, y, z))
}

// IsInsideTunnel reports whether a point rests inside a tunnel's floor pocket
// Only used to decide the finish
func (l *Level) IsInsideTunnel(x, y, z float64) bool {
	if !l.occupied(x, y, z) {
		return false
	}

	dist, neighbor := laneOffset(x)
	if insideTunnelBand(y, dist, l.GetCell(x, y, z)) {
		return true
	}
	return insideTunnelBand(y, 47-dist, l.GetCell(x+neighbor, y, z))
}
