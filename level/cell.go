package level

import "math"

// Tile is the ground-level surface of a cell
type Tile struct {
	Colors CubeColors
	Effect TouchEffect
}

// Cube is a raised block standing on a cell
// Height is NaN for the one flag pattern that falls outside the height table;
// such blocks exist but never occlude and never match a resting height
type Cube struct {
	Height float64
	Colors CubeColors
	Effect TouchEffect
}

// Tunnel is enclosing geometry collided through the tunnel profile tables
type Tunnel struct {
	Colors [6]Color
}

// Cell is one immutable grid location
// Any subset of Tile, Cube and Tunnel may be present; none means open void
type Cell struct {
	Tile   *Tile
	Cube   *Cube
	Tunnel *Tunnel

	// Raw and Flags are the bytes the cell was built from
	Raw   uint8
	Flags uint8
}

// Cell flag bits
const (
	FlagTunnel     = 0x1
	FlagCubeHeight = 0x6
)

// cubeHeights is indexed directly by flags&FlagCubeHeight
var cubeHeights = [...]float64{80, 100, 100, 100, 120}

// CubeHeight resolves the block height encoded in the flag byte
func CubeHeight(flags uint8) float64 {
	idx := int(flags & FlagCubeHeight)
	if idx >= len(cubeHeights) {
		return math.NaN()
	}
	return cubeHeights[idx]
}

// NewCell interprets a color byte pair and flag byte
// colorLow selects the tile, colorHigh the cube top; both map through EffectForColor
func NewCell(p *Palette, colorLow, colorHigh, raw, flags uint8) Cell {
	c := Cell{Raw: raw, Flags: flags}

	if flags&FlagTunnel != 0 {
		t := &Tunnel{}
		if p != nil {
			t.Colors = p.TunnelColors()
		}
		c.Tunnel = t
	}

	if flags&FlagCubeHeight != 0 {
		cube := &Cube{
			Height: CubeHeight(flags),
			Effect: EffectForColor(colorHigh),
		}
		if p != nil {
			if colorHigh > 0 {
				cube.Colors = p.CubeColorsWithTop(colorHigh)
			} else {
				cube.Colors = p.CubeColors()
			}
		}
		c.Cube = cube
	}

	if colorLow > 0 {
		tile := &Tile{Effect: EffectForColor(colorLow)}
		if p != nil {
			tile.Colors = p.TileColors(colorLow)
		}
		c.Tile = tile
	}

	return c
}

// NewCellFromBytes splits a packed color byte into tile (low nibble) and cube (high nibble) indices
func NewCellFromBytes(p *Palette, color, flags uint8) Cell {
	return NewCell(p, color&0xF, color>>4, color, flags)
}

// IsEmpty reports whether the cell has no geometry at all
func (c Cell) IsEmpty() bool {
	return c.Tile == nil && c.Cube == nil && c.Tunnel == nil
}

// IsKill reports whether the cell's ground tile destroys the craft
func (c Cell) IsKill() bool {
	return c.Tile != nil && c.Tile.Effect == EffectKill
}
