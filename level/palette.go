package level

// PaletteSize is the number of colors stored with every level
const PaletteSize = 72

// Color is an 8-bit RGB triple; level files store 6-bit VGA components
type Color struct {
	R, G, B uint8
}

// VGAColor expands 6-bit VGA DAC components to 8 bits
func VGAColor(r, g, b uint8) Color {
	return Color{R: r * 4, G: g * 4, B: b * 4}
}

// CubeColors holds the face colors of a tile or raised block
type CubeColors struct {
	Left, Right, Top, Front Color
}

// Palette is the per-level color table cells derive their faces from
// Layout: tile faces in four bands of 15 (top, front, right, left), cube faces at 61-64, tunnel walls at 66-71
type Palette [PaletteSize]Color

// TileColors returns the faces of a ground tile with the given color index
func (p *Palette) TileColors(index uint8) CubeColors {
	i := int(index)
	return CubeColors{
		Left:  p[i+45],
		Right: p[i+30],
		Top:   p[i],
		Front: p[i+15],
	}
}

// CubeColors returns the default faces of a raised block
func (p *Palette) CubeColors() CubeColors {
	return CubeColors{Left: p[64], Right: p[63], Top: p[61], Front: p[62]}
}

// CubeColorsWithTop returns block faces with the top taken from a tile color index
func (p *Palette) CubeColorsWithTop(top uint8) CubeColors {
	return CubeColors{Left: p[64], Right: p[63], Top: p[top], Front: p[62]}
}

// TunnelColors returns the six tunnel wall colors, outermost first
func (p *Palette) TunnelColors() [6]Color {
	var out [6]Color
	for i := range out {
		out[i] = p[71-i]
	}
	return out
}

// DefaultPalette is a readable palette for levels authored as text
func DefaultPalette() Palette {
	var p Palette
	base := [16]Color{
		{0, 0, 0}, {96, 96, 104}, {200, 60, 60}, {60, 120, 200},
		{200, 200, 60}, {160, 100, 40}, {60, 160, 160}, {180, 180, 180},
		{140, 140, 150}, {40, 200, 220}, {60, 220, 80}, {120, 60, 160},
		{230, 30, 30}, {220, 130, 40}, {100, 100, 220}, {240, 240, 240},
	}
	shade := func(c Color, num, den int) Color {
		return Color{
			R: uint8(int(c.R) * num / den),
			G: uint8(int(c.G) * num / den),
			B: uint8(int(c.B) * num / den),
		}
	}
	for i := 0; i < 15; i++ {
		p[i] = base[i]
		p[i+15] = shade(base[i], 3, 4)
		p[i+30] = shade(base[i], 1, 2)
		p[i+45] = shade(base[i], 5, 8)
	}
	p[61] = Color{150, 150, 160}
	p[62] = Color{110, 110, 120}
	p[63] = Color{80, 80, 90}
	p[64] = Color{95, 95, 105}
	for i := 66; i < PaletteSize; i++ {
		v := uint8(40 + (i-66)*30)
		p[i] = Color{v / 2, v / 2, v}
	}
	return p
}
