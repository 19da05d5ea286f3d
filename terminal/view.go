package terminal

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/open-roads/hud"
	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/physics"
	"github.com/lixenwraith/open-roads/status"
)

// Track layout
const (
	// LaneWidth is the number of screen columns per road column
	LaneWidth = 3
	// RowsBehind is how many rows are drawn below the craft
	RowsBehind = 2
	// TrackWidth is the framed track width
	TrackWidth = level.Columns*LaneWidth + 2

	gaugeWidth = 12
)

// Glyphs
const (
	glyphCube       = '█'
	glyphTunnel     = '∩'
	glyphKill       = '×'
	glyphAccelerate = '↑'
	glyphDecelerate = '↓'
	glyphSlide      = '~'
	glyphRefill     = '+'
	glyphCraft      = '▲'
	glyphAirborne   = '△'
	glyphWreck      = '✱'
	glyphStranded   = '▽'
	glyphBeyond     = '░'
)

// View lays out the track on the left and the cockpit panel on the right
type View struct {
	dash   *hud.Dashboard
	status *status.Registry
}

// NewView creates a view; reg may be nil to hide the status lines
func NewView(reg *status.Registry) *View {
	return &View{dash: hud.NewDashboard(), status: reg}
}

// Dashboard returns the readouts of the last drawn frame
func (v *View) Dashboard() *hud.Dashboard {
	return v.dash
}

// Draw renders one frame; outcome is the session result text, paused overlays a banner
func (v *View) Draw(r Region, snap physics.GameSnapshot, lvl *level.Level, outcome string, paused bool) {
	v.dash.Update(snap, lvl)
	r.Fill(' ', styleDefault)

	track := r.Sub(0, 0, TrackWidth, r.H)
	track.Box(styleBorder)
	DrawTrack(track.Inset(1), snap, lvl)

	panel := r.Sub(TrackWidth+1, 0, r.W-TrackWidth-1, r.H)
	v.drawPanel(panel, lvl, outcome, paused)
}

// DrawTrack draws the road top-down with the craft RowsBehind rows above the bottom
func DrawTrack(r Region, snap physics.GameSnapshot, lvl *level.Level) {
	if r.H <= 0 || lvl == nil {
		return
	}
	z := snap.Position.Z()
	base := int(math.Floor(z)) - RowsBehind

	for y := 0; y < r.H; y++ {
		row := base + (r.H - 1 - y)
		for col := 0; col < level.Columns; col++ {
			ch, style := cellGlyph(lvl, col, row)
			for i := 0; i < LaneWidth; i++ {
				r.Cell(col*LaneWidth+i, y, ch, style)
			}
		}
	}

	craftY := r.H - 1 - RowsBehind
	if craftY < 0 {
		craftY = 0
	}
	craftX := CraftColumn(snap.Position.X())
	if craftX < 0 || craftX >= level.Columns*LaneWidth {
		return
	}
	r.Cell(craftX, craftY, craftGlyph(snap), styleDefault.Foreground(tcell.ColorWhite).Bold(true))
}

// CraftColumn maps a world x to the screen column of the craft within the track
func CraftColumn(x float64) int {
	return int(math.Floor((x - level.XOrigin) / level.CellWidth * LaneWidth))
}

func craftGlyph(snap physics.GameSnapshot) rune {
	switch snap.CraftState {
	case physics.Exploded:
		return glyphWreck
	case physics.OutOfFuel, physics.OutOfOxygen:
		return glyphStranded
	}
	if snap.Position.Y() > level.GroundHeight+1 {
		return glyphAirborne
	}
	return glyphCraft
}

func cellGlyph(lvl *level.Level, col, row int) (rune, tcell.Style) {
	if row >= lvl.Length() {
		return glyphBeyond, styleBorder
	}
	c := lvl.CellAt(col, row)
	switch {
	case c.Cube != nil:
		return glyphCube, styleDefault.Foreground(RGB(c.Cube.Colors.Top))
	case c.Tunnel != nil:
		style := styleDefault.Foreground(RGB(c.Tunnel.Colors[0]))
		if c.Tile != nil {
			style = style.Background(RGB(c.Tile.Colors.Top))
		}
		return glyphTunnel, style
	case c.Tile != nil:
		top := c.Tile.Colors.Top
		style := styleDefault.Background(RGB(top)).Foreground(contrast(top))
		switch c.Tile.Effect {
		case level.EffectKill:
			return glyphKill, style.Foreground(tcell.ColorRed).Bold(true)
		case level.EffectAccelerate:
			return glyphAccelerate, style
		case level.EffectDecelerate:
			return glyphDecelerate, style
		case level.EffectSlide:
			return glyphSlide, style
		case level.EffectRefillOxygen:
			return glyphRefill, style
		}
		return ' ', style
	}
	return ' ', styleDefault
}

func (v *View) drawPanel(r Region, lvl *level.Level, outcome string, paused bool) {
	d := v.dash
	y := 0
	line := func(label string, style tcell.Style) int {
		return r.Text(0, y, label, style)
	}

	if lvl != nil {
		line(lvl.Name, styleHeader)
	}
	y++

	x := line("GRAV ", styleDim)
	tens, units, showTens, showUnits := d.GravityDigits()
	if showTens {
		r.Text(x, y, strconv.Itoa(tens), styleDefault)
	}
	if showUnits {
		r.Text(x+1, y, strconv.Itoa(units), styleDefault)
	}
	y++

	gauge := func(label string, amt float64, warn bool) {
		x := line(label, styleDim)
		x += r.Text(x, y, hud.Bar(amt, gaugeWidth), styleDefault)
		if warn {
			r.Text(x+1, y, "EMPTY", styleWarning)
		}
		y++
	}
	gauge("O2   ", d.Oxygen(), d.OxygenWarning())
	gauge("FUEL ", d.Fuel(), d.FuelWarning())
	gauge("SPD  ", d.Speed(), false)
	if frac, ok := d.Progress(); ok {
		gauge("DIST ", frac, false)
	}

	if d.JumpMasterLamp() {
		line("JUMP-O-MASTER", styleLamp)
	} else {
		line("JUMP-O-MASTER", styleBorder)
	}
	y++
	line("STATE "+d.State().String(), styleDefault)
	y += 2

	switch {
	case paused:
		line(" PAUSED ", stylePaused)
		y += 2
	case outcome == "Won":
		line(" "+outcome+" ", styleWon)
		y += 2
	case outcome != "" && outcome != "Running":
		line(" "+outcome+" ", styleLost)
		y += 2
	}

	if v.status != nil {
		for _, s := range v.status.Lines() {
			if y >= r.H-1 {
				break
			}
			line(s, styleDim)
			y++
		}
	}

	y = r.H - 1
	line("arrows/wasd space p r q", styleBorder)
}
