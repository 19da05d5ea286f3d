// roadview flies a level in a window, drawing the road from above
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/open-roads/audio"
	"github.com/lixenwraith/open-roads/config"
	"github.com/lixenwraith/open-roads/engine"
	"github.com/lixenwraith/open-roads/event"
	"github.com/lixenwraith/open-roads/hud"
	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/logger"
	"github.com/lixenwraith/open-roads/physics"
	"github.com/lixenwraith/open-roads/status"
)

// Layout in unscaled pixels
const (
	cellPx      = 12
	rowsVisible = 30
	rowsBehind  = 3
	panelPx     = 150
	gaugePx     = 100
)

var errQuit = errors.New("quit")

var (
	panelFace = text.NewGoXFace(basicfont.Face7x13)

	colorText    = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	colorDim     = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	colorWarning = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	colorLamp    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	colorWon     = color.RGBA{R: 80, G: 255, B: 80, A: 255}
	colorLost    = color.RGBA{R: 255, G: 70, B: 70, A: 255}
)

var (
	configFlag = flag.String("config", "", "TOML settings file")
	levelFlag  = flag.String("level", "", "builtin level name or level file, overrides config")
	demoFlag   = flag.String("demo", "", "demo tape to fly instead of the keyboard")
)

type viewer struct {
	scale    float32
	session  *engine.Session
	driver   *engine.FrameDriver
	provider *engine.InterpolatingProvider
	clock    *engine.PausableClock
	dash     *hud.Dashboard
	reg      *status.Registry
}

func main() {
	flag.Parse()
	logger.Init()

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "roadview: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *levelFlag != "" {
		cfg.Replay.Level = *levelFlag
	}
	if *demoFlag != "" {
		cfg.Replay.Demo = *demoFlag
	}

	v, err := newViewer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roadview: %v\n", err)
		os.Exit(1)
	}

	w, h := v.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("OpenRoads - " + v.session.Level().Name)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, errQuit) {
		logger.Log.WithError(err).Error("viewer stopped")
		os.Exit(1)
	}
}

func newViewer(cfg *config.Config) (*viewer, error) {
	lvl, err := cfg.Replay.OpenLevel()
	if err != nil {
		return nil, err
	}
	demo, err := cfg.Replay.OpenDemo()
	if err != nil {
		return nil, err
	}

	log := logger.Log.WithField("component", "roadview")
	notifier := event.NewNotifier()
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.WithError(err).Warn("continuing without sound")
		} else {
			sm.SetVolume(cfg.Audio.Volume)
			if _, err := notifier.Register(sm); err != nil {
				return nil, err
			}
		}
	}

	var controller input.Controller = input.NewSourceController(&keySource{})
	if demo != nil {
		controller = demo
	}

	reg := status.NewRegistry()
	session := engine.NewSession(lvl,
		engine.WithSimulationOptions(
			physics.WithNotifier(notifier),
			physics.WithController(controller),
			physics.WithTracer(log.WithField("level", lvl.Name)),
		),
		engine.WithSessionLogger(log),
		engine.WithSessionStatus(reg),
	)

	clock := engine.NewPausableClock(nil)
	provider := engine.NewInterpolatingProvider(clock)
	provider.Push(session.Snapshot())

	return &viewer{
		scale:   float32(cfg.View.Scale),
		session: session,
		driver: engine.NewFrameDriver(session, clock,
			engine.WithTickRate(cfg.Physics.TickRate),
			engine.WithMaxCatchUp(cfg.Physics.MaxCatchUp),
			engine.WithProvider(provider),
			engine.WithStatus(reg),
		),
		provider: provider,
		clock:    clock,
		dash:     hud.NewDashboard(),
		reg:      reg,
	}, nil
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return errQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.reg.Bool(status.KeyPaused).Store(v.clock.Toggle())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.session.Restart()
		v.provider.Reset()
		v.provider.Push(v.session.Snapshot())
	}
	v.driver.Frame()
	return nil
}

func (v *viewer) Layout(_, _ int) (int, int) {
	s := int(v.scale)
	return (level.Columns*cellPx + panelPx) * s, rowsVisible * cellPx * s
}

func (v *viewer) Draw(screen *ebiten.Image) {
	snap, ok := v.provider.Snapshot()
	if !ok {
		return
	}
	v.dash.Update(snap, v.session.Level())

	screen.Fill(color.Black)
	v.drawTrack(screen, snap)
	v.drawPanel(screen)
}

func rgba(c level.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (v *viewer) drawTrack(screen *ebiten.Image, snap physics.GameSnapshot) {
	lvl := v.session.Level()
	cell := cellPx * v.scale
	trackH := rowsVisible * cell

	base := snap.Position.Z() - rowsBehind
	screenY := func(z float64) float32 {
		return trackH - float32(z-base)*cell
	}

	first := int(math.Floor(base))
	for row := first; row <= first+rowsVisible+1; row++ {
		if row < 0 || row >= lvl.Length() {
			continue
		}
		top := screenY(float64(row + 1))
		for col := 0; col < level.Columns; col++ {
			c := lvl.CellAt(col, row)
			x := float32(col) * cell
			if c.Tile != nil {
				vector.DrawFilledRect(screen, x, top, cell, cell, rgba(c.Tile.Colors.Top), false)
				if c.Tile.Effect == level.EffectKill {
					red := color.RGBA{R: 255, A: 255}
					vector.StrokeLine(screen, x+2, top+2, x+cell-2, top+cell-2, 2, red, true)
					vector.StrokeLine(screen, x+cell-2, top+2, x+2, top+cell-2, 2, red, true)
				}
			}
			if c.Cube != nil {
				vector.DrawFilledRect(screen, x+1, top+1, cell-2, cell-2, rgba(c.Cube.Colors.Top), false)
				vector.StrokeRect(screen, x+1, top+1, cell-2, cell-2, 1, rgba(c.Cube.Colors.Front), false)
			}
			if c.Tunnel != nil {
				vector.StrokeRect(screen, x+1, top+1, cell-2, cell-2, 2, rgba(c.Tunnel.Colors[0]), false)
			}
		}
	}

	cx := float32((snap.Position.X()-level.XOrigin)/level.CellWidth) * cell
	cy := screenY(snap.Position.Z())
	// the shadow grows with height above the road
	lift := float32(math.Max(0, snap.Position.Y()-level.GroundHeight)/level.GroundHeight) * cell / 4
	vector.DrawFilledCircle(screen, cx, cy, cell/3+lift, color.RGBA{A: 120}, true)

	craft := color.RGBA{R: 240, G: 240, B: 255, A: 255}
	switch snap.CraftState {
	case physics.Exploded:
		craft = color.RGBA{R: 255, G: 120, B: 0, A: 255}
	case physics.OutOfFuel, physics.OutOfOxygen:
		craft = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	}
	vector.DrawFilledCircle(screen, cx, cy-lift, cell/3, craft, true)
}

func (v *viewer) drawPanel(screen *ebiten.Image) {
	s := v.scale
	x0 := float32(level.Columns*cellPx)*s + 8*s
	y := float32(8) * s
	lineH := float32(16) * s

	label := func(str string, clr color.Color, x float32) {
		op := &text.DrawOptions{}
		op.GeoM.Scale(float64(s), float64(s))
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, str, panelFace, op)
	}
	line := func(str string, clr color.Color) {
		label(str, clr, x0)
		y += lineH
	}
	gauge := func(name string, amt float64, warn bool) {
		label(name, colorDim, x0)
		gx := x0 + 40*s
		w := float32(gaugePx) * s
		frac := float32(hud.GaugeFrame(amt, gaugePx+1)) / gaugePx
		vector.StrokeRect(screen, gx, y, w, 10*s, 1, colorDim, false)
		fill := color.RGBA{R: 60, G: 200, B: 90, A: 255}
		if warn {
			fill = colorWarning
		}
		vector.DrawFilledRect(screen, gx, y, w*frac, 10*s, fill, false)
		y += lineH
	}

	d := v.dash
	line(v.session.Level().Name, colorText)
	tens, units, showTens, showUnits := d.GravityDigits()
	grav := []byte("GRAV   ")
	if showTens {
		grav[5] = byte('0' + tens%10)
	}
	if showUnits {
		grav[6] = byte('0' + units)
	}
	line(string(grav), colorText)
	gauge("O2", d.Oxygen(), d.OxygenWarning())
	gauge("FUEL", d.Fuel(), d.FuelWarning())
	gauge("SPD", d.Speed(), false)
	if frac, ok := d.Progress(); ok {
		gauge("DIST", frac, false)
	}
	if d.JumpMasterLamp() {
		line("JUMP-O-MASTER", colorLamp)
	} else {
		line("JUMP-O-MASTER", colorDim)
	}
	line("STATE "+d.State().String(), colorText)

	switch o := v.session.Outcome(); o {
	case engine.Running:
		y += lineH
	case engine.Won:
		line(o.String(), colorWon)
	default:
		line(o.String(), colorLost)
	}
	if v.clock.IsPaused() {
		line("PAUSED", colorWarning)
	}
	for _, l := range v.reg.Lines() {
		line(l, colorDim)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), int(x0), int(float32(rowsVisible*cellPx)*s)-16)
}
