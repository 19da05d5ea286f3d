package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/open-roads/audio"
	"github.com/lixenwraith/open-roads/config"
	"github.com/lixenwraith/open-roads/engine"
	"github.com/lixenwraith/open-roads/event"
	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/logger"
	"github.com/lixenwraith/open-roads/physics"
	"github.com/lixenwraith/open-roads/status"
	"github.com/lixenwraith/open-roads/terminal"
)

// frameInterval is the render rate; physics runs at the configured tick rate
const frameInterval = 16 * time.Millisecond

var (
	configFlag = flag.String("config", "", "TOML settings file")
	levelFlag  = flag.String("level", "", "builtin level name or level file, overrides config")
	indexFlag  = flag.Int("index", -1, "level index within a level set, overrides config")
	demoFlag   = flag.String("demo", "", "demo tape to fly instead of the keyboard")
	logFlag    = flag.String("log", "", "log file; the screen owns stdout and stderr")
	muteFlag   = flag.Bool("mute", false, "disable sound")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "openroads: %v\n", err)
		os.Exit(1)
	}

	closer, err := setupLogging(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "openroads: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg); err != nil {
		logger.Log.WithError(err).Error("openroads exited")
		fmt.Fprintf(os.Stderr, "openroads: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *levelFlag != "" {
		cfg.Replay.Level = *levelFlag
	}
	if *indexFlag >= 0 {
		cfg.Replay.LevelIndex = *indexFlag
	}
	if *demoFlag != "" {
		cfg.Replay.Demo = *demoFlag
	}
	if *logFlag != "" {
		cfg.Log.File = *logFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

func setupLogging(lc config.Log) (io.Closer, error) {
	logger.Init()
	if lvl, err := logrus.ParseLevel(lc.Level); err == nil {
		logger.Log.SetLevel(lvl)
	}
	if lc.File == "" {
		logger.Discard()
		return io.NopCloser(nil), nil
	}
	return logger.ToFile(lc.File)
}

// game is the terminal front end around one session
type game struct {
	screen  tcell.Screen
	session *engine.Session
	driver  *engine.FrameDriver
	clock   *engine.PausableClock
	keys    *terminal.KeyboardSource
	view    *terminal.View

	paused  *atomic.Bool
	frameMs *status.AtomicFloat
}

func run(cfg *config.Config) error {
	lvl, err := cfg.Replay.OpenLevel()
	if err != nil {
		return err
	}
	demo, err := cfg.Replay.OpenDemo()
	if err != nil {
		return err
	}

	log := logger.Log.WithField("component", "openroads")
	reg := status.NewRegistry()
	notifier := event.NewNotifier()

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.WithError(err).Warn("continuing without sound")
		} else {
			defer sm.Cleanup()
			sm.SetVolume(cfg.Audio.Volume)
			if _, err := notifier.Register(sm); err != nil {
				return err
			}
		}
	}

	keys := terminal.NewKeyboardSource(nil, terminal.DefaultHoldTime)
	var controller input.Controller = input.NewSourceController(keys)
	if demo != nil {
		controller = demo
		log.WithField("bytes", demo.Len()).Info("flying demo tape")
	}

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
	driver := engine.NewFrameDriver(session, clock,
		engine.WithTickRate(cfg.Physics.TickRate),
		engine.WithMaxCatchUp(cfg.Physics.MaxCatchUp),
		engine.WithStatus(reg),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Panic Recovery: restore the terminal before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nOPENROADS CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	g := &game{
		screen:  screen,
		session: session,
		driver:  driver,
		clock:   clock,
		keys:    keys,
		view:    terminal.NewView(reg),
		paused:  reg.Bool(status.KeyPaused),
		frameMs: reg.Float(status.KeyFrameMillis),
	}
	log.WithFields(logrus.Fields{"level": lvl.Name, "rows": lvl.Length(), "tick_rate": cfg.Physics.TickRate}).Info("session started")
	g.loop()
	return nil
}

func (g *game) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case <-ticker.C:
			start := time.Now()
			g.driver.Frame()
			g.draw()
			g.frameMs.Set(float64(time.Since(start).Microseconds()) / 1000)
		}
	}
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'p', 'P':
				paused := g.clock.Toggle()
				g.keys.Release()
				g.paused.Store(paused)
				return true
			case 'r', 'R':
				g.session.Restart()
				g.keys.Release()
				return true
			}
		}
		g.keys.HandleKey(ev)

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *game) draw() {
	g.screen.Clear()
	g.view.Draw(terminal.NewRegion(g.screen), g.session.Snapshot(), g.session.Level(),
		g.session.Outcome().String(), g.clock.IsPaused())
	g.screen.Show()
}
