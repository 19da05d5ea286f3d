// physcheck flies every selected level twice in lockstep and reports whether the
// simulation is deterministic, along with the outcome of each run
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/open-roads/config"
	"github.com/lixenwraith/open-roads/engine"
	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/logger"
	"github.com/lixenwraith/open-roads/physics"
)

var (
	levelsFlag = flag.String("levels", "", "comma-separated levels (builtin names or files); default all builtins")
	demoFlag   = flag.String("demo", "", "demo tape to fly; default full throttle")
	framesFlag = flag.Int("frames", 3000, "frames per run")
	jobsFlag   = flag.Int("jobs", runtime.NumCPU(), "levels checked concurrently")
)

type report struct {
	name       string
	outcome    engine.Outcome
	frame      uint64
	z          float64
	divergence *engine.Divergence
}

func main() {
	flag.Parse()
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	names := level.BuiltinNames()
	if *levelsFlag != "" {
		names = strings.Split(*levelsFlag, ",")
	}

	var demo []byte
	if *demoFlag != "" {
		data, err := os.ReadFile(*demoFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "physcheck: %v\n", err)
			os.Exit(1)
		}
		demo = data
	}
	newController := func() input.Controller {
		if demo != nil {
			return input.NewDemoController(demo)
		}
		return input.Constant(input.MustControllerState(0, 1, false))
	}

	reports, err := check(ctx, names, newController)
	if err != nil {
		logger.Log.WithError(err).Error("check failed")
		fmt.Fprintf(os.Stderr, "physcheck: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, r := range reports {
		verdict := "OK"
		if r.divergence != nil {
			verdict = "DIVERGED " + r.divergence.String()
			failed = true
		}
		fmt.Printf("%-16s %-9s frame=%-5d z=%-8.3f %s\n", r.name, r.outcome, r.frame, r.z, verdict)
	}
	if failed {
		os.Exit(1)
	}
}

func check(ctx context.Context, names []string, newController func() input.Controller) ([]report, error) {
	reports := make([]report, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*jobsFlag)
	for i, name := range names {
		g.Go(func() error {
			lvl, err := config.Replay{Level: strings.TrimSpace(name)}.OpenLevel()
			if err != nil {
				return err
			}

			div, err := engine.Compare(gctx, lvl, newController(), newController(), *framesFlag)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			s := engine.NewSession(lvl,
				engine.WithSimulationOptions(physics.WithController(newController())),
				engine.WithSessionLogger(logger.Log.WithField("component", "physcheck")),
			)
			for f := 0; f < *framesFlag && !s.Outcome().Terminal(); f++ {
				s.RunFrame()
			}
			snap := s.Snapshot()

			reports[i] = report{
				name:       lvl.Name,
				outcome:    s.Outcome(),
				frame:      snap.Frame,
				z:          snap.Position.Z(),
				divergence: div,
			}

			logger.Log.WithFields(logrus.Fields{"level": lvl.Name, "diverged": div != nil}).Debug("level checked")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
