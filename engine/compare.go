package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
	"github.com/lixenwraith/open-roads/physics"
)

var (
	ErrFrameCount    = errors.New("frame count must be positive")
	ErrNilController = errors.New("controller is nil")
)

// cancelCheckInterval is how many frames run between context checks
const cancelCheckInterval = 256

// Divergence is the first frame at which two runs disagree
type Divergence struct {
	Frame uint64
	A, B  physics.GameSnapshot
}

func (d *Divergence) String() string {
	return fmt.Sprintf("frame %d: a=%v/%v/%s b=%v/%v/%s",
		d.Frame, d.A.Position, d.A.ZVelocity, d.A.CraftState, d.B.Position, d.B.ZVelocity, d.B.CraftState)
}

// Run records frames snapshots of one simulation of lvl driven by c
func Run(ctx context.Context, lvl *level.Level, c input.Controller, frames int, opts ...physics.Option) ([]physics.GameSnapshot, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFrameCount, frames)
	}
	if c == nil {
		return nil, ErrNilController
	}

	opts = append(append([]physics.Option(nil), opts...), physics.WithController(c))
	sim := physics.NewSimulation(lvl, opts...)

	out := make([]physics.GameSnapshot, 0, frames)
	for i := 0; i < frames; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out = append(out, sim.RunFrame())
	}
	return out, nil
}

// Compare runs two simulations of the same level concurrently, one per
// controller, and returns the first divergent frame or nil when every frame matches
// Controllers must not share state and opts must not carry a shared Notifier;
// the level is only read
func Compare(ctx context.Context, lvl *level.Level, a, b input.Controller, frames int, opts ...physics.Option) (*Divergence, error) {
	var runA, runB []physics.GameSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		runA, err = Run(gctx, lvl, a, frames, opts...)
		if err != nil {
			return fmt.Errorf("run a: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		runB, err = Run(gctx, lvl, b, frames, opts...)
		if err != nil {
			return fmt.Errorf("run b: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range runA {
		if runA[i].Diverges(runB[i]) {
			return &Divergence{Frame: runA[i].Frame, A: runA[i], B: runB[i]}, nil
		}
	}
	return nil, nil
}
