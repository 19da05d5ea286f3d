package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
)

func TestCompareIdentical(t *testing.T) {
	l, err := level.Builtin("blocks")
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	d, err := Compare(context.Background(), l, accelerate, accelerate, 600)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if d != nil {
		t.Errorf("identical runs diverged: %s", d)
	}
}

func TestCompareFindsFirstDivergence(t *testing.T) {
	l := buildLevel(t, 100, repeat(plain, 60)...)

	frames := make([]input.ControllerState, 40)
	for i := range frames {
		frames[i] = input.MustControllerState(0, 1, false)
	}
	steered := append([]input.ControllerState(nil), frames...)
	for i := 20; i < len(steered); i++ {
		steered[i] = input.MustControllerState(1, 1, false)
	}

	d, err := Compare(context.Background(), l, input.NewTape(frames), input.NewTape(steered), 40)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if d == nil {
		t.Fatal("steering should change the trajectory")
	}
	if d.Frame < 21 {
		t.Errorf("divergence reported at frame %d, before the inputs differ", d.Frame)
	}
	if !d.A.Diverges(d.B) || d.A.Frame != d.B.Frame {
		t.Error("divergence snapshots should differ at the same frame")
	}
}

func TestCompareErrors(t *testing.T) {
	l := buildLevel(t, 100, repeat(plain, 10)...)

	if _, err := Compare(context.Background(), l, accelerate, accelerate, 0); !errors.Is(err, ErrFrameCount) {
		t.Errorf("zero frames: err = %v", err)
	}
	if _, err := Compare(context.Background(), l, accelerate, nil, 10); !errors.Is(err, ErrNilController) {
		t.Errorf("nil controller: err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compare(ctx, l, accelerate, accelerate, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: err = %v", err)
	}
}

func TestRunRecordsEveryFrame(t *testing.T) {
	l := buildLevel(t, 100, repeat(plain, 10)...)
	snaps, err := Run(context.Background(), l, accelerate, 25)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snaps) != 25 {
		t.Fatalf("recorded %d frames", len(snaps))
	}
	for i, s := range snaps {
		if s.Frame != uint64(i+1) {
			t.Errorf("snapshot %d has frame %d", i, s.Frame)
		}
	}
}
