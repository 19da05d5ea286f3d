package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if now := mock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(newTime)
	if now := mock.Now(); !now.Equal(newTime) {
		t.Errorf("Expected time to be %v after SetTime, got %v", newTime, now)
	}

	mock.Advance(time.Hour)
	if now, want := mock.Now(), newTime.Add(time.Hour); !now.Equal(want) {
		t.Errorf("Expected time to be %v after Advance, got %v", want, now)
	}

	mock.AdvanceSteps(3, 10*time.Millisecond)
	if now, want := mock.Now(), newTime.Add(time.Hour+30*time.Millisecond); !now.Equal(want) {
		t.Errorf("Expected time to be %v after AdvanceSteps, got %v", want, now)
	}
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
			done <- true
		}()
	}
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				mock.Advance(time.Millisecond)
			}
			done <- true
		}()
	}
	for i := 0; i < 15; i++ {
		<-done
	}

	expected := startTime.Add(250 * time.Millisecond)
	if now := mock.Now(); !now.Equal(expected) {
		t.Errorf("Expected time to be %v after concurrent operations, got %v", expected, now)
	}
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
	var _ TimeProvider = &PausableClock{}
}

func TestPausableClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	clock := NewPausableClock(mock)

	mock.Advance(time.Second)
	if got := clock.Now(); !got.Equal(start.Add(time.Second)) {
		t.Fatalf("running clock = %v", got)
	}

	clock.Pause()
	if !clock.IsPaused() {
		t.Fatal("clock should be paused")
	}
	mock.Advance(5 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("paused clock advanced to %v", got)
	}
	if got := clock.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("pause in progress = %v, want 5s", got)
	}
	if got := clock.RealTime(); !got.Equal(start.Add(6 * time.Second)) {
		t.Errorf("real time = %v", got)
	}

	if paused := clock.Toggle(); paused {
		t.Fatal("Toggle should resume a paused clock")
	}
	mock.Advance(time.Second)
	if got := clock.Now(); !got.Equal(start.Add(2 * time.Second)) {
		t.Errorf("resumed clock = %v, want start+2s", got)
	}

	// double pause and resume are no-ops
	clock.Resume()
	clock.Pause()
	clock.Pause()
	mock.Advance(time.Second)
	clock.Resume()
	if got := clock.TotalPauseDuration(); got != 6*time.Second {
		t.Errorf("total pause = %v, want 6s", got)
	}
}
