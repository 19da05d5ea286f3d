package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/open-roads/event"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 100 * time.Millisecond
)

// effectLength is how long each event sound plays
var effectLength = map[event.Kind]time.Duration{
	event.Exploded:   600 * time.Millisecond,
	event.Bounced:    120 * time.Millisecond,
	event.BumpedWall: 150 * time.Millisecond,
	event.Refilled:   250 * time.Millisecond,
}

// SoundManager plays a short synthesized effect for each simulation event
// Every method is safe to call before Initialize or after Cleanup; playback is then skipped
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	played      map[event.Kind]int
}

// NewSoundManager creates a manager at full volume
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
		played: make(map[event.Kind]int),
	}
}

// Initialize opens the audio device; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup silences and drops every playing effect
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetVolume sets linear gain in [0, 1]; 0 mutes
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.volume.Silent = v == 0
	if v > 0 {
		sm.volume.Volume = math.Log2(v)
	}
}

// Play starts the effect for k
func (sm *SoundManager) Play(k event.Kind) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := effectStreamer(k)
	if s == nil {
		return
	}
	sm.played[k]++
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times k was actually played
func (sm *SoundManager) Played(k event.Kind) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[k]
}

// HandleEvent implements event.Handler
func (sm *SoundManager) HandleEvent(k event.Kind) {
	sm.Play(k)
}

// EventKinds implements event.Handler
func (sm *SoundManager) EventKinds() []event.Kind {
	return event.Kinds()
}

// effectStreamer builds a finite streamer for k, nil for kinds without a sound
func effectStreamer(k event.Kind) beep.Streamer {
	d, ok := effectLength[k]
	if !ok {
		return nil
	}
	n := sampleRate.N(d)
	switch k {
	case event.Exploded:
		return beep.Take(n, NewNoiseBurstGenerator(sampleRate, 0x5EED))
	case event.Bounced:
		return beep.Take(n, NewThudGenerator(sampleRate, 90))
	case event.BumpedWall:
		return beep.Take(n, NewBuzzGenerator(sampleRate, 120))
	case event.Refilled:
		return beep.Take(n, NewChirpGenerator(sampleRate, 400, 1200, d))
	}
	return nil
}
