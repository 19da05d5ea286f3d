package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/open-roads/physics"
)

// SnapshotProvider hands the most recent simulation state to a renderer
// Push is called by the frame driver after each step, Snapshot by the renderer
type SnapshotProvider interface {
	Reset()
	Push(s physics.GameSnapshot)
	Snapshot() (physics.GameSnapshot, bool)
}

// FixedProvider returns the last pushed snapshot unchanged
type FixedProvider struct {
	mu       sync.RWMutex
	snapshot physics.GameSnapshot
	ok       bool
}

// NewFixedProvider creates an empty provider
func NewFixedProvider() *FixedProvider {
	return &FixedProvider{}
}

func (p *FixedProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = physics.GameSnapshot{}
	p.ok = false
}

func (p *FixedProvider) Push(s physics.GameSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = s
	p.ok = true
}

func (p *FixedProvider) Snapshot() (physics.GameSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.ok
}

// InterpolatingProvider blends the last two pushed snapshots by how much of
// the previous push interval has elapsed since the newest push
// The blend runs one step behind the simulation so motion is smooth at any render rate
type InterpolatingProvider struct {
	mu    sync.RWMutex
	clock TimeProvider

	newest, older         physics.GameSnapshot
	newestTime, olderTime time.Time
	count                 int
}

// NewInterpolatingProvider creates an empty provider timed by clock
func NewInterpolatingProvider(clock TimeProvider) *InterpolatingProvider {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &InterpolatingProvider{clock: clock}
}

func (p *InterpolatingProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.newest = physics.GameSnapshot{}
	p.older = physics.GameSnapshot{}
	p.count = 0
}

func (p *InterpolatingProvider) Push(s physics.GameSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.older, p.olderTime = p.newest, p.newestTime
	p.newest, p.newestTime = s, p.clock.Now()
	if p.count < 2 {
		p.count++
	}
}

func (p *InterpolatingProvider) Snapshot() (physics.GameSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	switch p.count {
	case 0:
		return physics.GameSnapshot{}, false
	case 1:
		return p.newest, true
	}

	interval := p.newestTime.Sub(p.olderTime)
	if interval <= 0 {
		return p.newest, true
	}
	since := p.clock.Now().Sub(p.newestTime)
	return physics.Lerp(p.older, p.newest, float64(since)/float64(interval)), true
}
