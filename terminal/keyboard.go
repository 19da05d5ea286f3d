package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/open-roads/engine"
)

// DefaultHoldTime is how long one key press keeps its action held
// Terminals report presses and auto-repeats, never releases
const DefaultHoldTime = 150 * time.Millisecond

// Action is a pilot control bound to keys
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	actionCount
)

var actionNames = [...]string{
	ActionLeft:  "left",
	ActionRight: "right",
	ActionUp:    "up",
	ActionDown:  "down",
	ActionJump:  "jump",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// opposite cancels the reverse direction when a new one is pressed
var opposite = [actionCount]Action{
	ActionLeft:  ActionRight,
	ActionRight: ActionLeft,
	ActionUp:    ActionDown,
	ActionDown:  ActionUp,
	ActionJump:  ActionJump,
}

// KeyAction maps a key to its action: arrows or WASD steer, space jumps
func KeyAction(k tcell.Key, r rune) (Action, bool) {
	switch k {
	case tcell.KeyLeft:
		return ActionLeft, true
	case tcell.KeyRight:
		return ActionRight, true
	case tcell.KeyUp:
		return ActionUp, true
	case tcell.KeyDown:
		return ActionDown, true
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return ActionLeft, true
		case 'd', 'D':
			return ActionRight, true
		case 'w', 'W':
			return ActionUp, true
		case 's', 'S':
			return ActionDown, true
		case ' ':
			return ActionJump, true
		}
	}
	return 0, false
}

// KeyboardSource is an input.ControlSource fed by terminal key events
// Press is called from the event goroutine, Update and the getters from the frame loop
type KeyboardSource struct {
	mu      sync.Mutex
	clock   engine.TimeProvider
	hold    time.Duration
	pressed [actionCount]time.Time

	// sampled by Update
	held [actionCount]bool
}

// NewKeyboardSource creates a source reading clock; nil uses the monotonic clock
func NewKeyboardSource(clock engine.TimeProvider, hold time.Duration) *KeyboardSource {
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	if hold <= 0 {
		hold = DefaultHoldTime
	}
	return &KeyboardSource{clock: clock, hold: hold}
}

// HandleKey records a pilot key; returns false for keys it does not bind
func (k *KeyboardSource) HandleKey(ev *tcell.EventKey) bool {
	return k.Press(ev.Key(), ev.Rune())
}

// Press records a key press at the current clock time
func (k *KeyboardSource) Press(key tcell.Key, r rune) bool {
	a, ok := KeyAction(key, r)
	if !ok {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if o := opposite[a]; o != a {
		k.pressed[o] = time.Time{}
	}
	k.pressed[a] = k.clock.Now()
	return true
}

// Release drops every held action
func (k *KeyboardSource) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed = [actionCount]time.Time{}
	k.held = [actionCount]bool{}
}

// Update implements input.ControlSource
func (k *KeyboardSource) Update() {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.clock.Now()
	for a := range k.pressed {
		t := k.pressed[a]
		k.held[a] = !t.IsZero() && now.Sub(t) < k.hold
	}
}

// Held reports whether a was held at the last Update
func (k *KeyboardSource) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[a]
}

// TurnAmount implements input.ControlSource; left wins over right
func (k *KeyboardSource) TurnAmount() float64 {
	switch {
	case k.Held(ActionLeft):
		return -1
	case k.Held(ActionRight):
		return 1
	}
	return 0
}

// AccelAmount implements input.ControlSource; up wins over down
func (k *KeyboardSource) AccelAmount() float64 {
	switch {
	case k.Held(ActionUp):
		return 1
	case k.Held(ActionDown):
		return -1
	}
	return 0
}

// Jump implements input.ControlSource
func (k *KeyboardSource) Jump() bool {
	return k.Held(ActionJump)
}
