package event

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown event kind")

// HandlerFunc receives one fired event
type HandlerFunc func(k Kind)

// Handler is a subscriber declaring the kinds it consumes
type Handler interface {
	// HandleEvent is called synchronously from Fire
	HandleEvent(k Kind)

	// EventKinds returns the kinds this handler processes
	EventKinds() []Kind
}

// Subscription identifies one registration for Unsubscribe
type Subscription struct {
	kind Kind
	id   uint64
}

// Kind returns the subscribed kind
func (s Subscription) Kind() Kind {
	return s.kind
}

type entry struct {
	id uint64
	fn HandlerFunc
}

// Notifier dispatches simulation events to subscribers
//
// Architecture:
//   - Single-threaded, synchronous dispatch from the simulation step
//   - Multiple subscribers per kind, invoked in registration order
//   - A nil *Notifier accepts Fire and drops the event
type Notifier struct {
	handlers [kindCount][]entry
	fired    [kindCount]uint64
	nextID   uint64
}

// NewNotifier creates an empty notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn for kind
func (n *Notifier) Subscribe(kind Kind, fn HandlerFunc) (Subscription, error) {
	if !kind.Valid() {
		return Subscription{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if fn == nil {
		return Subscription{}, errors.New("nil event handler")
	}
	n.nextID++
	n.handlers[kind] = append(n.handlers[kind], entry{id: n.nextID, fn: fn})
	return Subscription{kind: kind, id: n.nextID}, nil
}

// Register subscribes a handler for each of its declared kinds
func (n *Notifier) Register(h Handler) ([]Subscription, error) {
	kinds := h.EventKinds()
	subs := make([]Subscription, 0, len(kinds))
	for _, k := range kinds {
		sub, err := n.Subscribe(k, h.HandleEvent)
		if err != nil {
			for _, s := range subs {
				n.Unsubscribe(s)
			}
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Unsubscribe removes a registration, reporting whether it was present
func (n *Notifier) Unsubscribe(sub Subscription) bool {
	if !sub.kind.Valid() {
		return false
	}
	list := n.handlers[sub.kind]
	for i, e := range list {
		if e.id == sub.id {
			n.handlers[sub.kind] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Fire invokes every subscriber of kind in registration order
func (n *Notifier) Fire(kind Kind) {
	if n == nil || !kind.Valid() {
		return
	}
	n.fired[kind]++
	for _, e := range n.handlers[kind] {
		e.fn(kind)
	}
}

// HandlerCount returns the number of subscribers for kind
func (n *Notifier) HandlerCount(kind Kind) int {
	if !kind.Valid() {
		return 0
	}
	return len(n.handlers[kind])
}

// FiredCount returns how many times kind has fired
func (n *Notifier) FiredCount(kind Kind) uint64 {
	if n == nil || !kind.Valid() {
		return 0
	}
	return n.fired[kind]
}
