package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Kind is the value type a Key carries
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	}
	return "unknown"
}

// Key names one live readout; Lines renders keys in declaration order
type Key uint8

const (
	KeyOutcome Key = iota
	KeyAttempts
	KeySteps
	KeyDropped
	KeyPaused
	KeyFrameMillis

	keyCount
)

var keyInfo = [keyCount]struct {
	label string
	kind  Kind
}{
	KeyOutcome:     {"outcome", KindString},
	KeyAttempts:    {"attempt", KindInt},
	KeySteps:       {"steps", KindInt},
	KeyDropped:     {"dropped", KindInt},
	KeyPaused:      {"paused", KindBool},
	KeyFrameMillis: {"frame ms", KindFloat},
}

func (k Key) String() string {
	if k >= keyCount {
		return "Key(" + strconv.Itoa(int(k)) + ")"
	}
	return keyInfo[k].label
}

// Kind reports the value type stored under k
func (k Key) Kind() Kind {
	if k >= keyCount {
		return Kind(0xFF)
	}
	return keyInfo[k].kind
}

type slot struct {
	bound atomic.Bool
	i     atomic.Int64
	f     AtomicFloat
	b     atomic.Bool
	s     AtomicString
}

// Registry holds one slot per Key
// Writers bind a slot once at setup and store to the returned pointer every frame
type Registry struct {
	slots [keyCount]slot
}

func NewRegistry() *Registry {
	return &Registry{}
}

// bind marks k as published and returns its slot; a kind mismatch is a wiring bug
func (r *Registry) bind(k Key, kind Kind) *slot {
	if k.Kind() != kind {
		panic(fmt.Sprintf("status: %v is not a %v readout", k, kind))
	}
	sl := &r.slots[k]
	sl.bound.Store(true)
	return sl
}

func (r *Registry) Int(k Key) *atomic.Int64 { return &r.bind(k, KindInt).i }

func (r *Registry) Float(k Key) *AtomicFloat { return &r.bind(k, KindFloat).f }

func (r *Registry) Bool(k Key) *atomic.Bool { return &r.bind(k, KindBool).b }

func (r *Registry) Text(k Key) *AtomicString { return &r.bind(k, KindString).s }

// Bound reports whether anything has published k
func (r *Registry) Bound(k Key) bool {
	return k < keyCount && r.slots[k].bound.Load()
}

// Lines renders every bound readout as "label value" in key order
func (r *Registry) Lines() []string {
	var out []string
	for k := Key(0); k < keyCount; k++ {
		sl := &r.slots[k]
		if !sl.bound.Load() {
			continue
		}
		var v string
		switch k.Kind() {
		case KindInt:
			v = strconv.FormatInt(sl.i.Load(), 10)
		case KindFloat:
			v = strconv.FormatFloat(sl.f.Get(), 'f', 2, 64)
		case KindBool:
			if !sl.b.Load() {
				continue
			}
			v = "yes"
		case KindString:
			v = sl.s.Load()
		}
		out = append(out, k.String()+" "+v)
	}
	return out
}
