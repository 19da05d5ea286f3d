package event

// Recorder keeps every event it receives, in order
type Recorder struct {
	Events []Kind
}

// NewRecorder creates a recorder subscribed to every kind on n
func NewRecorder(n *Notifier) *Recorder {
	r := &Recorder{}
	// Register only fails on undeclared kinds
	_, _ = n.Register(r)
	return r
}

func (r *Recorder) HandleEvent(k Kind) {
	r.Events = append(r.Events, k)
}

func (r *Recorder) EventKinds() []Kind {
	return Kinds()
}

// Count returns how many times k was recorded
func (r *Recorder) Count(k Kind) int {
	c := 0
	for _, e := range r.Events {
		if e == k {
			c++
		}
	}
	return c
}

// Reset drops the recorded events
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
