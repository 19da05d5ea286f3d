package event

// Kind identifies a discrete simulation event
type Kind int

const (
	// Exploded fires on the frame the craft first becomes wrecked
	// Trigger: kill tile, high-speed wall hit, falling off the road
	Exploded Kind = iota

	// Bounced fires when a downward landing rebounds
	Bounced

	// BumpedWall fires on a low-speed wall hit or a sidestep around a corner
	BumpedWall

	// Refilled fires when a refill pad tops up a depleted craft
	Refilled

	kindCount
)

var kindNames = [kindCount]string{
	Exploded:   "Exploded",
	Bounced:    "Bounced",
	BumpedWall: "BumpedWall",
	Refilled:   "Refilled",
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// Kinds returns every declared kind in declaration order
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindByName resolves a kind from its String form
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
