package level

// TouchEffect is the gameplay modifier applied when the craft rests on a surface
type TouchEffect int

const (
	EffectNone TouchEffect = iota
	EffectAccelerate
	EffectDecelerate
	EffectKill
	EffectSlide
	EffectRefillOxygen
)

var effectNames = [...]string{
	EffectNone:         "None",
	EffectAccelerate:   "Accelerate",
	EffectDecelerate:   "Decelerate",
	EffectKill:         "Kill",
	EffectSlide:        "Slide",
	EffectRefillOxygen: "RefillOxygen",
}

func (e TouchEffect) String() string {
	if e < 0 || int(e) >= len(effectNames) {
		return "Unknown"
	}
	return effectNames[e]
}

// Palette color indices that carry an effect; every other index is inert
const (
	ColorDecelerate   = 2
	ColorSlide        = 8
	ColorRefillOxygen = 9
	ColorAccelerate   = 10
	ColorKill         = 12
)

// EffectForColor maps a 4-bit surface color index to its touch effect
func EffectForColor(index uint8) TouchEffect {
	switch index {
	case ColorAccelerate:
		return EffectAccelerate
	case ColorKill:
		return EffectKill
	case ColorRefillOxygen:
		return EffectRefillOxygen
	case ColorSlide:
		return EffectSlide
	case ColorDecelerate:
		return EffectDecelerate
	default:
		return EffectNone
	}
}
