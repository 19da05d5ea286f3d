package hud

import "strings"

// Bar runes
const (
	barFull  = '█'
	barEmpty = '·'
)

// Bar draws amt as a text gauge width cells wide, quantized the same way as the
// image gauges with width+1 frames
func Bar(amt float64, width int) string {
	if width <= 0 {
		return ""
	}
	n := GaugeFrame(amt, width+1)
	var b strings.Builder
	b.Grow(width * 3)
	for i := 0; i < width; i++ {
		if i < n {
			b.WriteRune(barFull)
		} else {
			b.WriteRune(barEmpty)
		}
	}
	return b.String()
}
