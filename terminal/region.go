// Package terminal draws the track and dashboard on a tcell screen and turns
// key presses into pilot input
package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Region represents a rectangular area of a screen
// All coordinates are relative to the region's origin
type Region struct {
	Screen tcell.Screen
	X, Y   int // Absolute position on screen
	W, H   int // Region dimensions
}

// NewRegion covers the whole of s at its current size
func NewRegion(s tcell.Screen) Region {
	w, h := s.Size()
	return Region{Screen: s, W: w, H: h}
}

// Sub returns a nested region with coordinates relative to parent, result is clipped to parent bounds
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Region{Screen: r.Screen, X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Screen.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Text writes s starting at (x, y), truncated at the right edge
// Returns the number of columns used
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	col := x
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > r.W {
			break
		}
		r.Cell(col, y, ch, style)
		col += w
	}
	return col - x
}

// Fill sets every cell of the region
func (r Region) Fill(ch rune, style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ch, style)
		}
	}
}

// Box draws a single-line border around the region edge
func (r Region) Box(style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, tcell.RuneHLine, style)
		r.Cell(x, r.H-1, tcell.RuneHLine, style)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, tcell.RuneVLine, style)
		r.Cell(r.W-1, y, tcell.RuneVLine, style)
	}
	r.Cell(0, 0, tcell.RuneULCorner, style)
	r.Cell(r.W-1, 0, tcell.RuneURCorner, style)
	r.Cell(0, r.H-1, tcell.RuneLLCorner, style)
	r.Cell(r.W-1, r.H-1, tcell.RuneLRCorner, style)
}
