package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/open-roads/level"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleBorder  = styleDefault.Foreground(tcell.ColorDarkGray)
	styleHeader  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleWarning = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLamp    = styleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleDim     = styleDefault.Foreground(tcell.ColorGray)
	styleWon     = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLime).Bold(true)
	styleLost    = styleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
	stylePaused  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// RGB converts a palette color to a true-color tcell color
func RGB(c level.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// contrast picks black or white text for readability on bg
func contrast(bg level.Color) tcell.Color {
	// integer Rec. 601 luma
	luma := (299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)) / 1000
	if luma > 128 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}
