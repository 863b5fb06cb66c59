package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rigsim/actor"
)

// RGB color definitions for scene elements
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbGround     = tcell.NewRGBColor(70, 75, 100)   // Muted slate
	RgbBeam       = tcell.NewRGBColor(200, 200, 210) // Light gray
	RgbHydro      = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbWheel      = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
)

var (
	styleGround = tcell.StyleDefault.Foreground(RgbGround).Background(RgbBackground)
	styleStatus = tcell.StyleDefault.Foreground(RgbStatusBar).Background(RgbBackground)
)

// segmentGlyph returns the rune and style used to draw a segment kind
func segmentGlyph(kind actor.SegmentKind) (rune, tcell.Style) {
	base := tcell.StyleDefault.Background(RgbBackground)
	switch kind {
	case actor.SegmentHydro:
		return '=', base.Foreground(RgbHydro)
	case actor.SegmentWheel:
		return 'o', base.Foreground(RgbWheel)
	default:
		return '#', base.Foreground(RgbBeam)
	}
}
