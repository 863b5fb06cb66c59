package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Canvas is the drawing surface a layer receives for one frame
type Canvas interface {
	Size() (width, height int)
	Set(x, y int, r rune, style tcell.Style)
	Text(x, y int, s string, style tcell.Style)
	// Project maps a world point to a cell; ok is false behind the camera
	Project(p mgl32.Vec3) (x, y int, ok bool)
}

// Layer is a priority-ordered drawing pass
type Layer interface {
	Draw(c Canvas)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
