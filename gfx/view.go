package gfx

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
)

// View is the graphics shadow of an actor, owned by the driver goroutine
// Positions is a value copy of the logic buffer, never an alias
type View struct {
	ID        actor.ID
	Def       *actor.Definition
	Positions []mgl32.Vec3
	State     actor.GfxState
	Mesh      []frame.Line

	// Copied is set once positions have been received
	Copied bool

	logicHidden  bool
	forcedHidden bool
}

// Hidden reports whether the view is hidden by logic or by a graphics override
func (v *View) Hidden() bool {
	return v.logicHidden || v.forcedHidden
}

// copyFrom copies positions, allocating the backing array on first contact
func (v *View) copyFrom(src []mgl32.Vec3) {
	if v.Positions == nil {
		v.Positions = make([]mgl32.Vec3, v.Def.NodeCount())
	}
	copy(v.Positions, src)
	v.Copied = true
}

// rebuild regenerates the segment geometry from positions
func (v *View) rebuild() {
	v.Mesh = v.Mesh[:0]
	for _, s := range v.Def.Segments {
		v.Mesh = append(v.Mesh, frame.Line{
			A:    v.Positions[s.A],
			B:    v.Positions[s.B],
			Kind: s.Kind,
		})
	}
}
