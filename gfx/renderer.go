package gfx

import (
	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
)

// Renderer is the scene-graph collaborator driven from the driver goroutine
// Any method may panic with a backend fault; the graphics context recovers it
type Renderer interface {
	InitScene(scene frame.Scene) error
	SetCamera(cam frame.Camera)
	CreateMesh(id actor.ID, def *actor.Definition) error
	UpdateMesh(id actor.ID, lines []frame.Line, hidden bool) error
	DestroyMesh(id actor.ID)
	RenderFrame() error
}

// AssetResolver reports whether the assets backing a definition are loaded
type AssetResolver interface {
	Resolved(def *actor.Definition) bool
}

// AssetFunc adapts a function to AssetResolver
type AssetFunc func(def *actor.Definition) bool

// Resolved implements AssetResolver
func (f AssetFunc) Resolved(def *actor.Definition) bool {
	return f(def)
}

// Immediate resolves every definition at once
var Immediate AssetResolver = AssetFunc(func(*actor.Definition) bool { return true })
