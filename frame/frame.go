// Package frame holds the value types that cross from the logic goroutine to the
// driver goroutine once per frame
package frame

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
)

// Camera is the view pose
type Camera struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// DefaultCamera looks down the -Z axis from slightly above the ground
func DefaultCamera() Camera {
	return Camera{
		Position:    mgl32.Vec3{0, 5, 20},
		Orientation: mgl32.QuatIdent(),
	}
}

// Forward returns the unit view direction
func (c Camera) Forward() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Spawned reports an actor new to graphics; Def is immutable and safe to share
type Spawned struct {
	ID  actor.ID
	Def *actor.Definition
}

// Snapshot is the one-way handoff copied from logic at the start of a frame
// Node positions are copied into the graphics views, not held here
type Snapshot struct {
	Frame    uint64
	Camera   Camera
	Added    []Spawned
	Removing []actor.ID
}

// Reset clears the lists keeping capacity
func (s *Snapshot) Reset() {
	s.Added = s.Added[:0]
	s.Removing = s.Removing[:0]
}

// Line is one drawable edge in world space
type Line struct {
	A, B mgl32.Vec3
	Kind actor.SegmentKind
}

// Light is a directional scene light
type Light struct {
	Direction mgl32.Vec3
	Intensity float32
}

// Scene is the one-time scene setup passed to the renderer
type Scene struct {
	Camera     Camera
	Lights     []Light
	GroundSize float32
}

// DefaultScene returns the standard camera, sun light and ground plane
func DefaultScene() Scene {
	return Scene{
		Camera: DefaultCamera(),
		Lights: []Light{
			{Direction: mgl32.Vec3{-0.3, -1, -0.2}.Normalize(), Intensity: 1},
		},
		GroundSize: 200,
	}
}
