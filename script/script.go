// Package script defines the boundary between the logic context and a scripting backend
package script

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
	"github.com/lixenwraith/rigsim/input"
)

// Host is the only mutable handle a script receives into logic state
// Valid only for the duration of the call it was passed to
type Host interface {
	IsKeyDown(code int) bool
	WasKeyPressed(code int) bool
	WasKeyReleased(code int) bool
	HasInputChanged() bool
	MouseDelta() input.MouseDelta

	Camera() frame.Camera
	SetCameraPosition(pos mgl32.Vec3)
	SetCameraOrientation(q mgl32.Quat)

	ActorIDs() []actor.ID
	ActorPosition(id actor.ID) (mgl32.Vec3, bool)
	Translate(id actor.ID, delta mgl32.Vec3)
	SetHidden(id actor.ID, hidden bool)
	Remove(id actor.ID)
	Spawn(template string, at mgl32.Vec3) (actor.ID, error)

	RequestExit()
}

// Script is a scripting backend
// Update returns false to stop the simulation cleanly; errors are runtime faults
// Cleanup ends one run and may be followed by another Setup. Backends holding
// resources also implement io.Closer, called once the script will not run again
type Script interface {
	Setup(h Host) error
	Update(h Host, dtMillis float64) (bool, error)
	Cleanup() error
}

// Funcs adapts plain Go functions to Script, nil entries are no-ops that keep running
type Funcs struct {
	SetupFn   func(h Host) error
	UpdateFn  func(h Host, dtMillis float64) (bool, error)
	CleanupFn func() error
}

// Setup implements Script
func (f *Funcs) Setup(h Host) error {
	if f.SetupFn == nil {
		return nil
	}
	return f.SetupFn(h)
}

// Update implements Script
func (f *Funcs) Update(h Host, dtMillis float64) (bool, error) {
	if f.UpdateFn == nil {
		return true, nil
	}
	return f.UpdateFn(h, dtMillis)
}

// Cleanup implements Script
func (f *Funcs) Cleanup() error {
	if f.CleanupFn == nil {
		return nil
	}
	return f.CleanupFn()
}
