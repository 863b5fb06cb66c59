package logic

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
	"github.com/lixenwraith/rigsim/input"
	"github.com/lixenwraith/rigsim/script"
)

var _ script.Host = (*Context)(nil)

// IsKeyDown reports a held key, out-of-range codes warn and read as up
func (c *Context) IsKeyDown(code int) bool {
	down, ok := c.input.IsDown(code)
	if !ok {
		slog.Warn("key code out of range", "query", "IsKeyDown", "code", code)
	}
	return down
}

// WasKeyPressed reports a key that went down this frame
func (c *Context) WasKeyPressed(code int) bool {
	pressed, ok := c.input.WasPressed(code)
	if !ok {
		slog.Warn("key code out of range", "query", "WasKeyPressed", "code", code)
	}
	return pressed
}

// WasKeyReleased reports a key that went up this frame
func (c *Context) WasKeyReleased(code int) bool {
	released, ok := c.input.WasReleased(code)
	if !ok {
		slog.Warn("key code out of range", "query", "WasKeyReleased", "code", code)
	}
	return released
}

// HasInputChanged reports whether any key, button or mouse state differs from last frame
func (c *Context) HasInputChanged() bool {
	return c.input.Changed()
}

// MouseDelta returns this frame's pointer motion
func (c *Context) MouseDelta() input.MouseDelta {
	return c.input.Mouse()
}

// Camera returns the camera pose
func (c *Context) Camera() frame.Camera {
	return c.camera
}

// SetCameraPosition moves the camera
func (c *Context) SetCameraPosition(pos mgl32.Vec3) {
	c.camera.Position = pos
}

// SetCameraOrientation rotates the camera, q is normalized
func (c *Context) SetCameraOrientation(q mgl32.Quat) {
	if q.Len() == 0 {
		slog.Warn("ignoring zero camera orientation")
		return
	}
	c.camera.Orientation = q.Normalize()
}

// RequestExit asks the scheduler to stop after the current frame
func (c *Context) RequestExit() {
	c.exit = true
}

// live returns an actor that is not being removed
func (c *Context) live(id actor.ID, op string) *actor.Actor {
	a, ok := c.index[id]
	if !ok || a.Logic.State == actor.Removing {
		slog.Warn("unknown actor", "op", op, "id", id)
		return nil
	}
	return a
}

// ActorIDs lists actors not being removed, in spawn order
func (c *Context) ActorIDs() []actor.ID {
	ids := make([]actor.ID, 0, len(c.actors))
	for _, a := range c.actors {
		if a.Logic.State != actor.Removing {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// ActorPosition returns the node centroid of an actor
func (c *Context) ActorPosition(id actor.ID) (mgl32.Vec3, bool) {
	a := c.live(id, "position")
	if a == nil {
		return mgl32.Vec3{}, false
	}
	return a.Centroid(), true
}

// Translate moves every node of an actor by delta without imparting velocity
func (c *Context) Translate(id actor.ID, delta mgl32.Vec3) {
	a := c.live(id, "translate")
	if a == nil {
		return
	}
	for i := range a.Logic.Positions {
		a.Logic.Positions[i] = a.Logic.Positions[i].Add(delta)
	}
	if sh, ok := c.solver.(Shifter); ok {
		sh.Shift(id, delta)
	}
}

// SetHidden toggles the hidden flag, copied to graphics with the next snapshot
func (c *Context) SetHidden(id actor.ID, hidden bool) {
	if a := c.live(id, "hide"); a != nil {
		a.Logic.Hidden = hidden
	}
}
