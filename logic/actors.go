package logic

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
)

// SpawnDefinition inserts a new actor in Added state
// This is the only way actors enter the simulation
func (c *Context) SpawnDefinition(def *actor.Definition, at mgl32.Vec3) (actor.ID, error) {
	if err := def.Validate(); err != nil {
		return 0, err
	}
	c.nextID++
	a := actor.New(c.nextID, def, at)
	c.actors = append(c.actors, a)
	c.index[a.ID] = a
	c.pendingAdded = append(c.pendingAdded, a)
	return a.ID, nil
}

// Spawn inserts an actor built from a catalog template
func (c *Context) Spawn(template string, at mgl32.Vec3) (actor.ID, error) {
	if c.catalog == nil {
		return 0, fmt.Errorf("%w: %q (no catalog)", ErrUnknownTemplate, template)
	}
	def, ok := c.catalog.Lookup(template)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}
	return c.SpawnDefinition(def, at)
}

// Remove schedules an actor for removal; it is reported to graphics once
func (c *Context) Remove(id actor.ID) {
	a := c.live(id, "remove")
	if a == nil {
		return
	}
	a.Logic.State = actor.Removing
	c.pendingRemoving = append(c.pendingRemoving, a)
}

// ActorCount returns the number of actors in the logic list, including those being removed
func (c *Context) ActorCount() int {
	return len(c.actors)
}

// Actor returns the logic actor for id
// Callers on the driver goroutine must not hold the result across a dispatched Update
func (c *Context) Actor(id actor.ID) (*actor.Actor, bool) {
	a, ok := c.index[id]
	return a, ok
}

// erase drops actors from the list and index
func (c *Context) erase(ids ...actor.ID) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[actor.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; ok {
			drop[id] = struct{}{}
			delete(c.index, id)
		}
	}
	if len(drop) == 0 {
		return
	}
	c.actors = slices.DeleteFunc(c.actors, func(a *actor.Actor) bool {
		_, ok := drop[a.ID]
		return ok
	})
}

// DrainPending moves the added/removing lists out of the context
// acked lists actors whose graphics teardown completed; they are erased first.
// Added actors become Active. Actors removed before ever being reported are
// erased without reaching graphics.
func (c *Context) DrainPending(acked []actor.ID) (added []frame.Spawned, removing []actor.ID) {
	c.erase(acked...)

	var unreported []actor.ID
	for _, a := range c.pendingAdded {
		if a.Logic.State == actor.Removing {
			unreported = append(unreported, a.ID)
			continue
		}
		a.Logic.State = actor.Active
		a.Logic.Reported = true
		added = append(added, frame.Spawned{ID: a.ID, Def: a.Def})
	}
	for _, a := range c.pendingRemoving {
		if a.Logic.Reported {
			removing = append(removing, a.ID)
		}
	}
	c.erase(unreported...)

	clear(c.pendingAdded)
	c.pendingAdded = c.pendingAdded[:0]
	clear(c.pendingRemoving)
	c.pendingRemoving = c.pendingRemoving[:0]
	return added, removing
}

// EachActive visits every Active actor in spawn order
// positions aliases logic memory and must be copied, not retained
func (c *Context) EachActive(fn func(id actor.ID, positions []mgl32.Vec3, hidden bool)) {
	for _, a := range c.actors {
		if a.Logic.State == actor.Active {
			fn(a.ID, a.Logic.Positions, a.Logic.Hidden)
		}
	}
}
