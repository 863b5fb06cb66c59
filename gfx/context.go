// Package gfx is the graphics execution context
//
// It consumes a snapshot copied from the logic context at the start of each
// frame and keeps one View per reported actor. It never writes logic state;
// removal acknowledgments are queued and handed back inside the next copy.
// A view reported Removing is destroyed before the frame is submitted, so an
// actor is not drawn in its removal frame; its last drawn frame is the one before.
package gfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/ErikKalkoken/go-set"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
	"github.com/lixenwraith/rigsim/status"
)

var ErrSceneInit = errors.New("scene init failed")

// LogicSource is the handoff surface of the logic context
type LogicSource interface {
	Camera() frame.Camera
	DrainPending(acked []actor.ID) (added []frame.Spawned, removing []actor.ID)
	EachActive(fn func(id actor.ID, positions []mgl32.Vec3, hidden bool))
}

// Context is the graphics execution context
type Context struct {
	renderer Renderer
	assets   AssetResolver
	events   *Events
	scene    frame.Scene

	initialized bool

	snap  frame.Snapshot
	views map[actor.ID]*View
	order []actor.ID
	acks  []actor.ID

	// Graphics-side hide overrides, orthogonal to view state
	forced set.Set[actor.ID]

	statViews *atomic.Int64
	statReady *atomic.Int64
}

// Option configures a Context
type Option func(*Context)

// WithAssets sets the asset resolver gating Preparing -> Ready
func WithAssets(a AssetResolver) Option {
	return func(c *Context) { c.assets = a }
}

// WithEvents sets the lifecycle signals
func WithEvents(e *Events) Option {
	return func(c *Context) { c.events = e }
}

// WithScene overrides the default scene setup
func WithScene(s frame.Scene) Option {
	return func(c *Context) { c.scene = s }
}

// WithStatus publishes view counts into reg
func WithStatus(reg *status.Registry) Option {
	return func(c *Context) {
		c.statViews = reg.Ints.Get(status.GfxViews)
		c.statReady = reg.Ints.Get(status.GfxReady)
	}
}

// New creates a graphics context over renderer
func New(renderer Renderer, opts ...Option) *Context {
	c := &Context{
		renderer:  renderer,
		assets:    Immediate,
		scene:     frame.DefaultScene(),
		views:     make(map[actor.ID]*View),
		forced:    set.Of[actor.ID](),
		statViews: new(atomic.Int64),
		statReady: new(atomic.Int64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckAndInit performs scene setup once, later calls are no-ops
func (c *Context) CheckAndInit() (err error) {
	if c.initialized {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrSceneInit, r)
		}
	}()
	if err := c.renderer.InitScene(c.scene); err != nil {
		return fmt.Errorf("%w: %w", ErrSceneInit, err)
	}
	c.initialized = true
	slog.Debug("scene initialized", "ground", c.scene.GroundSize, "lights", len(c.scene.Lights))
	return nil
}

// CopyLogicData takes this frame's snapshot from logic
// The only reader of logic state; must complete before the logic update of the
// same frame is dispatched, on the goroutine that dispatches it
func (c *Context) CopyLogicData(src LogicSource) {
	c.snap.Reset()
	c.snap.Frame++
	c.snap.Camera = src.Camera()

	added, removing := src.DrainPending(c.acks)
	c.acks = c.acks[:0]
	c.snap.Added = append(c.snap.Added, added...)
	c.snap.Removing = append(c.snap.Removing, removing...)

	src.EachActive(func(id actor.ID, positions []mgl32.Vec3, hidden bool) {
		v, ok := c.views[id]
		if !ok {
			// Reported in this snapshot, the view is constructed by Update
			return
		}
		v.copyFrom(positions)
		v.logicHidden = hidden
	})
}

// Update consumes the snapshot and submits a frame
// Renderer faults are logged and reported as false
func (c *Context) Update() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("renderer fault", "frame", c.snap.Frame, "panic", r)
			ok = false
		}
	}()

	if err := c.CheckAndInit(); err != nil {
		slog.Error("renderer fault", "frame", c.snap.Frame, "error", err)
		return false
	}
	if err := c.update(); err != nil {
		slog.Error("renderer fault", "frame", c.snap.Frame, "error", err)
		return false
	}
	return true
}

func (c *Context) update() error {
	ctx := context.Background()
	c.renderer.SetCamera(c.snap.Camera)

	// 1. Tear down views reported removing, acknowledge on next copy
	for _, id := range c.snap.Removing {
		v, ok := c.views[id]
		if !ok {
			continue
		}
		c.renderer.DestroyMesh(id)
		delete(c.views, id)
		c.order = slices.DeleteFunc(c.order, func(o actor.ID) bool { return o == id })
		c.acks = append(c.acks, id)
		c.emit(ctx, eventRemoved, v)
	}

	// 2. Rebuild geometry of views holding copied positions
	ready := 0
	for _, id := range c.order {
		v := c.views[id]
		if !v.Copied {
			continue
		}
		v.rebuild()
		if v.State == actor.Preparing && c.assets.Resolved(v.Def) {
			v.State = actor.Ready
			c.emit(ctx, eventReady, v)
		}
		if v.State != actor.Ready {
			continue
		}
		ready++
		if err := c.renderer.UpdateMesh(id, v.Mesh, v.Hidden()); err != nil {
			return fmt.Errorf("update mesh %d: %w", id, err)
		}
	}

	// 3. Construct views for newly added actors
	for _, s := range c.snap.Added {
		if _, exists := c.views[s.ID]; exists {
			continue
		}
		if err := c.renderer.CreateMesh(s.ID, s.Def); err != nil {
			return fmt.Errorf("create mesh %d: %w", s.ID, err)
		}
		v := &View{
			ID:           s.ID,
			Def:          s.Def,
			State:        actor.Preparing,
			forcedHidden: c.forced.Contains(s.ID),
		}
		c.views[s.ID] = v
		c.order = append(c.order, s.ID)
		c.emit(ctx, eventPreparing, v)
	}

	c.statViews.Store(int64(len(c.views)))
	c.statReady.Store(int64(ready))

	// 4. Submit
	if err := c.renderer.RenderFrame(); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	return nil
}

// SetHidden forces a view hidden or clears the override, whatever its state
// Driver goroutine only
func (c *Context) SetHidden(id actor.ID, hidden bool) {
	if hidden {
		c.forced.Add(id)
	} else {
		c.forced.Delete(id)
	}
	if v, ok := c.views[id]; ok {
		v.forcedHidden = hidden
	}
}

// View returns the view for id
func (c *Context) View(id actor.ID) (*View, bool) {
	v, ok := c.views[id]
	return v, ok
}

// ViewCount returns the number of live views
func (c *Context) ViewCount() int {
	return len(c.views)
}

// Snapshot returns the snapshot taken by the last CopyLogicData
func (c *Context) Snapshot() frame.Snapshot {
	return c.snap
}

// PendingAcks returns removal acknowledgments not yet handed back to logic
func (c *Context) PendingAcks() []actor.ID {
	return slices.Clone(c.acks)
}
