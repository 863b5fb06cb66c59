// Package logic owns all simulation state and advances it one step per Update
//
// A Context is driven from two goroutines in strict alternation: the driver
// calls the frame bookkeeping methods and the handoff surface (DrainPending,
// EachActive, Camera) while no Update is in flight, and the worker calls
// Update. No method takes a lock.
package logic

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
	"github.com/lixenwraith/rigsim/input"
	"github.com/lixenwraith/rigsim/script"
)

var (
	ErrNoScript        = errors.New("no script attached")
	ErrScriptSetup     = errors.New("script setup failed")
	ErrScriptRuntime   = errors.New("script runtime fault")
	ErrNotPrepared     = errors.New("logic context not prepared")
	ErrUnknownTemplate = errors.New("unknown actor template")
)

// Phase is the context lifecycle
type Phase uint8

const (
	Uninitialized Phase = iota
	Initialized
	Running
	ExitRequested
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case ExitRequested:
		return "exit-requested"
	default:
		return "unknown"
	}
}

// Solver is the physics collaborator, it moves node positions inside a logic step
// Actors in Removing state must be left untouched
type Solver interface {
	Step(actors []*actor.Actor, dt time.Duration)
}

// Shifter is implemented by solvers that keep per-actor motion history
// Shift is called when a command moves an actor, so the move carries no velocity
type Shifter interface {
	Shift(id actor.ID, delta mgl32.Vec3)
}

// Catalog resolves actor templates by name for script spawning
type Catalog interface {
	Lookup(name string) (*actor.Definition, bool)
}

// Context is the logic execution context
type Context struct {
	phase   Phase
	script  script.Script
	sampler *input.Sampler
	input   *input.Buffer
	solver  Solver
	catalog Catalog

	camera frame.Camera
	exit   bool
	steps  uint64

	actors []*actor.Actor
	index  map[actor.ID]*actor.Actor
	nextID actor.ID

	// Drained by the graphics handoff
	pendingAdded    []*actor.Actor
	pendingRemoving []*actor.Actor
}

// Option configures a Context
type Option func(*Context)

// WithScript attaches the scripting backend
func WithScript(s script.Script) Option {
	return func(c *Context) { c.script = s }
}

// WithDevice sets the input device polled once per frame
func WithDevice(d input.Device) Option {
	return func(c *Context) { c.sampler = input.NewSampler(d) }
}

// WithSolver sets the physics collaborator
func WithSolver(s Solver) Option {
	return func(c *Context) { c.solver = s }
}

// WithCatalog sets the template catalog used by Spawn
func WithCatalog(cat Catalog) Option {
	return func(c *Context) { c.catalog = cat }
}

// New creates a context; the input buffers are allocated here once
func New(opts ...Option) *Context {
	c := &Context{
		sampler: input.NewSampler(nil),
		input:   input.NewBuffer(),
		camera:  frame.DefaultCamera(),
		index:   make(map[actor.ID]*actor.Actor),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the lifecycle phase
func (c *Context) Phase() Phase {
	return c.phase
}

// Steps returns the number of completed Update calls since Prepare
func (c *Context) Steps() uint64 {
	return c.steps
}

// Prepare resets per-run state and runs the script setup entry point
// A failure is fatal to starting the simulation and is not retried
func (c *Context) Prepare() error {
	c.input.Reset()
	c.camera = frame.DefaultCamera()
	c.exit = false
	c.steps = 0
	c.phase = Uninitialized

	if c.script == nil {
		return ErrNoScript
	}
	if err := c.setupScript(); err != nil {
		return fmt.Errorf("%w: %w", ErrScriptSetup, err)
	}
	c.phase = Initialized
	slog.Debug("logic prepared", "actors", len(c.actors))
	return nil
}

func (c *Context) setupScript() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.script.Setup(c)
}

// StartNewFrame swaps the input double buffer
func (c *Context) StartNewFrame() {
	c.input.Swap()
}

// UpdateUserInput samples the device into the newly current slot
func (c *Context) UpdateUserInput() {
	c.sampler.SampleInto(c.input)
}

// Update advances one simulation step
// Returns false with nil error when exit was requested, false with an error on a fault
func (c *Context) Update(dt time.Duration) (cont bool, err error) {
	switch c.phase {
	case Initialized, Running:
	default:
		return false, fmt.Errorf("%w: phase %s", ErrNotPrepared, c.phase)
	}
	c.phase = Running

	defer func() {
		if r := recover(); r != nil {
			cont = false
			err = fmt.Errorf("%w: panic: %v", ErrScriptRuntime, r)
		}
	}()

	if c.solver != nil {
		c.solver.Step(c.actors, dt)
	}

	more, err := c.script.Update(c, float64(dt)/float64(time.Millisecond))
	c.steps++
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrScriptRuntime, err)
	}
	if !more {
		c.exit = true
	}
	if c.exit {
		c.phase = ExitRequested
		return false, nil
	}
	return true, nil
}

// WasExitRequested reports a cooperative stop from the script
func (c *Context) WasExitRequested() bool {
	return c.exit
}

// Cleanup runs the script teardown; failures are logged only
func (c *Context) Cleanup() {
	if c.script == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("script cleanup panicked", "panic", r)
		}
	}()
	if err := c.script.Cleanup(); err != nil {
		slog.Error("script cleanup failed", "error", err)
	}
}

// Close releases the script backend when it holds resources
// The context cannot be prepared again afterwards
func (c *Context) Close() {
	closer, ok := c.script.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Error("script close failed", "error", err)
	}
}
