// Package engine drives the frame pipeline
//
// Each frame the driver copies the logic snapshot into graphics, advances the
// input buffers, dispatches the logic step to a single worker goroutine,
// renders the copied snapshot itself, then joins the worker. Graphics therefore
// always shows the result of the previous logic step.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/rigsim/gfx"
	"github.com/lixenwraith/rigsim/status"
)

var (
	ErrStart  = errors.New("simulation failed to start")
	ErrRender = errors.New("graphics update failed")
)

// Logic is the logic execution context as seen by the driver
type Logic interface {
	gfx.LogicSource
	Prepare() error
	StartNewFrame()
	UpdateUserInput()
	Update(dt time.Duration) (bool, error)
	WasExitRequested() bool
	Cleanup()
	Close()
	ActorCount() int
}

// Gfx is the graphics execution context as seen by the driver
type Gfx interface {
	CheckAndInit() error
	CopyLogicData(src gfx.LogicSource)
	Update() bool
}

// Simulation owns the frame loop
type Simulation struct {
	logic Logic
	gfx   Gfx

	clock       Clock
	limiter     *rate.Limiter
	stallBudget time.Duration
	maxFrames   uint64
	restore     []func()

	worker   *worker
	frame    uint64
	last     time.Time
	prepared bool

	statFrames  *atomic.Int64
	statStalls  *atomic.Int64
	statActors  *atomic.Int64
	statLogicMs *status.AtomicFloat
	statGfxMs   *status.AtomicFloat
	statJoinMs  *status.AtomicFloat
}

// Option configures a Simulation
type Option func(*Simulation)

// WithTimeProvider replaces the monotonic clock
func WithTimeProvider(c Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

// WithFrameLimit caps the loop at fps frames per second, zero disables the cap
func WithFrameLimit(fps int) Option {
	return func(s *Simulation) {
		if fps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(fps), 1)
		} else {
			s.limiter = nil
		}
	}
}

// WithStallBudget sets the join wait above which a frame counts as stalled
func WithStallBudget(d time.Duration) Option {
	return func(s *Simulation) { s.stallBudget = d }
}

// WithMaxFrames stops Run after n frames, zero runs until exit
func WithMaxFrames(n uint64) Option {
	return func(s *Simulation) { s.maxFrames = n }
}

// WithStatus publishes frame metrics into reg
func WithStatus(reg *status.Registry) Option {
	return func(s *Simulation) {
		s.statFrames = reg.Ints.Get(status.EngineFrames)
		s.statStalls = reg.Ints.Get(status.EngineStalls)
		s.statActors = reg.Ints.Get(status.LogicActors)
		s.statLogicMs = reg.Floats.Get(status.EngineLogicMs)
		s.statGfxMs = reg.Floats.Get(status.EngineGfxMs)
		s.statJoinMs = reg.Floats.Get(status.EngineJoinMs)
	}
}

// WithRestore registers a hook run when Run returns, hooks run in reverse order
func WithRestore(fn func()) Option {
	return func(s *Simulation) { s.restore = append(s.restore, fn) }
}

// New creates a simulation over explicit logic and graphics handles
func New(logic Logic, g Gfx, opts ...Option) *Simulation {
	s := &Simulation{
		logic:       logic,
		gfx:         g,
		clock:       NewTimeProvider(),
		stallBudget: 50 * time.Millisecond,
		statFrames:  new(atomic.Int64),
		statStalls:  new(atomic.Int64),
		statActors:  new(atomic.Int64),
		statLogicMs: new(status.AtomicFloat),
		statGfxMs:   new(status.AtomicFloat),
		statJoinMs:  new(status.AtomicFloat),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Frame returns the number of started frames
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// Prepare runs logic setup then one-time scene setup
// Failure is fatal to starting and is not retried: a logic context that was set
// up is cleaned up, and the script backend is closed either way
func (s *Simulation) Prepare() error {
	if err := s.logic.Prepare(); err != nil {
		s.logic.Close()
		return fmt.Errorf("%w: %w", ErrStart, err)
	}
	if err := s.gfx.CheckAndInit(); err != nil {
		s.logic.Cleanup()
		s.logic.Close()
		return fmt.Errorf("%w: %w", ErrStart, err)
	}
	s.frame = 0
	s.last = s.clock.Now()
	s.prepared = true
	return nil
}

// RunOnce executes one frame
// Returns false with nil error on a clean stop, false with an error on a fault
func (s *Simulation) RunOnce(ctx context.Context) (bool, error) {
	if !s.prepared {
		return false, fmt.Errorf("%w: not prepared", ErrStart)
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			// Cancelled while waiting for the frame slot
			return false, nil
		}
	}
	if s.worker == nil {
		s.worker = newWorker()
	}

	// 1. Frame delta on the monotonic clock
	now := s.clock.Now()
	dt := now.Sub(s.last)
	s.last = now
	s.frame++

	// 2. Snapshot copy, worker idle
	s.gfx.CopyLogicData(s.logic)

	// 3. Input bookkeeping, written before dispatch
	s.logic.StartNewFrame()
	s.logic.UpdateUserInput()

	// 4. Logic step on the worker
	s.worker.dispatch(func() (bool, error) {
		start := time.Now()
		defer func() { s.statLogicMs.Smooth(ms(time.Since(start)), 0.1) }()
		return s.logic.Update(dt)
	})

	// 5. Render the copied snapshot concurrently
	gfxStart := time.Now()
	ok := s.gfx.Update()
	s.statGfxMs.Smooth(ms(time.Since(gfxStart)), 0.1)

	// 6. Join
	joinStart := time.Now()
	res := s.worker.join()
	wait := time.Since(joinStart)
	s.statJoinMs.Smooth(ms(wait), 0.1)
	if s.stallBudget > 0 && wait > s.stallBudget {
		s.statStalls.Add(1)
		slog.Debug("frame stalled on logic", "frame", s.frame, "wait", wait)
	}
	s.statFrames.Store(int64(s.frame))
	s.statActors.Store(int64(s.logic.ActorCount()))

	var errs []error
	if res.err != nil {
		errs = append(errs, fmt.Errorf("frame %d: %w", s.frame, res.err))
	}
	if !ok {
		errs = append(errs, fmt.Errorf("%w: frame %d", ErrRender, s.frame))
	}
	if len(errs) > 0 {
		return false, errors.Join(errs...)
	}
	if !res.cont || s.logic.WasExitRequested() {
		return false, nil
	}
	if s.maxFrames > 0 && s.frame >= s.maxFrames {
		slog.Info("frame limit reached", "frames", s.frame)
		return false, nil
	}
	return true, nil
}

// Run prepares and loops until a clean stop, a fault, or ctx cancellation
// Cleanup and the restore hooks run on every path that entered the loop
func (s *Simulation) Run(ctx context.Context) (err error) {
	defer s.runRestore()

	if err := s.Prepare(); err != nil {
		return err
	}
	defer func() {
		s.worker.stopIfStarted()
		s.worker = nil
		s.logic.Cleanup()
		s.prepared = false
	}()

	for {
		if ctx.Err() != nil {
			slog.Info("simulation cancelled", "frame", s.frame)
			return nil
		}
		cont, err := s.RunOnce(ctx)
		if err != nil {
			slog.Error("simulation aborted", "frame", s.frame, "error", err)
			return err
		}
		if !cont {
			slog.Info("simulation stopped", "frame", s.frame)
			return nil
		}
	}
}

func (s *Simulation) runRestore() {
	for _, fn := range slices.Backward(s.restore) {
		fn()
	}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
