package gfx

import (
	"context"

	"github.com/maniartech/signals"

	"github.com/lixenwraith/rigsim/actor"
)

// Lifecycle is emitted when a view changes state
type Lifecycle struct {
	ID    actor.ID
	Name  string
	Frame uint64
}

// Events are emitted synchronously on the driver goroutine during Update
// Listeners must not block
type Events struct {
	Preparing signals.Signal[Lifecycle]
	Ready     signals.Signal[Lifecycle]
	Removed   signals.Signal[Lifecycle]
}

// NewEvents creates the lifecycle signals
func NewEvents() *Events {
	return &Events{
		Preparing: signals.NewSync[Lifecycle](),
		Ready:     signals.NewSync[Lifecycle](),
		Removed:   signals.NewSync[Lifecycle](),
	}
}

type eventKind uint8

const (
	eventPreparing eventKind = iota
	eventReady
	eventRemoved
)

func (c *Context) emit(ctx context.Context, kind eventKind, v *View) {
	if c.events == nil {
		return
	}
	var sig signals.Signal[Lifecycle]
	switch kind {
	case eventPreparing:
		sig = c.events.Preparing
	case eventReady:
		sig = c.events.Ready
	case eventRemoved:
		sig = c.events.Removed
	}
	if sig == nil {
		return
	}
	sig.Emit(ctx, Lifecycle{ID: v.ID, Name: v.Def.Name, Frame: c.snap.Frame})
}
