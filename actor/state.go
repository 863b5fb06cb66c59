package actor

import "github.com/go-gl/mathgl/mgl32"

// LogicState is the lifecycle state owned by the logic goroutine
type LogicState uint8

const (
	Added    LogicState = iota // Spawned, not yet reported to graphics
	Active                     // Reported, positions copied every frame
	Removing                   // Scheduled for removal, reported once then erased
)

func (s LogicState) String() string {
	switch s {
	case Added:
		return "added"
	case Active:
		return "active"
	case Removing:
		return "removing"
	default:
		return "unknown"
	}
}

// LogicView holds the mutable logic-side state of an actor
// Positions is exclusively owned by the logic goroutine during an update
type LogicView struct {
	Positions []mgl32.Vec3
	State     LogicState
	Hidden    bool

	// Reported is set once the actor has been handed to graphics
	Reported bool
}

// GfxState is the lifecycle state of the graphics view
// Hidden is tracked separately and does not change it
type GfxState uint8

const (
	Preparing GfxState = iota // View constructed, waiting for positions and assets
	Ready                     // Geometry is drawn every frame
)

func (s GfxState) String() string {
	switch s {
	case Preparing:
		return "preparing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}
