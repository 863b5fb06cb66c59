// Package actor defines simulated entities and the two views held over them:
// the logic view mutated by the logic goroutine and the graphics state tracked
// by the driver goroutine
package actor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ID identifies an actor for the lifetime of the process, 0 is never assigned
type ID uint32

var (
	ErrNoNodes        = errors.New("definition has no nodes")
	ErrSegmentIndex   = errors.New("segment references unknown node")
	ErrDegenerateEdge = errors.New("segment connects a node to itself")
)

// SegmentKind selects how a segment is drawn
type SegmentKind uint8

const (
	SegmentBeam SegmentKind = iota
	SegmentHydro
	SegmentWheel
)

// NodeDef is a named mass point with its spawn position in actor space
type NodeDef struct {
	Name     string
	Position mgl32.Vec3
}

// Segment is a visual edge between two node indices
type Segment struct {
	A, B int
	Kind SegmentKind
}

// Definition is the immutable description shared by both views of an actor
// Must not be modified after Validate
type Definition struct {
	Name     string
	Nodes    []NodeDef
	Segments []Segment
}

// Validate checks node and segment consistency
func (d *Definition) Validate() error {
	if len(d.Nodes) == 0 {
		return fmt.Errorf("%q: %w", d.Name, ErrNoNodes)
	}
	for i, s := range d.Segments {
		if s.A < 0 || s.A >= len(d.Nodes) || s.B < 0 || s.B >= len(d.Nodes) {
			return fmt.Errorf("%q segment %d (%d-%d): %w", d.Name, i, s.A, s.B, ErrSegmentIndex)
		}
		if s.A == s.B {
			return fmt.Errorf("%q segment %d: %w", d.Name, i, ErrDegenerateEdge)
		}
	}
	return nil
}

// NodeCount returns the fixed node count of every actor built from d
func (d *Definition) NodeCount() int {
	return len(d.Nodes)
}

// Actor is the logic-owned entity
type Actor struct {
	ID    ID
	Def   *Definition
	Logic LogicView
}

// New creates an actor in Added state with node positions placed at origin + spawn offsets
func New(id ID, def *Definition, origin mgl32.Vec3) *Actor {
	positions := make([]mgl32.Vec3, def.NodeCount())
	for i, n := range def.Nodes {
		positions[i] = origin.Add(n.Position)
	}
	return &Actor{
		ID:  id,
		Def: def,
		Logic: LogicView{
			Positions: positions,
			State:     Added,
		},
	}
}

// Centroid returns the mean node position
func (a *Actor) Centroid() mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, p := range a.Logic.Positions {
		sum = sum.Add(p)
	}
	if len(a.Logic.Positions) == 0 {
		return sum
	}
	return sum.Mul(1 / float32(len(a.Logic.Positions)))
}
