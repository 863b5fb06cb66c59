package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() *Definition {
	return &Definition{
		Name: "tri",
		Nodes: []NodeDef{
			{Name: "a", Position: mgl32.Vec3{0, 0, 0}},
			{Name: "b", Position: mgl32.Vec3{2, 0, 0}},
			{Name: "c", Position: mgl32.Vec3{0, 0, 2}},
		},
		Segments: []Segment{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 0}},
	}
}

func TestDefinitionValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, triangle().Validate())
	})
	t.Run("no nodes", func(t *testing.T) {
		d := &Definition{Name: "empty"}
		assert.ErrorIs(t, d.Validate(), ErrNoNodes)
	})
	t.Run("segment out of range", func(t *testing.T) {
		d := triangle()
		d.Segments = append(d.Segments, Segment{A: 1, B: 3})
		assert.ErrorIs(t, d.Validate(), ErrSegmentIndex)
	})
	t.Run("negative index", func(t *testing.T) {
		d := triangle()
		d.Segments = append(d.Segments, Segment{A: -1, B: 0})
		assert.ErrorIs(t, d.Validate(), ErrSegmentIndex)
	})
	t.Run("self edge", func(t *testing.T) {
		d := triangle()
		d.Segments = append(d.Segments, Segment{A: 2, B: 2})
		assert.ErrorIs(t, d.Validate(), ErrDegenerateEdge)
	})
}

func TestNewPlacesNodesAtOrigin(t *testing.T) {
	def := triangle()
	a := New(7, def, mgl32.Vec3{10, 1, 5})

	require.Len(t, a.Logic.Positions, def.NodeCount())
	assert.Equal(t, ID(7), a.ID)
	assert.Equal(t, Added, a.Logic.State)
	assert.False(t, a.Logic.Reported)
	assert.Equal(t, mgl32.Vec3{12, 1, 5}, a.Logic.Positions[1])

	// Spawn positions must not alias the definition
	a.Logic.Positions[0] = mgl32.Vec3{99, 99, 99}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, def.Nodes[0].Position)
}

func TestCentroid(t *testing.T) {
	a := New(1, triangle(), mgl32.Vec3{})
	c := a.Centroid()
	assert.InDelta(t, 2.0/3.0, c.X(), 1e-6)
	assert.InDelta(t, 0, c.Y(), 1e-6)
	assert.InDelta(t, 2.0/3.0, c.Z(), 1e-6)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "removing", Removing.String())
	assert.Equal(t, "unknown", LogicState(42).String())
	assert.Equal(t, "preparing", Preparing.String())
	assert.Equal(t, "ready", Ready.String())
}
