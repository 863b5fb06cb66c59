package gfx

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
	"github.com/lixenwraith/rigsim/status"
)

// fakeSource stands in for the logic context
type fakeSource struct {
	camera   frame.Camera
	added    []frame.Spawned
	removing []actor.ID
	active   map[actor.ID][]mgl32.Vec3
	order    []actor.ID
	hidden   map[actor.ID]bool
	gotAcks  [][]actor.ID
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		camera: frame.DefaultCamera(),
		active: make(map[actor.ID][]mgl32.Vec3),
		hidden: make(map[actor.ID]bool),
	}
}

func (f *fakeSource) Camera() frame.Camera { return f.camera }

func (f *fakeSource) DrainPending(acked []actor.ID) ([]frame.Spawned, []actor.ID) {
	f.gotAcks = append(f.gotAcks, append([]actor.ID(nil), acked...))
	for _, id := range acked {
		delete(f.active, id)
	}
	added, removing := f.added, f.removing
	f.added, f.removing = nil, nil
	return added, removing
}

func (f *fakeSource) EachActive(fn func(id actor.ID, positions []mgl32.Vec3, hidden bool)) {
	for _, id := range f.order {
		if p, ok := f.active[id]; ok {
			fn(id, p, f.hidden[id])
		}
	}
}

func (f *fakeSource) add(id actor.ID, def *actor.Definition) {
	pos := make([]mgl32.Vec3, len(def.Nodes))
	for i, n := range def.Nodes {
		pos[i] = n.Position
	}
	f.added = append(f.added, frame.Spawned{ID: id, Def: def})
	f.active[id] = pos
	f.order = append(f.order, id)
}

func pair() *actor.Definition {
	return &actor.Definition{
		Name: "pair",
		Nodes: []actor.NodeDef{
			{Position: mgl32.Vec3{0, 1, 0}},
			{Position: mgl32.Vec3{2, 1, 0}},
		},
		Segments: []actor.Segment{{A: 0, B: 1, Kind: actor.SegmentHydro}},
	}
}

// countingRenderer records calls and can fail or panic on demand
type countingRenderer struct {
	inits     int
	initErr   error
	created   []actor.ID
	destroyed []actor.ID
	updated   map[actor.ID][]frame.Line
	hidden    map[actor.ID]bool
	frames    int
	panicOn   int
}

func newCountingRenderer() *countingRenderer {
	return &countingRenderer{
		updated: make(map[actor.ID][]frame.Line),
		hidden:  make(map[actor.ID]bool),
		panicOn: -1,
	}
}

func (r *countingRenderer) InitScene(frame.Scene) error {
	if r.initErr != nil {
		return r.initErr
	}
	r.inits++
	return nil
}
func (r *countingRenderer) SetCamera(frame.Camera) {}
func (r *countingRenderer) CreateMesh(id actor.ID, _ *actor.Definition) error {
	r.created = append(r.created, id)
	return nil
}
func (r *countingRenderer) UpdateMesh(id actor.ID, lines []frame.Line, hidden bool) error {
	r.updated[id] = append([]frame.Line(nil), lines...)
	r.hidden[id] = hidden
	return nil
}
func (r *countingRenderer) DestroyMesh(id actor.ID) { r.destroyed = append(r.destroyed, id) }
func (r *countingRenderer) RenderFrame() error {
	if r.frames == r.panicOn {
		panic("device lost")
	}
	r.frames++
	return nil
}

func TestCheckAndInitIdempotent(t *testing.T) {
	r := newCountingRenderer()
	c := New(r)
	for i := 0; i < 5; i++ {
		require.NoError(t, c.CheckAndInit())
	}
	c.CopyLogicData(newFakeSource())
	require.True(t, c.Update())
	assert.Equal(t, 1, r.inits)
}

func TestCheckAndInitFailureRetried(t *testing.T) {
	r := newCountingRenderer()
	r.initErr = errors.New("no display")
	c := New(r)

	assert.ErrorIs(t, c.CheckAndInit(), ErrSceneInit)
	r.initErr = nil
	assert.NoError(t, c.CheckAndInit())
	assert.Equal(t, 1, r.inits)
}

func TestLifecycleExactlyOnce(t *testing.T) {
	r := newCountingRenderer()
	events := NewEvents()
	var preparing, ready, removed []actor.ID
	events.Preparing.AddListener(func(_ context.Context, l Lifecycle) { preparing = append(preparing, l.ID) })
	events.Ready.AddListener(func(_ context.Context, l Lifecycle) { ready = append(ready, l.ID) })
	events.Removed.AddListener(func(_ context.Context, l Lifecycle) { removed = append(removed, l.ID) })

	c := New(r, WithEvents(events))
	src := newFakeSource()
	src.add(1, pair())

	for i := 0; i < 4; i++ {
		c.CopyLogicData(src)
		require.True(t, c.Update())
	}
	v, ok := c.View(1)
	require.True(t, ok)
	assert.Equal(t, actor.Ready, v.State)

	src.removing = []actor.ID{1}
	for i := 0; i < 3; i++ {
		c.CopyLogicData(src)
		require.True(t, c.Update())
	}

	assert.Equal(t, []actor.ID{1}, preparing)
	assert.Equal(t, []actor.ID{1}, ready)
	assert.Equal(t, []actor.ID{1}, removed)
	assert.Equal(t, []actor.ID{1}, r.created)
	assert.Equal(t, []actor.ID{1}, r.destroyed)
	assert.Zero(t, c.ViewCount())
}

func TestRemovalAckHandedBackOnNextCopy(t *testing.T) {
	c := New(newCountingRenderer())
	src := newFakeSource()
	src.add(3, pair())
	c.CopyLogicData(src)
	require.True(t, c.Update())

	src.removing = []actor.ID{3}
	c.CopyLogicData(src)
	require.True(t, c.Update())
	assert.Equal(t, []actor.ID{3}, c.PendingAcks())

	c.CopyLogicData(src)
	assert.Equal(t, []actor.ID{3}, src.gotAcks[len(src.gotAcks)-1])
	assert.Empty(t, c.PendingAcks())
}

func TestCopyBitIdenticalAndIndependent(t *testing.T) {
	c := New(newCountingRenderer())
	src := newFakeSource()
	src.add(1, pair())
	c.CopyLogicData(src)
	require.True(t, c.Update())

	src.active[1][0] = mgl32.Vec3{0.1, 0.2, 0.3}
	c.CopyLogicData(src)
	v, _ := c.View(1)
	assert.Equal(t, src.active[1], v.Positions)

	// Writes after the copy do not reach the view
	src.active[1][1] = mgl32.Vec3{9, 9, 9}
	assert.Equal(t, mgl32.Vec3{2, 1, 0}, v.Positions[1])
}

func TestPromotionWaitsForAssets(t *testing.T) {
	loaded := false
	c := New(newCountingRenderer(), WithAssets(AssetFunc(func(*actor.Definition) bool { return loaded })))
	src := newFakeSource()
	src.add(1, pair())

	for i := 0; i < 3; i++ {
		c.CopyLogicData(src)
		require.True(t, c.Update())
	}
	v, _ := c.View(1)
	assert.Equal(t, actor.Preparing, v.State)

	loaded = true
	c.CopyLogicData(src)
	require.True(t, c.Update())
	assert.Equal(t, actor.Ready, v.State)
}

func TestHiddenIsOrthogonal(t *testing.T) {
	r := newCountingRenderer()
	c := New(r)
	src := newFakeSource()
	src.add(1, pair())
	c.SetHidden(1, true)

	for i := 0; i < 2; i++ {
		c.CopyLogicData(src)
		require.True(t, c.Update())
	}
	v, _ := c.View(1)
	assert.Equal(t, actor.Ready, v.State)
	assert.True(t, v.Hidden())
	assert.True(t, r.hidden[1])

	c.SetHidden(1, false)
	src.hidden[1] = true
	c.CopyLogicData(src)
	require.True(t, c.Update())
	assert.True(t, r.hidden[1], "logic hide still applies")

	src.hidden[1] = false
	c.CopyLogicData(src)
	require.True(t, c.Update())
	assert.False(t, r.hidden[1])
	assert.Equal(t, actor.Ready, v.State)
}

func TestRebuildUsesCopiedPositions(t *testing.T) {
	r := newCountingRenderer()
	c := New(r)
	src := newFakeSource()
	src.add(1, pair())
	for i := 0; i < 2; i++ {
		c.CopyLogicData(src)
		require.True(t, c.Update())
	}
	require.Len(t, r.updated[1], 1)
	assert.Equal(t, frame.Line{A: mgl32.Vec3{0, 1, 0}, B: mgl32.Vec3{2, 1, 0}, Kind: actor.SegmentHydro}, r.updated[1][0])
}

func TestRendererPanicReturnsFalse(t *testing.T) {
	r := newCountingRenderer()
	r.panicOn = 1
	c := New(r)
	src := newFakeSource()

	c.CopyLogicData(src)
	assert.True(t, c.Update())
	c.CopyLogicData(src)
	assert.False(t, c.Update())
}

func TestStatusCounts(t *testing.T) {
	reg := status.NewRegistry()
	c := New(newCountingRenderer(), WithStatus(reg))
	src := newFakeSource()
	src.add(1, pair())
	src.add(2, pair())
	for i := 0; i < 2; i++ {
		c.CopyLogicData(src)
		require.True(t, c.Update())
	}
	assert.Equal(t, int64(2), reg.Ints.Get(status.GfxViews).Load())
	assert.Equal(t, int64(2), reg.Ints.Get(status.GfxReady).Load())
	assert.Equal(t, uint64(2), c.Snapshot().Frame)
}

// liveRenderer tracks which meshes exist when each frame is submitted
type liveRenderer struct {
	*countingRenderer
	live      map[actor.ID]bool
	submitted []map[actor.ID]bool
}

func (r *liveRenderer) CreateMesh(id actor.ID, def *actor.Definition) error {
	r.live[id] = true
	return r.countingRenderer.CreateMesh(id, def)
}

func (r *liveRenderer) DestroyMesh(id actor.ID) {
	delete(r.live, id)
	r.countingRenderer.DestroyMesh(id)
}

func (r *liveRenderer) RenderFrame() error {
	snap := make(map[actor.ID]bool, len(r.live))
	for id := range r.live {
		snap[id] = true
	}
	r.submitted = append(r.submitted, snap)
	return r.countingRenderer.RenderFrame()
}

func TestRemovedViewNotDrawnInRemovalFrame(t *testing.T) {
	r := &liveRenderer{countingRenderer: newCountingRenderer(), live: make(map[actor.ID]bool)}
	c := New(r)
	src := newFakeSource()
	src.add(3, pair())
	c.CopyLogicData(src)
	require.True(t, c.Update())

	src.removing = []actor.ID{3}
	c.CopyLogicData(src)
	require.True(t, c.Update())

	require.Len(t, r.submitted, 2)
	assert.True(t, r.submitted[0][3])
	assert.False(t, r.submitted[1][3])
}
