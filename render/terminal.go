package render

import (
	"errors"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
	"github.com/lixenwraith/rigsim/status"
)

const (
	fovDegrees = 60
	nearPlane  = 0.1
	farPlane   = 1000
	// Terminal cells are roughly twice as tall as wide
	cellAspect = 2
	// Lines whose projected extent exceeds this many screens are skipped
	maxLineSpan = 4
)

var ErrNoScreen = errors.New("no screen")

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

type mesh struct {
	name   string
	lines  []frame.Line
	hidden bool
	live   bool // received geometry at least once
}

// Terminal renders actor meshes as projected line art on a tcell screen
// Implements gfx.Renderer; all methods run on the driver goroutine
type Terminal struct {
	screen   tcell.Screen
	layers   []layerEntry
	regCount int

	scene    frame.Scene
	camera   frame.Camera
	viewProj mgl32.Mat4
	width    int
	height   int

	meshes map[actor.ID]*mesh
	order  []actor.ID
}

// NewTerminal creates a renderer over an initialized screen
// Default layers (ground, meshes, status line) are registered here
func NewTerminal(screen tcell.Screen, reg *status.Registry) *Terminal {
	t := &Terminal{
		screen: screen,
		layers: make([]layerEntry, 0, 8),
		meshes: make(map[actor.ID]*mesh),
	}
	t.Register(&groundLayer{t: t}, PriorityGround)
	t.Register(&meshLayer{t: t}, PriorityMeshes)
	t.Register(&hudLayer{reg: reg}, PriorityUI)
	return t
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (t *Terminal) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    t.regCount,
	}
	t.regCount++

	pos := len(t.layers)
	for i, e := range t.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	t.layers = append(t.layers, layerEntry{})
	copy(t.layers[pos+1:], t.layers[pos:])
	t.layers[pos] = entry
}

// InitScene implements gfx.Renderer
func (t *Terminal) InitScene(scene frame.Scene) error {
	if t.screen == nil {
		return ErrNoScreen
	}
	t.scene = scene
	t.camera = scene.Camera
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

// SetCamera implements gfx.Renderer
func (t *Terminal) SetCamera(cam frame.Camera) {
	t.camera = cam
}

// CreateMesh implements gfx.Renderer
func (t *Terminal) CreateMesh(id actor.ID, def *actor.Definition) error {
	t.meshes[id] = &mesh{
		name:  def.Name,
		lines: make([]frame.Line, 0, len(def.Segments)),
	}
	t.order = append(t.order, id)
	return nil
}

// UpdateMesh implements gfx.Renderer, lines are copied
func (t *Terminal) UpdateMesh(id actor.ID, lines []frame.Line, hidden bool) error {
	m, ok := t.meshes[id]
	if !ok {
		return errors.New("mesh not created")
	}
	m.lines = append(m.lines[:0], lines...)
	m.hidden = hidden
	m.live = true
	return nil
}

// DestroyMesh implements gfx.Renderer
func (t *Terminal) DestroyMesh(id actor.ID) {
	delete(t.meshes, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// RenderFrame executes the layer pipeline: clear, draw all, show
func (t *Terminal) RenderFrame() error {
	t.width, t.height = t.screen.Size()
	if t.width <= 0 || t.height <= 0 {
		return nil
	}
	t.updateViewProj()

	t.screen.Clear()
	for _, entry := range t.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Draw(t)
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) updateViewProj() {
	aspect := float32(t.width) / float32(cellAspect*t.height)
	proj := mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, nearPlane, farPlane)
	pos := t.camera.Position
	view := t.camera.Orientation.Inverse().Mat4().Mul4(mgl32.Translate3D(-pos.X(), -pos.Y(), -pos.Z()))
	t.viewProj = proj.Mul4(view)
}

// Size implements Canvas
func (t *Terminal) Size() (int, int) {
	return t.width, t.height
}

// Set implements Canvas, out-of-bounds cells are ignored
func (t *Terminal) Set(x, y int, r rune, style tcell.Style) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

// Text implements Canvas
func (t *Terminal) Text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.Set(x, y, r, style)
		x++
	}
}

// Project implements Canvas
func (t *Terminal) Project(p mgl32.Vec3) (int, int, bool) {
	clip := t.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= nearPlane {
		return 0, 0, false
	}
	nx := clip.X() / w
	ny := clip.Y() / w
	sx := int(math.Floor(float64((nx + 1) / 2 * float32(t.width))))
	sy := int(math.Floor(float64((1 - ny) / 2 * float32(t.height))))
	return sx, sy, true
}

// line draws a Bresenham line between two cells
func (t *Terminal) line(x0, y0, x1, y1 int, r rune, style tcell.Style) {
	if abs(x1-x0) > maxLineSpan*t.width || abs(y1-y0) > maxLineSpan*t.height {
		return
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		t.Set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
