package render

import (
	"errors"
	"slices"
	"sync"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/frame"
)

// ErrInjectedFault is returned by a Recorder whose Fault hook fires
var ErrInjectedFault = errors.New("injected renderer fault")

// RecordedMesh is one mesh as submitted in a recorded frame
type RecordedMesh struct {
	ID     actor.ID
	Name   string
	Lines  []frame.Line
	Hidden bool
}

// RecordedFrame is the renderer state at a RenderFrame call
type RecordedFrame struct {
	Index  int
	Camera frame.Camera
	Meshes []RecordedMesh
}

// Recorder is a headless gfx.Renderer that records every submitted frame
// Used by headless runs and tests
type Recorder struct {
	mu sync.Mutex

	// Fault, when set, is consulted before each RenderFrame; a true result fails the frame
	Fault func(index int) bool
	// Keep bounds the retained frames, zero keeps all
	Keep int

	SceneInits int
	Created    int
	Destroyed  int
	Rendered   int

	camera frame.Camera
	meshes map[actor.ID]*RecordedMesh
	order  []actor.ID
	frames []RecordedFrame
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{meshes: make(map[actor.ID]*RecordedMesh)}
}

// InitScene implements gfx.Renderer
func (r *Recorder) InitScene(scene frame.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SceneInits++
	r.camera = scene.Camera
	return nil
}

// SetCamera implements gfx.Renderer
func (r *Recorder) SetCamera(cam frame.Camera) {
	r.mu.Lock()
	r.camera = cam
	r.mu.Unlock()
}

// CreateMesh implements gfx.Renderer
func (r *Recorder) CreateMesh(id actor.ID, def *actor.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshes[id]; ok {
		return errors.New("mesh already exists")
	}
	r.meshes[id] = &RecordedMesh{ID: id, Name: def.Name}
	r.order = append(r.order, id)
	r.Created++
	return nil
}

// UpdateMesh implements gfx.Renderer
func (r *Recorder) UpdateMesh(id actor.ID, lines []frame.Line, hidden bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meshes[id]
	if !ok {
		return errors.New("mesh not created")
	}
	m.Lines = append(m.Lines[:0], lines...)
	m.Hidden = hidden
	return nil
}

// DestroyMesh implements gfx.Renderer
func (r *Recorder) DestroyMesh(id actor.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshes[id]; !ok {
		return
	}
	delete(r.meshes, id)
	r.order = slices.DeleteFunc(r.order, func(o actor.ID) bool { return o == id })
	r.Destroyed++
}

// RenderFrame implements gfx.Renderer
func (r *Recorder) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fault != nil && r.Fault(r.Rendered) {
		return ErrInjectedFault
	}
	f := RecordedFrame{
		Index:  r.Rendered,
		Camera: r.camera,
		Meshes: make([]RecordedMesh, 0, len(r.order)),
	}
	for _, id := range r.order {
		m := r.meshes[id]
		f.Meshes = append(f.Meshes, RecordedMesh{
			ID:     m.ID,
			Name:   m.Name,
			Lines:  slices.Clone(m.Lines),
			Hidden: m.Hidden,
		})
	}
	r.frames = append(r.frames, f)
	if r.Keep > 0 && len(r.frames) > r.Keep {
		r.frames = slices.Delete(r.frames, 0, len(r.frames)-r.Keep)
	}
	r.Rendered++
	return nil
}

// Frames returns the retained frames
func (r *Recorder) Frames() []RecordedFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.frames)
}

// Last returns the most recent frame
func (r *Recorder) Last() (RecordedFrame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return RecordedFrame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// MeshIDs returns live mesh ids in creation order
func (r *Recorder) MeshIDs() []actor.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}
