// Package physics is a small node solver for vehicle actors
// Verlet integration with gravity, a ground plane and segment length constraints
package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
)

const (
	DefaultGravity    = -9.81
	DefaultDamping    = 0.98
	DefaultIterations = 4
	groundFriction    = 0.8
)

// Integrator implements logic.Solver
// All state is owned by the logic goroutine
type Integrator struct {
	Gravity    float32
	Damping    float32
	Iterations int
	Ground     float32

	prev map[actor.ID][]mgl32.Vec3
	rest map[*actor.Definition][]float32
	seen map[actor.ID]struct{}
}

// NewIntegrator returns an integrator with default constants
func NewIntegrator() *Integrator {
	return &Integrator{
		Gravity:    DefaultGravity,
		Damping:    DefaultDamping,
		Iterations: DefaultIterations,
		prev:       make(map[actor.ID][]mgl32.Vec3),
		rest:       make(map[*actor.Definition][]float32),
		seen:       make(map[actor.ID]struct{}),
	}
}

// Step advances every actor not being removed by dt
func (in *Integrator) Step(actors []*actor.Actor, dt time.Duration) {
	h := float32(dt.Seconds())
	if h <= 0 {
		return
	}
	clear(in.seen)
	for _, a := range actors {
		if a.Logic.State == actor.Removing {
			continue
		}
		in.seen[a.ID] = struct{}{}
		in.stepActor(a, h)
	}
	// Drop history of actors that left the simulation
	for id := range in.prev {
		if _, ok := in.seen[id]; !ok {
			delete(in.prev, id)
		}
	}
}

// Shift moves the motion history of id along with an externally applied displacement
// Implements logic.Shifter
func (in *Integrator) Shift(id actor.ID, delta mgl32.Vec3) {
	for i, p := range in.prev[id] {
		in.prev[id][i] = p.Add(delta)
	}
}

func (in *Integrator) stepActor(a *actor.Actor, h float32) {
	pos := a.Logic.Positions
	prev, ok := in.prev[a.ID]
	if !ok || len(prev) != len(pos) {
		prev = make([]mgl32.Vec3, len(pos))
		copy(prev, pos)
		in.prev[a.ID] = prev
	}

	// 1. Verlet integrate with gravity
	accel := mgl32.Vec3{0, in.Gravity * h * h, 0}
	for i := range pos {
		vel := pos[i].Sub(prev[i]).Mul(in.Damping)
		prev[i] = pos[i]
		pos[i] = pos[i].Add(vel).Add(accel)
	}

	// 2. Relax segment constraints toward rest length
	rest := in.restLengths(a.Def)
	for range in.Iterations {
		for si, s := range a.Def.Segments {
			d := pos[s.B].Sub(pos[s.A])
			l := d.Len()
			if l == 0 {
				continue
			}
			corr := d.Mul((l - rest[si]) / l * 0.5)
			pos[s.A] = pos[s.A].Add(corr)
			pos[s.B] = pos[s.B].Sub(corr)
		}
	}

	// 3. Ground contact with tangential friction
	for i := range pos {
		if pos[i][1] < in.Ground {
			pos[i][1] = in.Ground
			prev[i][1] = in.Ground
			prev[i][0] = pos[i][0] - (pos[i][0]-prev[i][0])*groundFriction
			prev[i][2] = pos[i][2] - (pos[i][2]-prev[i][2])*groundFriction
		}
	}
}

func (in *Integrator) restLengths(def *actor.Definition) []float32 {
	if r, ok := in.rest[def]; ok {
		return r
	}
	r := make([]float32, len(def.Segments))
	for i, s := range def.Segments {
		r[i] = def.Nodes[s.B].Position.Sub(def.Nodes[s.A].Position).Len()
	}
	in.rest[def] = r
	return r
}
