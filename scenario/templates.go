package scenario

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
)

func builtins() []*actor.Definition {
	return []*actor.Definition{
		box("crate", 1, 1, 1, actor.SegmentBeam),
		truck(),
		trailer(),
	}
}

// box builds a w x h x d wireframe cuboid with its base at y=0
func box(name string, w, h, d float32, kind actor.SegmentKind) *actor.Definition {
	def := &actor.Definition{Name: name}
	addBox(def, mgl32.Vec3{0, 0, 0}, w, h, d, kind)
	return def
}

// addBox appends a cuboid centered on base in x/z, returns the index of its first node
func addBox(def *actor.Definition, base mgl32.Vec3, w, h, d float32, kind actor.SegmentKind) int {
	first := len(def.Nodes)
	hw, hd := w/2, d/2
	corners := [8]mgl32.Vec3{
		{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd},
		{-hw, h, -hd}, {hw, h, -hd}, {hw, h, hd}, {-hw, h, hd},
	}
	for _, c := range corners {
		def.Nodes = append(def.Nodes, actor.NodeDef{Position: base.Add(c)})
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		def.Segments = append(def.Segments, actor.Segment{A: first + e[0], B: first + e[1], Kind: kind})
	}
	// Face diagonals keep the box rigid under the relaxation solver
	for _, e := range [][2]int{{0, 2}, {4, 6}, {0, 5}, {3, 6}, {0, 7}, {1, 6}} {
		def.Segments = append(def.Segments, actor.Segment{A: first + e[0], B: first + e[1], Kind: kind})
	}
	return first
}

// addWheels hangs four wheel nodes below the chassis corners
func addWheels(def *actor.Definition, chassis int, drop float32) {
	for i := 0; i < 4; i++ {
		corner := def.Nodes[chassis+i].Position
		def.Nodes = append(def.Nodes, actor.NodeDef{Name: "wheel", Position: corner.Sub(mgl32.Vec3{0, drop, 0})})
		def.Segments = append(def.Segments, actor.Segment{A: chassis + i, B: len(def.Nodes) - 1, Kind: actor.SegmentWheel})
	}
}

func truck() *actor.Definition {
	def := &actor.Definition{Name: "truck"}
	chassis := addBox(def, mgl32.Vec3{0, 0.5, 0}, 2.4, 0.6, 6, actor.SegmentBeam)
	cab := addBox(def, mgl32.Vec3{0, 1.1, -2.2}, 2.2, 1.4, 1.6, actor.SegmentBeam)
	// Cab mounts
	def.Segments = append(def.Segments,
		actor.Segment{A: chassis + 4, B: cab, Kind: actor.SegmentHydro},
		actor.Segment{A: chassis + 5, B: cab + 1, Kind: actor.SegmentHydro},
	)
	addWheels(def, chassis, 0.5)
	return def
}

func trailer() *actor.Definition {
	def := &actor.Definition{Name: "trailer"}
	bed := addBox(def, mgl32.Vec3{0, 0.5, 0}, 2.4, 2.2, 8, actor.SegmentBeam)
	addWheels(def, bed, 0.5)
	return def
}
