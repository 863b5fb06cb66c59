package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/status"
)

// groundSpacing is the world distance between ground lattice points
const groundSpacing = 5

// groundLayer draws a dot lattice on the y=0 plane around the camera
type groundLayer struct {
	t *Terminal
}

func (g *groundLayer) Draw(c Canvas) {
	half := g.t.scene.GroundSize / 2
	if half <= 0 {
		return
	}
	cam := g.t.camera.Position
	// Snap the lattice to the grid so it does not swim as the camera moves
	cx := float32(int(cam.X()/groundSpacing)) * groundSpacing
	cz := float32(int(cam.Z()/groundSpacing)) * groundSpacing
	const reach = 60
	for x := cx - reach; x <= cx+reach; x += groundSpacing {
		if x < -half || x > half {
			continue
		}
		for z := cz - reach; z <= cz+reach; z += groundSpacing {
			if z < -half || z > half {
				continue
			}
			if sx, sy, ok := c.Project(mgl32.Vec3{x, 0, z}); ok {
				c.Set(sx, sy, '.', styleGround)
			}
		}
	}
}

// meshLayer draws every visible mesh in creation order
type meshLayer struct {
	t *Terminal
}

func (m *meshLayer) Draw(c Canvas) {
	for _, id := range m.t.order {
		mesh := m.t.meshes[id]
		if mesh == nil || mesh.hidden || !mesh.live {
			continue
		}
		for _, l := range mesh.lines {
			x0, y0, ok0 := c.Project(l.A)
			x1, y1, ok1 := c.Project(l.B)
			if !ok0 || !ok1 {
				continue
			}
			r, style := segmentGlyph(l.Kind)
			m.t.line(x0, y0, x1, y1, r, style)
		}
	}
}

// hudLayer writes the status summary on the top row
type hudLayer struct {
	reg *status.Registry
}

func (h *hudLayer) IsVisible() bool {
	return h.reg != nil
}

func (h *hudLayer) Draw(c Canvas) {
	w, _ := c.Size()
	line := h.reg.Summary()
	if len(line) > w {
		line = line[:w]
	}
	c.Text(0, 0, line, styleStatus)
}
