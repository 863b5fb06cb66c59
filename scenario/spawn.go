package scenario

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/config"
)

// Spawner inserts actors by template name, implemented by logic.Context
type Spawner interface {
	Spawn(template string, at mgl32.Vec3) (actor.ID, error)
}

// Spawn places the configured vehicles in a row along the x axis, centered on the origin
// Stops at the first failure and returns the ids spawned so far
func Spawn(s Spawner, cfg config.Scenario) ([]actor.ID, error) {
	total := 0
	for _, v := range cfg.Vehicles {
		total += v.Count
	}

	ids := make([]actor.ID, 0, total)
	slot := 0
	for _, v := range cfg.Vehicles {
		for i := 0; i < v.Count; i++ {
			x := (float32(slot) - float32(total-1)/2) * v.Spacing
			id, err := s.Spawn(v.Template, mgl32.Vec3{x, v.Height, 0})
			if err != nil {
				return ids, fmt.Errorf("spawn %s #%d: %w", v.Template, i, err)
			}
			ids = append(ids, id)
			slot++
		}
	}
	slog.Debug("scenario spawned", "actors", len(ids))
	return ids, nil
}
