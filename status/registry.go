// Package status is the pipeline metrics registry
// Components cache metric pointers at construction; frame loops write atomics directly
package status

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Metric keys written by the pipeline
const (
	EngineFrames  = "engine.frames"
	EngineStalls  = "engine.stalls"
	EngineLogicMs = "engine.logic_ms"
	EngineGfxMs   = "engine.gfx_ms"
	EngineJoinMs  = "engine.join_ms"
	LogicActors   = "logic.actors"
	GfxViews      = "gfx.views"
	GfxReady      = "gfx.ready"
)

// Registry is the central metrics facade
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Summary formats the HUD line: frames, timings and entity counts
func (r *Registry) Summary() string {
	var b strings.Builder
	frames := r.Ints.Get(EngineFrames).Load()
	fmt.Fprintf(&b, "frame %s", humanize.Comma(frames))
	fmt.Fprintf(&b, " | logic %sms gfx %sms",
		humanize.FtoaWithDigits(r.Floats.Get(EngineLogicMs).Get(), 2),
		humanize.FtoaWithDigits(r.Floats.Get(EngineGfxMs).Get(), 2))
	fmt.Fprintf(&b, " | actors %d views %d ready %d",
		r.Ints.Get(LogicActors).Load(),
		r.Ints.Get(GfxViews).Load(),
		r.Ints.Get(GfxReady).Load())
	if stalls := r.Ints.Get(EngineStalls).Load(); stalls > 0 {
		fmt.Fprintf(&b, " | stalls %s", humanize.Comma(stalls))
	}
	return b.String()
}

// Dump returns every metric as "key=value" in sorted order
func (r *Registry) Dump() []string {
	out := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", key, ptr.Load()))
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s=%.3f", key, ptr.Get()))
	})
	return out
}
