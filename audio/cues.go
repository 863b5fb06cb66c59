// Package audio plays short cues for view lifecycle changes
//
// Audio is optional: initialization failure leaves a silent Cues that
// accepts every call.
package audio

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/rigsim/gfx"
)

const (
	sampleRate = beep.SampleRate(48000)

	readyFreq   = 880
	removedFreq = 220
	cueLength   = 120 * time.Millisecond
)

// Cue identifies a sound
type Cue uint8

const (
	CueReady Cue = iota
	CueRemoved
)

// Cues manages the speaker and the cue mixer
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64

	// Played counts cue requests, including silent ones
	Played atomic.Int64
}

// NewCues creates a cue player at volume in [0, 1]
func NewCues(volume float64) *Cues {
	return &Cues{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
	}
}

// Initialize sets up the speaker
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup clears the mixer, the speaker stays open for the process lifetime
func (c *Cues) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Play queues a cue, a no-op when uninitialized
func (c *Cues) Play(cue Cue) {
	c.Played.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.volume == 0 {
		return
	}

	var s beep.Streamer
	switch cue {
	case CueReady:
		tone, err := generators.SineTone(sampleRate, readyFreq)
		if err != nil {
			slog.Debug("cue tone", "error", err)
			return
		}
		s = tone
	case CueRemoved:
		s = NewBuzzGenerator(sampleRate, removedFreq)
	default:
		return
	}

	s = &scaled{Streamer: beep.Take(sampleRate.N(cueLength), s), gain: c.volume}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Attach subscribes the cues to graphics lifecycle events
func (c *Cues) Attach(events *gfx.Events) {
	if events == nil {
		return
	}
	events.Ready.AddListener(func(_ context.Context, _ gfx.Lifecycle) {
		c.Play(CueReady)
	}, "audio.ready")
	events.Removed.AddListener(func(_ context.Context, _ gfx.Lifecycle) {
		c.Play(CueRemoved)
	}, "audio.removed")
}

// scaled applies a fixed gain
type scaled struct {
	beep.Streamer
	gain float64
}

func (s *scaled) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.Streamer.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= s.gain
		samples[i][1] *= s.gain
	}
	return n, ok
}
