package audio

import "github.com/lixenwraith/rigsim/service"

var (
	_ service.Service  = (*Cues)(nil)
	_ service.Optional = (*Cues)(nil)
)

const serviceName = "audio"

// Name implements service.Service
func (c *Cues) Name() string { return serviceName }

// Dependencies implements service.Service
func (c *Cues) Dependencies() []string { return nil }

// Init implements service.Service
func (c *Cues) Init() error { return c.Initialize() }

// Start implements service.Service, the speaker plays from Init
func (c *Cues) Start() error { return nil }

// Stop implements service.Service
func (c *Cues) Stop() error {
	c.Cleanup()
	return nil
}

// Optional implements service.Optional, a missing audio device is not fatal
func (c *Cues) Optional() bool { return true }
