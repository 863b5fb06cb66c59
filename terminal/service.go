package terminal

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rigsim/core"
	"github.com/lixenwraith/rigsim/service"
)

var _ service.Service = (*Service)(nil)

// Service manages the screen lifecycle and the event pump
type Service struct {
	screen tcell.Screen
	device *KeyDevice

	interruptCh chan struct{}
	stopCh      chan struct{}
	doneCh      chan struct{}
	mu          sync.Mutex
	running     bool
	stopped     bool
	interrupted bool
}

// NewService creates a service over screen; a nil screen opens the real terminal on Init
func NewService(screen tcell.Screen, device *KeyDevice) *Service {
	if device == nil {
		device = NewKeyDevice(0)
	}
	return &Service{
		screen:      screen,
		device:      device,
		interruptCh: make(chan struct{}),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Init opens and initializes the screen
func (s *Service) Init() error {
	if s.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal open: %w", err)
		}
		s.screen = screen
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	s.screen.EnableMouse()
	s.screen.EnableFocus()
	core.SetScreen(s.screen)
	return nil
}

// Name implements service.Service
func (s *Service) Name() string { return "terminal" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Start launches the event pump goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.running || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	core.Go(s.pollLoop)
	return nil
}

// pollLoop feeds screen events to the device until stopped
func (s *Service) pollLoop() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				s.interrupt()
				continue
			}
			s.device.HandleEvent(ev)
		case *tcell.EventMouse:
			s.device.HandleEvent(ev)
		case *tcell.EventFocus:
			if !ev.Focused {
				s.device.Release()
			}
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventInterrupt:
			// Wake-up posted by Stop
		}
	}
}

func (s *Service) interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interrupted {
		return
	}
	s.interrupted = true
	slog.Info("interrupt requested")
	close(s.interruptCh)
}

// Interrupted is closed once the user presses Ctrl-C
func (s *Service) Interrupted() <-chan struct{} {
	return s.interruptCh
}

// Stop halts the pump and restores the terminal, repeated calls are no-ops
func (s *Service) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	running := s.running
	s.running = false
	s.mu.Unlock()

	if !running {
		if s.screen != nil {
			s.screen.Fini()
		}
		core.SetScreen(nil)
		return nil
	}

	close(s.stopCh)
	// Unblock PollEvent
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-s.doneCh

	s.screen.Fini()
	core.SetScreen(nil)
	return nil
}

// Screen returns the wrapped screen
func (s *Service) Screen() tcell.Screen {
	return s.screen
}

// Device returns the input device fed by the pump
func (s *Service) Device() *KeyDevice {
	return s.device
}
