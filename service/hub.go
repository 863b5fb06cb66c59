package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

var (
	ErrDuplicate         = errors.New("duplicate service")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCycle             = errors.New("dependency cycle")
	ErrUnavailable       = errors.New("dependency unavailable")
)

// Hub initializes services in dependency order and stops them in reverse
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	names    []string // registration order

	inited  []string
	started []string
	skipped map[string]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		services: make(map[string]Service),
		skipped:  make(map[string]bool),
	}
}

// Register adds a service; names must be unique
func (h *Hub) Register(s Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := s.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	h.services[name] = s
	h.names = append(h.names, name)
	return nil
}

// InitAll initializes every registered service, dependencies first
// On a fatal failure the services already initialized stay so StopAll can release them
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.resolve()
	if err != nil {
		return err
	}

	for _, name := range order {
		if slices.Contains(h.inited, name) {
			continue
		}
		s := h.services[name]
		err := h.missingDependency(s)
		if err == nil {
			err = s.Init()
		}
		if err != nil {
			if isOptional(s) {
				slog.Warn("optional service disabled", "service", name, "error", err)
				h.skipped[name] = true
				continue
			}
			return fmt.Errorf("init %s: %w", name, err)
		}
		h.inited = append(h.inited, name)
		slog.Debug("service initialized", "service", name)
	}
	return nil
}

func (h *Hub) missingDependency(s Service) error {
	for _, dep := range s.Dependencies() {
		if h.skipped[dep] {
			return fmt.Errorf("%w: %s", ErrUnavailable, dep)
		}
	}
	return nil
}

// resolve returns registered names in dependency order, stable on registration order
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.names))
	order := make([]string, 0, len(h.names))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %v", ErrCycle, append(path, name))
		}
		state[name] = visiting
		for _, dep := range h.services[name].Dependencies() {
			if _, ok := h.services[dep]; !ok {
				return fmt.Errorf("%w: %s requires %s", ErrUnknownDependency, name, dep)
			}
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.names {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// StartAll starts initialized services in init order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range h.inited {
		if slices.Contains(h.started, name) {
			continue
		}
		if err := h.services[name].Start(); err != nil {
			return fmt.Errorf("start %s: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops every initialized service in reverse init order
// Later calls are no-ops until services are initialized again
func (h *Hub) StopAll() error {
	h.mu.Lock()
	inited := h.inited
	h.inited = nil
	h.started = nil
	h.mu.Unlock()

	var errs []error
	for _, name := range slices.Backward(inited) {
		if err := h.services[name].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Active reports whether name is initialized and not stopped
func (h *Hub) Active(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Contains(h.inited, name)
}
