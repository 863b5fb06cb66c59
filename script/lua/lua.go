// Package lua runs gameplay scripts on an embedded gopher-lua state
//
// A script defines global functions setup(), update(dt_ms) and optionally
// cleanup(). update returns false to end the simulation. The host surface is
// exposed as the global table "sim".
package lua

import (
	"errors"
	"fmt"
	"io"
	"os"

	glua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/rigsim/script"
)

var (
	ErrMissingEntryPoint = errors.New("missing entry point")
	ErrNoHost            = errors.New("host call outside setup/update")
	ErrClosed            = errors.New("script closed")
)

const (
	entrySetup   = "setup"
	entryUpdate  = "update"
	entryCleanup = "cleanup"
)

// Script is a loaded Lua chunk bound to a logic host on each call
type Script struct {
	name  string
	state *glua.LState

	setup   *glua.LFunction
	update  *glua.LFunction
	cleanup *glua.LFunction

	// host is set only while setup/update run
	host script.Host

	closed bool
}

var (
	_ script.Script = (*Script)(nil)
	_ io.Closer     = (*Script)(nil)
)

// Load compiles and runs source; entry points are resolved by Setup
func Load(name, source string) (*Script, error) {
	s := &Script{
		name:  name,
		state: glua.NewState(),
	}
	s.register()
	if err := s.state.DoString(source); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return s, nil
}

// LoadFile reads and loads a script file
func LoadFile(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Load(path, string(src))
}

// Name returns the chunk name
func (s *Script) Name() string {
	return s.name
}

func (s *Script) resolve() error {
	fn := func(name string) *glua.LFunction {
		if f, ok := s.state.GetGlobal(name).(*glua.LFunction); ok {
			return f
		}
		return nil
	}
	s.setup = fn(entrySetup)
	s.update = fn(entryUpdate)
	s.cleanup = fn(entryCleanup)

	if s.setup == nil {
		return fmt.Errorf("%s: %q: %w", s.name, entrySetup, ErrMissingEntryPoint)
	}
	if s.update == nil {
		return fmt.Errorf("%s: %q: %w", s.name, entryUpdate, ErrMissingEntryPoint)
	}
	return nil
}

// Setup resolves entry points and runs setup()
// Globals persist across runs; a script re-entered after Cleanup sees its previous state
func (s *Script) Setup(h script.Host) error {
	if s.closed {
		return fmt.Errorf("%s: %w", s.name, ErrClosed)
	}
	if err := s.resolve(); err != nil {
		return err
	}
	s.host = h
	defer func() { s.host = nil }()

	if err := s.state.CallByParam(glua.P{Fn: s.setup, NRet: 1, Protect: true}); err != nil {
		return fmt.Errorf("%s setup: %w", s.name, err)
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)
	if ret == glua.LFalse {
		return fmt.Errorf("%s setup returned false", s.name)
	}
	return nil
}

// Update runs update(dt_ms); a nil return keeps the simulation running
func (s *Script) Update(h script.Host, dtMillis float64) (bool, error) {
	if s.closed {
		return false, fmt.Errorf("%s: %w", s.name, ErrClosed)
	}
	if s.update == nil {
		return false, fmt.Errorf("%s: %q: %w", s.name, entryUpdate, ErrMissingEntryPoint)
	}
	s.host = h
	defer func() { s.host = nil }()

	if err := s.state.CallByParam(glua.P{Fn: s.update, NRet: 1, Protect: true}, glua.LNumber(dtMillis)); err != nil {
		return false, fmt.Errorf("%s update: %w", s.name, err)
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)
	return ret != glua.LFalse, nil
}

// Cleanup runs cleanup() if defined, the state stays open for another run
func (s *Script) Cleanup() error {
	if s.closed || s.cleanup == nil {
		return nil
	}
	if err := s.state.CallByParam(glua.P{Fn: s.cleanup, NRet: 0, Protect: true}); err != nil {
		return fmt.Errorf("%s cleanup: %w", s.name, err)
	}
	return nil
}

// Close releases the Lua state, later calls are no-ops
func (s *Script) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.setup, s.update, s.cleanup = nil, nil, nil
	s.state.Close()
	return nil
}
