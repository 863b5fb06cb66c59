package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService records lifecycle calls into a shared log
type fakeService struct {
	name     string
	deps     []string
	initErr  error
	optional bool
	log      *[]string
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Optional() bool         { return f.optional }

func (f *fakeService) Init() error {
	*f.log = append(*f.log, "init "+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop "+f.name)
	return nil
}

func TestHubDependencyOrder(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "audio", deps: []string{"terminal"}, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "terminal", log: &log}))

	require.NoError(t, h.InitAll())
	require.NoError(t, h.StartAll())
	require.NoError(t, h.StopAll())

	assert.Equal(t, []string{
		"init terminal", "init audio",
		"start terminal", "start audio",
		"stop audio", "stop terminal",
	}, log)
}

func TestHubDuplicate(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "terminal", log: &log}))
	assert.ErrorIs(t, h.Register(&fakeService{name: "terminal", log: &log}), ErrDuplicate)
}

func TestHubUnknownDependency(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "audio", deps: []string{"mixer"}, log: &log}))
	assert.ErrorIs(t, h.InitAll(), ErrUnknownDependency)
	assert.Empty(t, log)
}

func TestHubCycle(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log}))
	assert.ErrorIs(t, h.InitAll(), ErrCycle)
}

func TestHubOptionalFailure(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "terminal", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "audio", initErr: errors.New("no device"), optional: true, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "cues", deps: []string{"audio"}, optional: true, log: &log}))

	require.NoError(t, h.InitAll())
	assert.True(t, h.Active("terminal"))
	assert.False(t, h.Active("audio"))
	assert.False(t, h.Active("cues"))

	require.NoError(t, h.StartAll())
	assert.Equal(t, []string{"init terminal", "init audio", "start terminal"}, log)
}

func TestHubFatalFailureKeepsInitialized(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "terminal", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "audio", initErr: errors.New("no device"), log: &log}))

	err := h.InitAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init audio")

	require.NoError(t, h.StopAll())
	assert.Equal(t, []string{"init terminal", "init audio", "stop terminal"}, log)
}

func TestHubStopAllIdempotent(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "terminal", log: &log}))
	require.NoError(t, h.InitAll())

	require.NoError(t, h.StopAll())
	require.NoError(t, h.StopAll())
	assert.Equal(t, []string{"init terminal", "stop terminal"}, log)
	assert.False(t, h.Active("terminal"))
}
