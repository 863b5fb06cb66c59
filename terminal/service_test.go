package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rigsim/input"
)

func TestServicePumpsKeys(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	svc := NewService(screen, NewKeyDevice(time.Minute))
	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start())
	defer svc.Stop()

	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)

	assert.Eventually(t, func() bool {
		var s input.Slot
		svc.Device().Poll(&s)
		return s.Keys['d']
	}, time.Second, 5*time.Millisecond)
}

func TestServiceInterrupt(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	svc := NewService(screen, nil)
	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start())
	defer svc.Stop()

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	select {
	case <-svc.Interrupted():
	case <-time.After(time.Second):
		t.Fatal("interrupt not signalled")
	}
}

func TestServiceStopWithoutStart(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	svc := NewService(screen, nil)
	require.NoError(t, svc.Init())
	svc.Stop()
}

func TestServiceStopTwice(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	svc := NewService(screen, nil)
	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start())
	svc.Stop()
	assert.NotPanics(t, func() { require.NoError(t, svc.Stop()) })
}
