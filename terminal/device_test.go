package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/rigsim/input"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestDevice() (*KeyDevice, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	d := NewKeyDevice(100 * time.Millisecond)
	d.now = clk.now
	return d, clk
}

func TestKeyHeldWithinWindow(t *testing.T) {
	d, clk := newTestDevice()
	assert.True(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone)))

	var s input.Slot
	d.Poll(&s)
	assert.True(t, s.Keys['w'], "upper case folds to lower")

	clk.t = clk.t.Add(99 * time.Millisecond)
	s = input.Slot{}
	d.Poll(&s)
	assert.True(t, s.Keys['w'])

	clk.t = clk.t.Add(2 * time.Millisecond)
	s = input.Slot{}
	d.Poll(&s)
	assert.False(t, s.Keys['w'])
}

func TestNamedKeys(t *testing.T) {
	d, _ := newTestDevice()
	d.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	d.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))

	var s input.Slot
	d.Poll(&s)
	assert.True(t, s.Keys[input.KeyUp])
	assert.True(t, s.Keys[input.KeyEnter])
	assert.True(t, s.Keys[input.KeySpace])
}

func TestUnmappedKeyIgnored(t *testing.T) {
	d, _ := newTestDevice()
	assert.False(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone)))
	assert.False(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)))
	assert.False(t, d.HandleEvent(tcell.NewEventResize(10, 10)))
}

func TestMouseDeltaAccumulatesAndResets(t *testing.T) {
	d, _ := newTestDevice()
	d.HandleEvent(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(13, 9, tcell.Button1, tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(15, 12, tcell.Button1, tcell.ModNone))

	var s input.Slot
	d.Poll(&s)
	assert.Equal(t, input.MouseDelta{DX: 5, DY: 2}, s.Mouse)
	assert.True(t, s.Buttons[0])

	s = input.Slot{}
	d.Poll(&s)
	assert.Equal(t, input.MouseDelta{}, s.Mouse)
	assert.True(t, s.Buttons[0], "button stays down until a release event")
}

func TestRelease(t *testing.T) {
	d, _ := newTestDevice()
	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	d.Release()

	var s input.Slot
	d.Poll(&s)
	assert.Equal(t, input.Slot{}, s)
}
