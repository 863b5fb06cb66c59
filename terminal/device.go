package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rigsim/input"
)

// DefaultHold is how long a key stays held after its last press or repeat
// Slightly above the common 30Hz auto-repeat interval after the initial delay
const DefaultHold = 120 * time.Millisecond

// KeyDevice implements input.Device from tcell events
// HandleEvent runs on the event pump goroutine, Poll on the driver goroutine
type KeyDevice struct {
	mu   sync.Mutex
	now  func() time.Time
	hold time.Duration

	lastSeen [input.KeyCount]time.Time
	buttons  tcell.ButtonMask

	mouseX, mouseY int
	hasMouse       bool
	dx, dy         int
}

// NewKeyDevice creates a device with the given hold window
// A zero hold uses DefaultHold
func NewKeyDevice(hold time.Duration) *KeyDevice {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyDevice{now: time.Now, hold: hold}
}

// HandleEvent records a tcell event, returns false for events it ignores
func (d *KeyDevice) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := mapKey(ev)
		if !ok || int(k) >= input.KeyCount {
			return false
		}
		d.mu.Lock()
		d.lastSeen[k] = d.now()
		d.mu.Unlock()
		return true

	case *tcell.EventMouse:
		x, y := ev.Position()
		d.mu.Lock()
		if d.hasMouse {
			d.dx += x - d.mouseX
			d.dy += y - d.mouseY
		}
		d.mouseX, d.mouseY = x, y
		d.hasMouse = true
		d.buttons = ev.Buttons()
		d.mu.Unlock()
		return true
	}
	return false
}

// Poll implements input.Device
func (d *KeyDevice) Poll(dst *input.Slot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k := range d.lastSeen {
		seen := d.lastSeen[k]
		if !seen.IsZero() && now.Sub(seen) < d.hold {
			dst.Keys[k] = true
		}
	}
	for i, b := range mouseButtons {
		if i < input.ButtonCount && d.buttons&b != 0 {
			dst.Buttons[i] = true
		}
	}
	dst.Mouse = input.MouseDelta{DX: d.dx, DY: d.dy}
	d.dx, d.dy = 0, 0
}

// Release drops every held key, used when focus is lost
func (d *KeyDevice) Release() {
	d.mu.Lock()
	d.lastSeen = [input.KeyCount]time.Time{}
	d.buttons = 0
	d.mu.Unlock()
}
