// Package input implements per-frame device sampling into a double buffer
// Edge queries compare the current slot with the previous one
package input

// Key is a device-independent key code in [0, KeyCount)
type Key uint16

// Button is a mouse button index in [0, ButtonCount)
type Button uint8

const (
	KeyCount    = 256
	ButtonCount = 8
)

// MouseDelta is the pointer motion accumulated since the previous poll
type MouseDelta struct {
	DX, DY int
}

// Slot is one sampled frame of device state
// Comparable by value so change detection is a single compare
type Slot struct {
	Keys    [KeyCount]bool
	Buttons [ButtonCount]bool
	Mouse   MouseDelta
}

// Press marks keys down in the slot
func (s *Slot) Press(keys ...Key) {
	for _, k := range keys {
		if int(k) < KeyCount {
			s.Keys[k] = true
		}
	}
}

// Buffer is the fixed double buffer, indices are swapped instead of copying data
type Buffer struct {
	slots   [2]Slot
	cur     int
	changed bool
}

// NewBuffer allocates the double buffer once
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Reset zeroes both slots without reallocating
func (b *Buffer) Reset() {
	b.slots[0] = Slot{}
	b.slots[1] = Slot{}
	b.cur = 0
	b.changed = false
}

// Swap makes the current slot previous, O(1)
func (b *Buffer) Swap() {
	b.cur ^= 1
}

// Current returns the slot sampled this frame
func (b *Buffer) Current() *Slot {
	return &b.slots[b.cur]
}

// Previous returns the slot sampled last frame
func (b *Buffer) Previous() *Slot {
	return &b.slots[b.cur^1]
}

// Changed reports whether the current slot differs from the previous one
func (b *Buffer) Changed() bool {
	return b.changed
}

// ValidKey reports whether k indexes the key arrays
func ValidKey(k int) bool {
	return k >= 0 && k < KeyCount
}

// IsDown reports whether k is held this frame, ok is false for out-of-range codes
func (b *Buffer) IsDown(k int) (down, ok bool) {
	if !ValidKey(k) {
		return false, false
	}
	return b.slots[b.cur].Keys[k], true
}

// WasPressed reports a key that is down now and was up last frame
func (b *Buffer) WasPressed(k int) (pressed, ok bool) {
	if !ValidKey(k) {
		return false, false
	}
	return b.slots[b.cur].Keys[k] && !b.slots[b.cur^1].Keys[k], true
}

// WasReleased reports a key that is up now and was down last frame
func (b *Buffer) WasReleased(k int) (released, ok bool) {
	if !ValidKey(k) {
		return false, false
	}
	return !b.slots[b.cur].Keys[k] && b.slots[b.cur^1].Keys[k], true
}

// IsButtonDown reports mouse button state, ok is false for out-of-range buttons
func (b *Buffer) IsButtonDown(btn int) (down, ok bool) {
	if btn < 0 || btn >= ButtonCount {
		return false, false
	}
	return b.slots[b.cur].Buttons[btn], true
}

// Mouse returns this frame's pointer delta
func (b *Buffer) Mouse() MouseDelta {
	return b.slots[b.cur].Mouse
}
