package input

// Device is the external polling collaborator
// Poll writes the device state for this frame into dst, which arrives zeroed
type Device interface {
	Poll(dst *Slot)
}

// Sampler fills the current buffer slot from a device once per frame
type Sampler struct {
	device Device
}

// NewSampler creates a sampler, a nil device samples as "nothing held"
func NewSampler(device Device) *Sampler {
	return &Sampler{device: device}
}

// SampleInto must run after Buffer.Swap and before the logic update is dispatched
func (s *Sampler) SampleInto(b *Buffer) {
	cur := b.Current()
	*cur = Slot{}
	if s.device != nil {
		s.device.Poll(cur)
	}
	b.changed = *cur != *b.Previous()
}

// Replay is a device that plays back recorded slots, one per poll
// Polls past the end sample an empty slot
type Replay struct {
	frames []Slot
	next   int
}

// NewReplay creates a replay device over frames
func NewReplay(frames ...Slot) *Replay {
	return &Replay{frames: frames}
}

// Poll implements Device
func (r *Replay) Poll(dst *Slot) {
	if r.next >= len(r.frames) {
		return
	}
	*dst = r.frames[r.next]
	r.next++
}

// Remaining returns the number of unplayed frames
func (r *Replay) Remaining() int {
	return len(r.frames) - r.next
}

// Held builds a slot with the given keys down
func Held(keys ...Key) Slot {
	var s Slot
	s.Press(keys...)
	return s
}
