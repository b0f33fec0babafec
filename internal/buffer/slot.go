package buffer

// Slot holds the live buffer on the interactive side. Take moves the buffer
// out to a worker and leaves an empty placeholder behind so the view always
// has something valid to draw. The buffer is never shared: until Install is
// called the worker is its only owner.
type Slot struct {
	live *Buffer
	busy bool
}

// NewSlot creates a slot holding b, or an empty buffer when b is nil
func NewSlot(b *Buffer) *Slot {
	if b == nil {
		b = New()
	}
	return &Slot{live: b}
}

// Buffer returns the buffer currently installed, possibly the placeholder
func (s *Slot) Buffer() *Buffer {
	return s.live
}

// Busy reports whether the real buffer is out with a worker
func (s *Slot) Busy() bool {
	return s.busy
}

// Take moves the live buffer out and installs an empty placeholder.
// Returns nil while a previous Take has not been matched by Install.
func (s *Slot) Take() *Buffer {
	if s.busy {
		return nil
	}
	b := s.live
	placeholder := New()
	placeholder.SetCompression(b.Compression())
	placeholder.SetPath(b.Path())
	s.live = placeholder
	s.busy = true
	return b
}

// Install makes b the live buffer and ends any pending handoff
func (s *Slot) Install(b *Buffer) {
	if b == nil {
		b = New()
	}
	s.live = b
	s.busy = false
}
