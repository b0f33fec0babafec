package command

import (
	"context"
	"log"

	"github.com/TimelordUK/lview/internal/buffer"
	"github.com/TimelordUK/lview/internal/event"
)

// State holds the text typed into the prompt and the command it currently
// resolves to
type State struct {
	text    string
	pending Command
	bus     *event.Bus
}

// NewState creates a command state publishing on bus
func NewState(bus *event.Bus) *State {
	return &State{bus: bus}
}

// SetText replaces the prompt text and re-resolves the pending command
func (s *State) SetText(text string) {
	s.text = text
	cmd, err := Parse(text)
	if err != nil {
		s.pending = nil
		return
	}
	s.pending = cmd
}

// Text returns the prompt text
func (s *State) Text() string {
	return s.text
}

// Pending returns the command the text resolves to, or nil
func (s *State) Pending() Command {
	return s.pending
}

// Clear drops the text and the pending command
func (s *State) Clear() {
	s.text = ""
	s.pending = nil
}

// Execute dispatches the current text. A pending command takes the live
// buffer out of slot and runs on its own goroutine; the buffer comes back in
// CommandFinished. Otherwise a direct command is posted as an event.
// Returns false when nothing was dispatched.
func (s *State) Execute(ctx context.Context, slot *buffer.Slot) bool {
	defer s.Clear()

	if s.pending != nil {
		buf := slot.Take()
		if buf == nil {
			log.Printf("warn: %s: buffer is busy", s.pending)
			return false
		}
		go run(ctx, s.bus, s.pending, buf)
		return true
	}

	e, err := ParseDirect(s.text)
	if err != nil {
		return false
	}
	s.bus.Post(e)
	return true
}

func run(ctx context.Context, bus *event.Bus, cmd Command, buf *buffer.Buffer) {
	_, search := cmd.(*Search)
	bus.Send(event.CommandStarted{Command: cmd.String(), Search: search, Lines: buf.LineCount()})

	if ctx.Err() == nil {
		cmd.Execute(buf)
		buf.Compress()
	}
	bus.Send(event.CommandFinished{Buffer: buf, Command: cmd})
}
