// Package event defines the lifecycle notifications exchanged between worker
// goroutines and the interactive loop, and the bus that carries them.
package event

import (
	"github.com/TimelordUK/lview/internal/buffer"
)

// Event is a notification delivered to the interactive loop
type Event interface {
	isEvent()
}

// BufferLoadingStarted is sent once the input size is known
type BufferLoadingStarted struct {
	Path  string
	Total int64
}

// BufferLoading reports load progress in bytes
type BufferLoading struct {
	Path    string
	Current int64
	Total   int64
}

// BufferLoaded hands a fully populated buffer to the interactive side
type BufferLoaded struct {
	Buffer *buffer.Buffer
}

// BufferLoadFailed reports an aborted load
type BufferLoadFailed struct {
	Path string
	Err  error
}

// BufferClosed asks the interactive side to drop the live buffer
type BufferClosed struct{}

// BufferSavingStarted is sent before the first byte is written
type BufferSavingStarted struct {
	Path  string
	Total int64
}

// BufferSaving reports save progress in bytes
type BufferSaving struct {
	Path    string
	Current int64
	Total   int64
}

// BufferSaved reports a completed save and returns the buffer
type BufferSaved struct {
	Path   string
	Buffer *buffer.Buffer
}

// BufferSaveFailed reports a failed save. A partially written file is left
// on disk.
type BufferSaveFailed struct {
	Path   string
	Err    error
	Buffer *buffer.Buffer
}

// GotoLine moves the view to a 1-based line number
type GotoLine struct {
	Line int
}

// Zoom requests a font size change from the host
type Zoom struct {
	Size float64
}

// SaveRequested asks the interactive side to save the live buffer.
// An empty Path means the buffer's own path.
type SaveRequested struct {
	Path string
}

// CommandStarted is sent when a worker begins executing a command
type CommandStarted struct {
	Command string
	Search  bool
	Lines   int
}

// CommandFinished hands the mutated buffer back together with the command
// that produced it
type CommandFinished struct {
	Buffer  *buffer.Buffer
	Command any
}

func (BufferLoadingStarted) isEvent() {}
func (BufferLoading) isEvent()        {}
func (BufferLoaded) isEvent()         {}
func (BufferLoadFailed) isEvent()     {}
func (BufferClosed) isEvent()         {}
func (BufferSavingStarted) isEvent()  {}
func (BufferSaving) isEvent()         {}
func (BufferSaved) isEvent()          {}
func (BufferSaveFailed) isEvent()     {}
func (GotoLine) isEvent()             {}
func (Zoom) isEvent()                 {}
func (SaveRequested) isEvent()        {}
func (CommandStarted) isEvent()       {}
func (CommandFinished) isEvent()      {}
