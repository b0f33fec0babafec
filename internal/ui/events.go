package ui

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/TimelordUK/lview/internal/buffer"
	"github.com/TimelordUK/lview/internal/command"
	"github.com/TimelordUK/lview/internal/event"
	lprogress "github.com/TimelordUK/lview/internal/progress"
	"github.com/TimelordUK/lview/internal/render"
)

// eventsMsg carries every bus event that was queued when the wait ended
type eventsMsg []event.Event

// waitForEvents blocks off the update loop until an event arrives, then
// drains whatever else is queued so one repaint covers the whole batch
func waitForEvents(ctx context.Context, bus *event.Bus) tea.Cmd {
	return func() tea.Msg {
		e, err := bus.Next(ctx)
		if err != nil {
			return nil
		}
		return eventsMsg(append([]event.Event{e}, bus.Poll()...))
	}
}

func (m *Model) handleEvent(e event.Event) {
	switch e := e.(type) {
	case event.BufferLoadingStarted:
		m.tracker.Start(lprogress.Operation{Kind: lprogress.Loading, Path: e.Path}, e.Total)

	case event.BufferLoading:
		m.tracker.Update(lprogress.Operation{Kind: lprogress.Loading, Path: e.Path}, e.Current, e.Total)

	case event.BufferLoaded:
		m.tracker.Finish(lprogress.Operation{Kind: lprogress.Loading, Path: e.Buffer.Path()})
		if m.slot.Busy() {
			// a worker owns the live buffer, swap once it hands it back
			m.loaded = e.Buffer
			return
		}
		m.showLoaded(e.Buffer)

	case event.BufferLoadFailed:
		m.tracker.Finish(lprogress.Operation{Kind: lprogress.Loading, Path: e.Path})
		m.status = fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)

	case event.BufferClosed:
		if m.slot.Busy() {
			m.status = "busy, cannot close now"
			return
		}
		m.install(buffer.New())
		m.search = nil
		m.viewport.Reset(m.slot.Buffer())
		m.syncHighlighter()
		m.status = "closed"

	case event.BufferSavingStarted:
		m.tracker.Start(lprogress.Operation{Kind: lprogress.Saving, Path: e.Path}, e.Total)

	case event.BufferSaving:
		m.tracker.Update(lprogress.Operation{Kind: lprogress.Saving, Path: e.Path}, e.Current, e.Total)

	case event.BufferSaved:
		m.tracker.Finish(lprogress.Operation{Kind: lprogress.Saving, Path: e.Path})
		m.install(e.Buffer)
		m.viewport.SetSource(e.Buffer)
		m.status = fmt.Sprintf("saved %s", e.Path)
		m.takeLoaded()

	case event.BufferSaveFailed:
		m.tracker.Finish(lprogress.Operation{Kind: lprogress.Saving, Path: e.Path})
		m.install(e.Buffer)
		m.viewport.SetSource(e.Buffer)
		m.status = fmt.Sprintf("save to %s failed: %v", e.Path, e.Err)
		m.takeLoaded()

	case event.GotoLine:
		m.viewport.GotoLine(e.Line)

	case event.Zoom:
		m.fontSize = e.Size
		m.status = fmt.Sprintf("font size %.1f is up to the terminal", e.Size)

	case event.SaveRequested:
		m.save(e.Path)

	case event.CommandStarted:
		kind := lprogress.Filtering
		if e.Search {
			kind = lprogress.Searching
		}
		m.tracker.Start(lprogress.Operation{Kind: kind}, int64(e.Lines))
		m.status = e.Command

	case event.CommandFinished:
		m.install(e.Buffer)
		m.viewport.SetSource(e.Buffer)
		m.commandFinished(e)
		m.takeLoaded()
	}
}

// showLoaded makes a freshly loaded buffer live
func (m *Model) showLoaded(buf *buffer.Buffer) {
	m.install(buf)
	m.search = nil
	m.viewport.Reset(buf)
	m.syncHighlighter()
	m.status = fmt.Sprintf("%s: %s lines, %s", filepath.Base(buf.Path()),
		humanize.Comma(int64(buf.LineCount())), humanize.Bytes(uint64(buf.Len())))
}

// takeLoaded replaces the buffer a worker just returned with a file that
// finished loading while the worker ran
func (m *Model) takeLoaded() {
	if m.loaded == nil {
		return
	}
	buf := m.loaded
	m.loaded = nil
	m.showLoaded(buf)
}

func (m *Model) commandFinished(e event.CommandFinished) {
	if s, ok := e.Command.(*command.Search); ok {
		m.tracker.Finish(lprogress.Operation{Kind: lprogress.Searching})
		m.search = s
		m.viewport.SetHighlighter(s, render.MarkMatch)
		m.viewport.SetCurrentLine(s.Line())
		m.status = fmt.Sprintf("%s: %s matches", s, humanize.Comma(int64(s.ResultCount())))
		return
	}

	m.tracker.Finish(lprogress.Operation{Kind: lprogress.Filtering})
	// line indexes of an earlier search no longer apply
	m.search = nil
	m.viewport.SetCurrentLine(-1)
	m.syncHighlighter()
	m.status = fmt.Sprintf("%v: %s lines left", e.Command, humanize.Comma(int64(e.Buffer.LineCount())))
}

// install makes buf live with the current compression setting
func (m *Model) install(buf *buffer.Buffer) {
	on := m.cfg.Buffer.Compression
	if buf.Compression() != on {
		buf.SetCompression(on)
		if on {
			buf.Compress()
		} else {
			buf.Decompress()
		}
	}
	m.slot.Install(buf)
}
