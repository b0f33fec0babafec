// Package ui is the interactive terminal front end.
package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/lview/internal/buffer"
	"github.com/TimelordUK/lview/internal/command"
	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/event"
	"github.com/TimelordUK/lview/internal/loader"
	lprogress "github.com/TimelordUK/lview/internal/progress"
	"github.com/TimelordUK/lview/internal/render"
	"github.com/TimelordUK/lview/internal/view"
)

// Options configure a Model
type Options struct {
	Config     *config.Config
	ConfigPath string
	Path       string // file opened at startup, may be empty
}

// Model is the main application model
type Model struct {
	ctx context.Context

	cfg     *config.Config
	cfgPath string
	path    string

	bus     *event.Bus
	slot    *buffer.Slot
	state   *command.State
	tracker *lprogress.Tracker
	opts    loader.Options

	viewport *view.Viewport
	input    textinput.Model
	bar      progress.Model

	prompting bool
	search    *command.Search
	loaded    *buffer.Buffer // arrived while the slot was busy
	fontSize  float64

	width  int
	height int

	status string
}

// NewModel creates the model. Workers it starts stop when ctx is done.
func NewModel(ctx context.Context, o Options) *Model {
	cfg := o.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bus := event.NewBus(0)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "filter a&!b  |  a..b  |  l a..b  |  s text  |  :n  |  w [path]"
	ti.CharLimit = 512

	bar := progress.New(
		progress.WithSolidFill(cfg.Theme.Progress),
		progress.WithoutPercentage(),
	)

	slot := buffer.NewSlot(nil)
	slot.Buffer().SetCompression(cfg.Buffer.Compression)

	return &Model{
		ctx:      ctx,
		cfg:      cfg,
		cfgPath:  o.ConfigPath,
		path:     o.Path,
		bus:      bus,
		slot:     slot,
		state:    command.NewState(bus),
		tracker:  lprogress.NewTracker(),
		viewport: view.NewViewport(cfg, 80, 22),
		input:    ti,
		bar:      bar,
		opts: loader.Options{
			Interval:    cfg.Buffer.ProgressInterval(),
			Compression: cfg.Buffer.Compression,
		},
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.path != "" {
		loader.Open(m.ctx, m.path, m.bus, m.opts)
	}
	return waitForEvents(m.ctx, m.bus)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 2 lines for status bar and prompt
		m.viewport.SetSize(msg.Width, max(msg.Height-2, 1))
		m.bar.Width = max(msg.Width/3, 10)
		return m, nil

	case eventsMsg:
		for _, e := range msg {
			m.handleEvent(e)
		}
		return m, waitForEvents(m.ctx, m.bus)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)

	case "d", "ctrl+d":
		m.viewport.PageDown()
	case "u", "ctrl+u":
		m.viewport.PageUp()

	case "f", "pgdown", " ":
		m.viewport.PageDown()
	case "b", "pgup":
		m.viewport.PageUp()

	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()

	case ":":
		return m, m.openPrompt("")
	case "/":
		return m, m.openPrompt("s ")
	case "ctrl+g":
		return m, m.openPrompt(":")

	case "n":
		if m.search != nil && m.search.HasResults() {
			m.viewport.SetCurrentLine(m.search.Next())
		}
	case "N":
		if m.search != nil && m.search.HasResults() {
			m.viewport.SetCurrentLine(m.search.Prev())
		}

	case "ctrl+s":
		m.save("")

	case "z":
		m.toggleCompression()

	case "l":
		m.cfg.Display.ShowLineNumbers = !m.cfg.Display.ShowLineNumbers
		m.viewport.SetShowLineNumbers(m.cfg.Display.ShowLineNumbers)
	}

	return m, nil
}

func (m *Model) openPrompt(text string) tea.Cmd {
	m.prompting = true
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.state.SetText(text)
	m.syncHighlighter()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.input.Blur()
	m.input.SetValue("")
	m.syncHighlighter()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.state.Text()
		if !m.state.Execute(m.ctx, m.slot) {
			if m.slot.Busy() {
				m.status = "busy, try again when the current operation finishes"
			} else if text != "" {
				m.status = fmt.Sprintf("unknown command %q", text)
			}
		}
		m.closePrompt()
		return m, nil

	case "esc":
		m.state.Clear()
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Text() {
		m.state.SetText(m.input.Value())
		m.syncHighlighter()
	}
	return m, cmd
}

// syncHighlighter previews the pending command while typing, otherwise
// shows search hits
func (m *Model) syncHighlighter() {
	if m.prompting {
		if pending := m.state.Pending(); pending != nil {
			m.viewport.SetHighlighter(pending, render.MarkPreview)
			return
		}
	}
	if m.search != nil {
		m.viewport.SetHighlighter(m.search, render.MarkMatch)
		return
	}
	m.viewport.SetHighlighter(nil, render.MarkPreview)
}

// save hands the live buffer to a saver goroutine. An empty path saves back
// to the buffer's own file.
func (m *Model) save(path string) {
	if path == "" {
		path = m.slot.Buffer().Path()
	}
	if path == "" {
		m.status = "no file name, use w <path>"
		return
	}
	buf := m.slot.Take()
	if buf == nil {
		m.status = "busy, cannot save now"
		return
	}
	loader.SaveAsync(m.ctx, buf, path, m.bus, m.opts)
}

func (m *Model) toggleCompression() {
	on := !m.cfg.Buffer.Compression
	m.cfg.Buffer.Compression = on
	m.opts.Compression = on

	if !m.slot.Busy() {
		buf := m.slot.Buffer()
		buf.SetCompression(on)
		if on {
			buf.Compress()
		} else {
			buf.Decompress()
		}
	}

	if err := config.Save(m.cfgPath, m.cfg); err != nil {
		log.Printf("warn: saving config: %v", err)
		m.status = fmt.Sprintf("compression %s (not saved: %v)", onOff(on), err)
		return
	}
	m.status = fmt.Sprintf("compression %s", onOff(on))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
