package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	lprogress "github.com/TimelordUK/lview/internal/progress"
)

const help = "j/k:scroll  f/b:page  g/G:top/bottom  ::command  /:search  n/N:next/prev  ctrl+s:save  z:compression  q:quit"

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	builder.WriteString(m.viewport.Render())
	builder.WriteString("\n")

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.cfg.Theme.StatusBar)).
		Foreground(lipgloss.Color(m.cfg.Theme.StatusBarText)).
		Width(m.width)
	builder.WriteString(statusStyle.Render(m.statusLine()))
	builder.WriteString("\n")

	switch {
	case m.prompting:
		builder.WriteString(m.input.View())
	case m.tracker.Len() > 0:
		builder.WriteString(m.progressLine())
	default:
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.Theme.LineNumbers))
		line := help
		if m.status != "" {
			line = m.status
		}
		builder.WriteString(helpStyle.Render(line))
	}

	return builder.String()
}

func (m *Model) statusLine() string {
	buf := m.slot.Buffer()
	name := "[no file]"
	if buf.Path() != "" {
		name = filepath.Base(buf.Path())
	}
	if m.slot.Busy() {
		return fmt.Sprintf(" %s  working...", name)
	}

	parts := []string{
		" " + name,
		fmt.Sprintf("L%s/%s", humanize.Comma(int64(m.viewport.TopLine()+1)), humanize.Comma(int64(buf.LineCount()))),
		fmt.Sprintf("%.0f%%", m.viewport.PercentScrolled()),
		"mem " + humanize.Bytes(uint64(buf.Mem())),
	}
	if m.search != nil {
		parts = append(parts, fmt.Sprintf("[%d matches for %q]", m.search.ResultCount(), m.search.Pattern()))
	}
	if buf.Compression() {
		parts = append(parts, "[lz4]")
	}
	if buf.Dirty() {
		parts = append(parts, "[modified]")
	}
	return strings.Join(parts, "  ")
}

// progressLine shows the oldest operation still in flight
func (m *Model) progressLine() string {
	entry := m.tracker.Active()[0]
	p := entry.Progress

	var amount string
	switch entry.Op.Kind {
	case lprogress.Loading, lprogress.Saving:
		amount = fmt.Sprintf("%s / %s", humanize.Bytes(uint64(p.Current)), humanize.Bytes(uint64(p.Max)))
	default:
		amount = fmt.Sprintf("%s lines", humanize.Comma(p.Max))
	}
	return fmt.Sprintf("%s %s %s", p.Label, m.bar.ViewAs(p.Percent()), amount)
}
