// Package view draws the visible window of a buffer.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/lview/internal/command"
	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/render"
	"github.com/TimelordUK/lview/pkg/logformat"
)

// LineSource is the read side of a buffer
type LineSource interface {
	LineCount() int
	LineText(i int) string
}

// Highlighter reports the regions of a line to paint
type Highlighter interface {
	Highlight(index int, text string) []command.Region
}

// Viewport manages the visible portion of a line source.
// It knows nothing about commands or files, only how to draw lines.
type Viewport struct {
	source   LineSource
	renderer render.Renderer
	detector *logformat.LevelDetector

	width  int
	height int

	scrollOffset int

	lineNumberStyle lipgloss.Style
	currentStyle    lipgloss.Style
	levelStyles     map[logformat.Level]lipgloss.Style

	showLineNumbers bool

	highlighter Highlighter
	mark        render.Mark

	// Selected line index, -1 for none
	currentLine int
}

// NewViewport creates a viewport styled from cfg
func NewViewport(cfg *config.Config, width, height int) *Viewport {
	levels := cfg.Theme.Levels
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &Viewport{
		width:           width,
		height:          height,
		renderer:        render.NewTokenRenderer(cfg),
		detector:        logformat.NewLevelDetector(&cfg.LogLevels),
		showLineNumbers: cfg.Display.ShowLineNumbers,
		lineNumberStyle: fg(cfg.Theme.LineNumbers),
		currentStyle:    fg(cfg.Theme.SearchMatch).Bold(true),
		levelStyles: map[logformat.Level]lipgloss.Style{
			logformat.LevelTrace: fg(levels.Trace),
			logformat.LevelDebug: fg(levels.Debug),
			logformat.LevelInfo:  fg(levels.Info),
			logformat.LevelWarn:  fg(levels.Warn),
			logformat.LevelError: fg(levels.Error),
			logformat.LevelFatal: fg(levels.Fatal),
		},
		currentLine: -1,
	}
}

// SetRenderer replaces the line renderer
func (v *Viewport) SetRenderer(r render.Renderer) {
	v.renderer = r
}

// SetSource replaces the lines shown, keeping the scroll position where
// possible
func (v *Viewport) SetSource(src LineSource) {
	v.source = src
	v.clampScroll()
}

// Reset shows src from the top
func (v *Viewport) Reset(src LineSource) {
	v.source = src
	v.scrollOffset = 0
	v.currentLine = -1
}

// SetHighlighter paints regions reported by h with mark; nil clears it
func (v *Viewport) SetHighlighter(h Highlighter, mark render.Mark) {
	v.highlighter = h
	v.mark = mark
}

// SetCurrentLine marks a line index as selected (-1 for none) and scrolls
// it into view
func (v *Viewport) SetCurrentLine(i int) {
	v.currentLine = i
	if i < 0 {
		return
	}
	if i < v.scrollOffset || i >= v.scrollOffset+v.height {
		v.scrollOffset = i - v.height/2
		v.clampScroll()
	}
}

// CurrentLine returns the selected line index or -1
func (v *Viewport) CurrentLine() int {
	return v.currentLine
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// ScrollDown scrolls down by n lines
func (v *Viewport) ScrollDown(n int) {
	v.scrollOffset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n lines
func (v *Viewport) ScrollUp(n int) {
	v.scrollOffset -= n
	v.clampScroll()
}

// PageDown scrolls down by one page
func (v *Viewport) PageDown() {
	v.ScrollDown(v.height - 1)
}

// PageUp scrolls up by one page
func (v *Viewport) PageUp() {
	v.ScrollUp(v.height - 1)
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.scrollOffset = 0
}

// GotoBottom scrolls to the end
func (v *Viewport) GotoBottom() {
	v.scrollOffset = v.lineCount() - v.height
	v.clampScroll()
}

// GotoLine scrolls so that the 1-based line n is at the top and selects it
func (v *Viewport) GotoLine(n int) {
	idx := min(max(n-1, 0), max(v.lineCount()-1, 0))
	v.scrollOffset = idx
	v.clampScroll()
	if v.lineCount() > 0 {
		v.currentLine = idx
	}
}

// TopLine returns the index of the first visible line
func (v *Viewport) TopLine() int {
	return v.scrollOffset
}

func (v *Viewport) lineCount() int {
	if v.source == nil {
		return 0
	}
	return v.source.LineCount()
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	maxScroll := max(v.lineCount()-v.height, 0)
	v.scrollOffset = min(max(v.scrollOffset, 0), maxScroll)
}

// Render returns the viewport content as a string
func (v *Viewport) Render() string {
	var builder strings.Builder
	count := v.lineCount()
	end := min(v.scrollOffset+v.height, count)
	numWidth := len(fmt.Sprintf("%d", count))

	for i := v.scrollOffset; i < end; i++ {
		if i > v.scrollOffset {
			builder.WriteString("\n")
		}
		text := v.source.LineText(i)

		available := v.width
		if v.showLineNumbers {
			builder.WriteString(v.gutter(i, text, numWidth))
			available -= numWidth + 1
		}

		var regions []command.Region
		if v.highlighter != nil {
			regions = v.highlighter.Highlight(i, text)
		}
		builder.WriteString(v.renderer.Render(text, regions, v.mark, available))
	}

	// Pad with empty lines if needed
	for i := end - v.scrollOffset; i < v.height; i++ {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}

// gutter draws the 1-based line number colored by the line's severity
func (v *Viewport) gutter(i int, text string, width int) string {
	num := fmt.Sprintf("%*d ", width, i+1)
	if i == v.currentLine {
		return v.currentStyle.Render(num)
	}
	if style, ok := v.levelStyles[v.detector.Detect([]byte(text))]; ok {
		return style.Render(num)
	}
	return v.lineNumberStyle.Render(num)
}

// PercentScrolled returns how far through the source we are
func (v *Viewport) PercentScrolled() float64 {
	total := v.lineCount()
	if total == 0 {
		return 0
	}
	if total <= v.height {
		return 100
	}
	return float64(v.scrollOffset) / float64(total-v.height) * 100
}

// SetShowLineNumbers toggles line numbers
func (v *Viewport) SetShowLineNumbers(show bool) {
	v.showLineNumbers = show
}
