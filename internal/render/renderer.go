// Package render turns line text into styled terminal output.
package render

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/TimelordUK/lview/internal/command"
	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/tokenize"
)

// Mark selects how highlighted regions are painted
type Mark int

const (
	// MarkPreview paints the parts a pending command would change
	MarkPreview Mark = iota
	// MarkMatch paints search hits
	MarkMatch
)

// Renderer styles a single line
type Renderer interface {
	// Render styles text, paints regions with mark and cuts the result to
	// width terminal cells
	Render(text string, regions []command.Region, mark Mark, width int) string
}

// TokenRenderer colors tokens and paints highlight regions on top
type TokenRenderer struct {
	tokens    map[tokenize.Tag]lipgloss.Style
	marks     map[Mark]lipgloss.Style
	highlight bool
	tabWidth  int
}

// NewTokenRenderer creates a renderer from the theme and display settings
func NewTokenRenderer(cfg *config.Config) *TokenRenderer {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	t := cfg.Theme.Tokens

	return &TokenRenderer{
		tokens: map[tokenize.Tag]lipgloss.Style{
			tokenize.TagNone:        lipgloss.NewStyle(),
			tokenize.TagString:      fg(t.String),
			tokenize.TagBoolean:     fg(t.Boolean),
			tokenize.TagNull:        fg(t.Null),
			tokenize.TagNumber:      fg(t.Number),
			tokenize.TagBrace:       fg(t.Brace),
			tokenize.TagPunctuation: fg(t.Punctuation),
			tokenize.TagInfo:        fg(t.Info),
			tokenize.TagWarning:     fg(t.Warning).Bold(true),
			tokenize.TagError:       fg(t.Error).Bold(true),
			tokenize.TagFatal:       fg(t.Fatal).Bold(true),
		},
		marks: map[Mark]lipgloss.Style{
			MarkPreview: lipgloss.NewStyle().Background(lipgloss.Color(cfg.Theme.Preview)).Strikethrough(true),
			MarkMatch:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.SearchMatch)).Bold(true),
		},
		highlight: cfg.Display.Highlight,
		tabWidth:  cfg.Display.TabWidth,
	}
}

// Render implements Renderer
func (r *TokenRenderer) Render(text string, regions []command.Region, mark Mark, width int) string {
	if text == "" || width <= 0 {
		return ""
	}

	var spans []tokenize.Span
	if r.highlight {
		spans = tokenize.Tokenize(text)
	} else {
		spans = []tokenize.Span{{Start: 0, End: len(text), Tag: tokenize.TagNone}}
	}

	var sb strings.Builder
	col := 0
	for _, seg := range segments(text, spans, regions) {
		if col >= width {
			break
		}
		s := r.expandTabs(text[seg.start:seg.end], &col)
		full := col > width
		if full {
			s = runewidth.Truncate(s, runewidth.StringWidth(s)-(col-width), "")
		}

		style := r.tokens[seg.tag]
		if seg.marked {
			style = r.marks[mark].Inherit(style)
		}
		sb.WriteString(style.Render(s))
		if full {
			break
		}
	}
	return sb.String()
}

// expandTabs replaces tabs with spaces up to the next tab stop and advances
// col by the display width of the result
func (r *TokenRenderer) expandTabs(s string, col *int) string {
	if !strings.Contains(s, "\t") {
		*col += runewidth.StringWidth(s)
		return s
	}
	tw := max(r.tabWidth, 1)
	var sb strings.Builder
	for _, c := range s {
		if c == '\t' {
			n := tw - *col%tw
			sb.WriteString(strings.Repeat(" ", n))
			*col += n
			continue
		}
		sb.WriteRune(c)
		*col += runewidth.RuneWidth(c)
	}
	return sb.String()
}

type segment struct {
	start, end int
	tag        tokenize.Tag
	marked     bool
}

// segments cuts text at every span and region boundary
func segments(text string, spans []tokenize.Span, regions []command.Region) []segment {
	cuts := []int{0, len(text)}
	for _, s := range spans {
		cuts = append(cuts, s.Start, s.End)
	}
	for _, reg := range regions {
		cuts = append(cuts, runeStart(text, reg.Start), runeStart(text, reg.End))
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var out []segment
	si := 0
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		if a >= b || b > len(text) {
			continue
		}
		for si < len(spans)-1 && spans[si].End <= a {
			si++
		}
		seg := segment{start: a, end: b}
		if si < len(spans) {
			seg.tag = spans[si].Tag
		}
		for _, reg := range regions {
			if runeStart(text, reg.Start) <= a && b <= runeStart(text, reg.End) {
				seg.marked = true
				break
			}
		}
		out = append(out, seg)
	}
	return out
}

// runeStart clamps i into text and moves it forward to a rune boundary
func runeStart(text string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(text) {
		return len(text)
	}
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}
