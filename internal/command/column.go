package command

import (
	"fmt"
	"unicode/utf8"

	"github.com/TimelordUK/lview/internal/buffer"
)

// ColumnFilter removes a byte range from every line
type ColumnFilter struct {
	Range Range
}

// ParseColumnFilter parses "a..b", "..b" or "a.."
func ParseColumnFilter(text string) (*ColumnFilter, error) {
	r, err := ParseRange(text)
	if err != nil {
		return nil, err
	}
	return &ColumnFilter{Range: r}, nil
}

// ApplyToLine removes the range from a single line. Lines shorter than the
// range start are left alone. Both ends move forward to a rune boundary so a
// multibyte character is never split.
func (f *ColumnFilter) ApplyToLine(l *buffer.Line) {
	if f.Range.Start >= l.Len() {
		return
	}
	start, end := f.Range.Clamp(l.Len())
	l.Remove(runeBoundary(l.Content, start), runeBoundary(l.Content, end))
}

// Execute applies the filter to every line
func (f *ColumnFilter) Execute(buf *buffer.Buffer) {
	length := buf.FilterLines(f.ApplyToLine)
	logDone(f, buf.LineCount(), length)
}

// Highlight marks the columns that would be removed
func (f *ColumnFilter) Highlight(_ int, text string) []Region {
	if f.Range.Start >= len(text) {
		return nil
	}
	start, end := f.Range.Clamp(len(text))
	return []Region{{Start: runeBoundary(text, start), End: runeBoundary(text, end)}}
}

// runeBoundary moves i forward to the start of the next rune, or to len(text)
func runeBoundary[T ~string | ~[]byte](text T, i int) int {
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}

func (f *ColumnFilter) String() string {
	return fmt.Sprintf("column filter %s", f.Range)
}
