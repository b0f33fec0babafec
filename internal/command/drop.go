package command

import (
	"fmt"
	"strings"

	"github.com/TimelordUK/lview/internal/buffer"
)

const dropPrefix = "l "

// LineDrop removes a range of lines. Offsets are 0-based, so "l ..2" drops
// the first two lines.
type LineDrop struct {
	Range Range
}

// ParseLineDrop parses "l <range>"
func ParseLineDrop(text string) (*LineDrop, error) {
	rest, ok := strings.CutPrefix(text, dropPrefix)
	if !ok {
		return nil, parseError("line drop", text, "missing \"l \" prefix")
	}
	r, err := ParseRange(rest)
	if err != nil {
		return nil, err
	}
	return &LineDrop{Range: r}, nil
}

// Execute drains the range clamped to the current line count
func (d *LineDrop) Execute(buf *buffer.Buffer) {
	start, end := d.Range.Clamp(buf.LineCount())
	length := buf.DrainLines(start, end)
	logDone(d, buf.LineCount(), length)
}

// Highlight marks lines inside the range
func (d *LineDrop) Highlight(index int, text string) []Region {
	if index < d.Range.Start || (d.Range.End != nil && index >= *d.Range.End) {
		return nil
	}
	return wholeLine(text)
}

func (d *LineDrop) String() string {
	return fmt.Sprintf("line drop %s", d.Range)
}
