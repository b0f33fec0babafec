package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"
)

// GroupCapacity is the maximum number of lines held by one group
const GroupCapacity = 1000

// ErrGroupCompressed is returned when a group cannot be brought back to its
// decompressed form
var ErrGroupCompressed = errors.New("line group is compressed")

// groupState is either *decompressed or *compressed, never both
type groupState interface {
	isGroupState()
}

type decompressed struct {
	lines []Line
}

type compressed struct {
	blob     []byte
	statuses []Status
	content  int // sum of line lengths, separators excluded
}

func (*decompressed) isGroupState() {}
func (*compressed) isGroupState()   {}

// LineGroup is a bounded batch of lines that can be compressed as a unit
type LineGroup struct {
	state groupState
}

// NewLineGroup creates an empty group with reserved capacity
func NewLineGroup() *LineGroup {
	return &LineGroup{state: &decompressed{lines: make([]Line, 0, GroupCapacity)}}
}

func groupOf(lines []Line) *LineGroup {
	return &LineGroup{state: &decompressed{lines: lines}}
}

// Push appends a line. A compressed group is decompressed first and its
// compressed form discarded.
func (g *LineGroup) Push(line Line, codec Codec) error {
	g.Decompress(codec)
	d, ok := g.state.(*decompressed)
	if !ok {
		return fmt.Errorf("push: %w", ErrGroupCompressed)
	}
	d.lines = append(d.lines, line)
	return nil
}

// IsFull reports whether the group reached GroupCapacity
func (g *LineGroup) IsFull() bool {
	return g.Count() >= GroupCapacity
}

// IsCompressed reports whether the group currently holds a compressed blob
func (g *LineGroup) IsCompressed() bool {
	_, ok := g.state.(*compressed)
	return ok
}

// Count returns the number of lines the group encodes in either state
func (g *LineGroup) Count() int {
	switch s := g.state.(type) {
	case *decompressed:
		return len(s.lines)
	case *compressed:
		return len(s.statuses)
	}
	return 0
}

// Lines returns the live lines, nil when compressed
func (g *LineGroup) Lines() []Line {
	if d, ok := g.state.(*decompressed); ok {
		return d.lines
	}
	return nil
}

// Compress replaces the lines with a single compressed blob.
// On codec failure the group stays decompressed.
func (g *LineGroup) Compress(codec Codec) {
	d, ok := g.state.(*decompressed)
	if !ok || len(d.lines) == 0 {
		return
	}

	joined := make([]byte, 0, g.Len())
	for i := range d.lines {
		if i > 0 {
			joined = append(joined, '\n')
		}
		joined = append(joined, d.lines[i].Content...)
	}

	blob, err := codec.Compress(joined)
	if err != nil {
		log.Printf("warn: compress line group (%d lines): %v", len(d.lines), err)
		return
	}
	statuses := make([]Status, len(d.lines))
	for i := range d.lines {
		statuses[i] = d.lines[i].Status
	}
	g.state = &compressed{blob: blob, statuses: statuses, content: len(joined) - len(d.lines) + 1}
}

// Decompress restores the lines from the compressed blob.
// On any failure the compressed blob is kept.
func (g *LineGroup) Decompress(codec Codec) {
	c, ok := g.state.(*compressed)
	if !ok {
		return
	}

	data, err := codec.Decompress(c.blob)
	if err != nil {
		log.Printf("warn: decompress line group: %v", err)
		return
	}
	if !utf8.Valid(data) {
		log.Printf("warn: decompress line group: invalid utf-8")
		return
	}

	parts := bytes.Split(data, []byte{'\n'})
	if len(parts) != len(c.statuses) {
		log.Printf("warn: decompress line group: got %d lines, want %d", len(parts), len(c.statuses))
		return
	}

	lines := make([]Line, len(parts), max(len(parts), GroupCapacity))
	for i, p := range parts {
		lines[i] = Line{Content: p[:len(p):len(p)], Status: c.statuses[i]}
	}
	g.state = &decompressed{lines: lines}
}

// Len returns the byte length of the live lines including separators.
// A compressed group reports 0.
func (g *LineGroup) Len() int {
	d, ok := g.state.(*decompressed)
	if !ok || len(d.lines) == 0 {
		return 0
	}
	n := len(d.lines) - 1
	for i := range d.lines {
		n += d.lines[i].Len()
	}
	return n
}

// contentBytes returns the sum of line lengths in either state
func (g *LineGroup) contentBytes() int {
	switch s := g.state.(type) {
	case *decompressed:
		n := 0
		for i := range s.lines {
			n += s.lines[i].Len()
		}
		return n
	case *compressed:
		return s.content
	}
	return 0
}

// MaxLineLength returns the longest live line, 0 when compressed
func (g *LineGroup) MaxLineLength() int {
	longest := 0
	for _, l := range g.Lines() {
		if len(l.Content) > longest {
			longest = len(l.Content)
		}
	}
	return longest
}

// Mem estimates the bytes held by the group's payload
func (g *LineGroup) Mem() int {
	switch s := g.state.(type) {
	case *decompressed:
		n := 0
		for i := range s.lines {
			n += cap(s.lines[i].Content)
		}
		return n
	case *compressed:
		return len(s.blob)
	}
	return 0
}
