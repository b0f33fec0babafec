package buffer

import (
	"fmt"
	"log"
	"strings"
)

// Buffer is the in-memory representation of one opened file's lines.
// It is owned by exactly one goroutine at a time; see Slot.
type Buffer struct {
	groups []*LineGroup

	// Cached totals, recomputed after every structural change
	lines  int
	length int

	dirty       bool
	path        string
	codec       Codec
	compression bool
}

// New creates an empty buffer
func New() *Buffer {
	return &Buffer{codec: LZ4{}}
}

// FromText builds a buffer from literal text. Lines are separated by '\n',
// a trailing newline does not start an extra line and a trailing '\r' is
// stripped from each line.
func FromText(text string) *Buffer {
	b := New()
	if text == "" {
		return b
	}
	text = strings.TrimSuffix(text, "\n")
	for _, s := range strings.Split(text, "\n") {
		s = strings.TrimSuffix(s, "\r")
		b.Append(Line{Content: []byte(s), Status: StatusNormal})
	}
	return b
}

// SetCodec replaces the codec used for group compression
func (b *Buffer) SetCodec(c Codec) {
	b.codec = c
}

// SetCompression enables compressing full groups while appending and on
// Compress
func (b *Buffer) SetCompression(on bool) {
	b.compression = on
}

// Compression reports whether group compression is enabled
func (b *Buffer) Compression() bool {
	return b.compression
}

// Path returns the file path the buffer was loaded from, if any
func (b *Buffer) Path() string {
	return b.path
}

// SetPath associates the buffer with a file path
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// Len returns the total byte length including one separator between lines
func (b *Buffer) Len() int {
	return b.length
}

// LineCount returns the number of lines
func (b *Buffer) LineCount() int {
	return b.lines
}

// Dirty reports whether the buffer changed since it was loaded or saved
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkClean clears the dirty flag after a successful save
func (b *Buffer) MarkClean() {
	b.dirty = false
}

// Groups returns the number of line groups
func (b *Buffer) Groups() int {
	return len(b.groups)
}

// Append adds a line at the end. When compression is enabled a group is
// compressed as soon as it fills up.
func (b *Buffer) Append(line Line) {
	var last *LineGroup
	if n := len(b.groups); n > 0 {
		last = b.groups[n-1]
	}
	if last == nil || last.IsFull() {
		if last != nil && b.compression {
			last.Compress(b.codec)
		}
		last = NewLineGroup()
		b.groups = append(b.groups, last)
	}

	if err := last.Push(line, b.codec); err != nil {
		// the last group could not be restored, start a fresh one
		log.Printf("warn: append: %v", err)
		last = NewLineGroup()
		b.groups = append(b.groups, last)
		_ = last.Push(line, b.codec)
	}

	if b.lines > 0 {
		b.length++
	}
	b.length += line.Len()
	b.lines++
}

// locate returns the group holding line i and the index inside it
func (b *Buffer) locate(i int) (*LineGroup, int) {
	if i < 0 || i >= b.lines {
		panic(fmt.Sprintf("buffer: line %d out of range [0,%d)", i, b.lines))
	}
	for _, g := range b.groups {
		n := g.Count()
		if i < n {
			return g, i
		}
		i -= n
	}
	panic(fmt.Sprintf("buffer: line count %d disagrees with groups", b.lines))
}

// Line returns line i, decompressing its group when needed.
// Returns nil when the group cannot be decompressed.
func (b *Buffer) Line(i int) *Line {
	g, j := b.locate(i)
	g.Decompress(b.codec)
	lines := g.Lines()
	if lines == nil {
		return nil
	}
	return &lines[j]
}

// LineText returns the text of line i. Out of range indexes panic.
func (b *Buffer) LineText(i int) string {
	l := b.Line(i)
	if l == nil {
		return ""
	}
	return l.Text()
}

// Each visits every line in order until fn returns false. Groups that were
// compressed are compressed again after their lines have been visited.
func (b *Buffer) Each(fn func(i int, l *Line) bool) error {
	idx := 0
	for gi, g := range b.groups {
		wasCompressed := g.IsCompressed()
		g.Decompress(b.codec)
		lines := g.Lines()
		if lines == nil {
			return fmt.Errorf("group %d: %w", gi, ErrGroupCompressed)
		}

		stop := false
		for j := range lines {
			if !fn(idx, &lines[j]) {
				stop = true
				break
			}
			idx++
		}
		if wasCompressed {
			g.Compress(b.codec)
		}
		if stop {
			return nil
		}
	}
	return nil
}

// DrainLines removes lines [start, end) and returns the new length.
// The range must already be clamped to LineCount.
func (b *Buffer) DrainLines(start, end int) int {
	if start < 0 || start > end || end > b.lines {
		panic(fmt.Sprintf("buffer: drain [%d,%d) out of range [0,%d]", start, end, b.lines))
	}
	return b.rewrite(func(lines []Line, offset int) []Line {
		kept := lines[:0]
		for j := range lines {
			if idx := offset + j; idx >= start && idx < end {
				continue
			}
			kept = append(kept, lines[j])
		}
		return kept
	})
}

// FilterLines applies fn to every line in place and returns the new length
func (b *Buffer) FilterLines(fn func(l *Line)) int {
	return b.rewrite(func(lines []Line, _ int) []Line {
		for j := range lines {
			fn(&lines[j])
		}
		return lines
	})
}

// RetainLines keeps only the lines for which keep returns true and returns
// the new length
func (b *Buffer) RetainLines(keep func(l *Line) bool) int {
	return b.rewrite(func(lines []Line, _ int) []Line {
		kept := lines[:0]
		for j := range lines {
			if keep(&lines[j]) {
				kept = append(kept, lines[j])
			}
		}
		return kept
	})
}

// rewrite runs fn over the lines of every group and repacks the result into
// full groups. Groups that fail to decompress are carried over untouched.
func (b *Buffer) rewrite(fn func(lines []Line, offset int) []Line) int {
	var (
		out     []*LineGroup
		pending []Line
		offset  int
	)
	flush := func() {
		for len(pending) > 0 {
			n := min(len(pending), GroupCapacity)
			chunk := make([]Line, n, GroupCapacity)
			copy(chunk, pending[:n])
			out = append(out, groupOf(chunk))
			pending = pending[n:]
		}
		pending = nil
	}

	for _, g := range b.groups {
		count := g.Count()
		g.Decompress(b.codec)
		if g.IsCompressed() {
			log.Printf("warn: keeping undecodable group of %d lines unchanged", count)
			flush()
			out = append(out, g)
			offset += count
			continue
		}
		pending = append(pending, fn(g.Lines(), offset)...)
		offset += count
	}
	flush()

	b.groups = out
	b.recount()
	b.dirty = true
	return b.length
}

// recount recomputes the cached line count and length from the groups
func (b *Buffer) recount() {
	lines, content := 0, 0
	for _, g := range b.groups {
		lines += g.Count()
		content += g.contentBytes()
	}
	b.lines = lines
	b.length = content
	if lines > 0 {
		b.length += lines - 1
	}
}

// Compress compresses every group when compression is enabled
func (b *Buffer) Compress() {
	if !b.compression {
		return
	}
	for _, g := range b.groups {
		g.Compress(b.codec)
	}
}

// Decompress restores every group
func (b *Buffer) Decompress() {
	for _, g := range b.groups {
		g.Decompress(b.codec)
	}
}

// MaxLineLength returns the longest line among decompressed groups
func (b *Buffer) MaxLineLength() int {
	longest := 0
	for _, g := range b.groups {
		longest = max(longest, g.MaxLineLength())
	}
	return longest
}

// Mem estimates the bytes held by line payloads
func (b *Buffer) Mem() int {
	n := 0
	for _, g := range b.groups {
		n += g.Mem()
	}
	return n
}
