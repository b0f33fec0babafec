package buffer

// Status tracks the lifecycle of a line relative to its source file
type Status int

const (
	StatusNone Status = iota
	StatusNormal
	StatusUnmodified
	StatusDirty
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusUnmodified:
		return "unmodified"
	case StatusDirty:
		return "dirty"
	default:
		return "none"
	}
}

// Line is a single text record
type Line struct {
	Content []byte
	Status  Status
}

// NewLine creates a line that owns a copy of content
func NewLine(content []byte, status Status) Line {
	owned := make([]byte, len(content))
	copy(owned, content)
	return Line{Content: owned, Status: status}
}

// Len returns the byte length of the line
func (l *Line) Len() int {
	return len(l.Content)
}

// Text returns the line content as a string
func (l *Line) Text() string {
	return string(l.Content)
}

// Remove drains the byte range [start, end) from the line.
// The range must lie within the line.
func (l *Line) Remove(start, end int) {
	if start == end {
		return
	}
	l.Content = append(l.Content[:start], l.Content[end:]...)
	l.touch()
}

// Truncate shortens the line to n bytes
func (l *Line) Truncate(n int) {
	if n >= len(l.Content) {
		return
	}
	l.Content = l.Content[:n]
	l.touch()
}

func (l *Line) touch() {
	if l.Status != StatusNone {
		l.Status = StatusDirty
	}
}
