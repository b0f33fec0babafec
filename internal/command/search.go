package command

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/TimelordUK/lview/internal/buffer"
)

const searchPrefix = "s "

// Search records the lines containing a pattern and cycles through them.
// It never mutates the buffer.
type Search struct {
	pattern string
	results []int
	current int
}

// ParseSearch parses "s <pattern>"
func ParseSearch(text string) (*Search, error) {
	pattern, ok := strings.CutPrefix(text, searchPrefix)
	if !ok {
		return nil, parseError("search", text, "missing \"s \" prefix")
	}
	if pattern == "" {
		return nil, parseError("search", text, "empty pattern")
	}
	return &Search{pattern: pattern}, nil
}

// Init scans buf and records, in order, the index of every line containing
// the pattern. The selection is reset to the first result.
func (s *Search) Init(buf *buffer.Buffer) {
	needle := []byte(s.pattern)
	s.results = s.results[:0]
	s.current = 0
	err := buf.Each(func(i int, l *buffer.Line) bool {
		if bytes.Contains(l.Content, needle) {
			s.results = append(s.results, i)
		}
		return true
	})
	if err != nil {
		log.Printf("warn: search %q: %v", s.pattern, err)
	}
}

// Execute is Init, so a search can be scheduled like any other command
func (s *Search) Execute(buf *buffer.Buffer) {
	s.Init(buf)
	log.Printf("%s: %d results", s, len(s.results))
}

// Pattern returns the searched text
func (s *Search) Pattern() string {
	return s.pattern
}

// ResultCount returns the number of matching lines
func (s *Search) ResultCount() int {
	return len(s.results)
}

// HasResults reports whether any line matched
func (s *Search) HasResults() bool {
	return len(s.results) > 0
}

// Results returns the matching line indexes in buffer order
func (s *Search) Results() []int {
	return s.results
}

// Line returns the selected line index, or -1 without results
func (s *Search) Line() int {
	if !s.HasResults() {
		return -1
	}
	return s.results[s.current]
}

// Next selects the following result, wrapping to the first
func (s *Search) Next() int {
	if !s.HasResults() {
		return -1
	}
	s.current = (s.current + 1) % len(s.results)
	return s.results[s.current]
}

// Prev selects the previous result, wrapping to the last
func (s *Search) Prev() int {
	if !s.HasResults() {
		return -1
	}
	s.current = (s.current - 1 + len(s.results)) % len(s.results)
	return s.results[s.current]
}

// Highlight marks every occurrence of the pattern
func (s *Search) Highlight(_ int, text string) []Region {
	if s.pattern == "" {
		return nil
	}
	var regions []Region
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], s.pattern)
		if i < 0 {
			break
		}
		start := off + i
		regions = append(regions, Region{Start: start, End: start + len(s.pattern)})
		off = start + len(s.pattern)
	}
	return regions
}

func (s *Search) String() string {
	return fmt.Sprintf("search %q", s.pattern)
}
