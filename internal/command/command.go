// Package command parses the text typed into the command prompt and turns it
// into operations on a buffer.
//
// Threaded commands (line filter, column filter, line drop, search) run
// against a buffer on a worker goroutine. Direct commands (goto, close, zoom,
// write) are turned into events straight away.
package command

import (
	"errors"
	"fmt"

	"github.com/TimelordUK/lview/internal/buffer"
)

// ErrParse is wrapped by every parse failure
var ErrParse = errors.New("cannot parse command")

func parseError(kind, input, reason string) error {
	return fmt.Errorf("%w: %s %q: %s", ErrParse, kind, input, reason)
}

// Region is a highlighted byte range [Start, End) of a line
type Region struct {
	Start int
	End   int
}

// Command is an operation that runs against a buffer
type Command interface {
	// Execute mutates or scans buf. It runs on a worker goroutine that owns buf.
	Execute(buf *buffer.Buffer)

	// Highlight returns the parts of a line the command would affect, used to
	// preview a pending command.
	Highlight(index int, text string) []Region

	fmt.Stringer
}

// Parse resolves text against the threaded command grammars in priority
// order: line filter, column filter, line drop, search.
func Parse(text string) (Command, error) {
	if f, err := ParseLineFilter(text); err == nil {
		return f, nil
	}
	if f, err := ParseColumnFilter(text); err == nil {
		return f, nil
	}
	if d, err := ParseLineDrop(text); err == nil {
		return d, nil
	}
	if s, err := ParseSearch(text); err == nil {
		return s, nil
	}
	return nil, parseError("command", text, "no grammar matches")
}

func wholeLine(text string) []Region {
	return []Region{{Start: 0, End: len(text)}}
}
