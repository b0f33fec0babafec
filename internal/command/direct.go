package command

import (
	"strconv"
	"strings"

	"github.com/TimelordUK/lview/internal/event"
)

// ParseDirect resolves commands that are dispatched as events instead of
// running against the buffer:
//
//	:<n>          go to line n
//	close         close the buffer
//	zoom <size>   change the font size
//	w [path]      save, optionally to another path
func ParseDirect(text string) (event.Event, error) {
	switch {
	case strings.HasPrefix(text, ":"):
		n, err := parseIndex(text[1:])
		if err != nil {
			return nil, parseError("goto", text, "expected a line number")
		}
		return event.GotoLine{Line: n}, nil

	case text == "close":
		return event.BufferClosed{}, nil

	case strings.HasPrefix(text, "zoom "):
		size, err := strconv.ParseFloat(strings.TrimSpace(text[len("zoom "):]), 64)
		if err != nil || size <= 0 {
			return nil, parseError("zoom", text, "expected a positive size")
		}
		return event.Zoom{Size: size}, nil

	case text == "w":
		return event.SaveRequested{}, nil

	case strings.HasPrefix(text, "w "):
		path := strings.TrimSpace(text[len("w "):])
		return event.SaveRequested{Path: path}, nil
	}
	return nil, parseError("direct command", text, "unknown")
}
