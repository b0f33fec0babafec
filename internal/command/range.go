package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an interval starting at Start and ending before End, or unbounded
// when End is nil
type Range struct {
	Start int
	End   *int
}

// NewRange validates start <= end
func NewRange(start int, end *int) (Range, error) {
	if start < 0 {
		return Range{}, fmt.Errorf("%w: negative start %d", ErrParse, start)
	}
	if end != nil && start > *end {
		return Range{}, fmt.Errorf("%w: start %d after end %d", ErrParse, start, *end)
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange parses "a..b", "..b" and "a..". At least one bound is required.
func ParseRange(s string) (Range, error) {
	startStr, endStr, ok := strings.Cut(s, "..")
	if !ok {
		return Range{}, parseError("range", s, "missing ..")
	}
	if startStr == "" && endStr == "" {
		return Range{}, parseError("range", s, "no bounds")
	}

	start := 0
	if startStr != "" {
		n, err := parseIndex(startStr)
		if err != nil {
			return Range{}, parseError("range", s, err.Error())
		}
		start = n
	}

	var end *int
	if endStr != "" {
		n, err := parseIndex(endStr)
		if err != nil {
			return Range{}, parseError("range", s, err.Error())
		}
		end = &n
	}

	if end != nil && start > *end {
		return Range{}, parseError("range", s, "start after end")
	}
	return Range{Start: start, End: end}, nil
}

// parseIndex accepts plain decimal digits only
func parseIndex(s string) (int, error) {
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%q is not a number", s)
		}
	}
	return strconv.Atoi(s)
}

// Clamp returns the concrete [start, end) for a sequence of length n.
// start may equal end when nothing is covered.
func (r Range) Clamp(n int) (int, int) {
	end := n
	if r.End != nil && *r.End < n {
		end = *r.End
	}
	start := min(r.Start, end)
	return start, end
}

func (r Range) String() string {
	if r.End == nil {
		if r.Start == 0 {
			return ".."
		}
		return fmt.Sprintf("%d..", r.Start)
	}
	if r.Start == 0 {
		return fmt.Sprintf("..%d", *r.End)
	}
	return fmt.Sprintf("%d..%d", r.Start, *r.End)
}
