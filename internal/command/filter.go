package command

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/TimelordUK/lview/internal/buffer"
)

const filterPrefix = "filter "

// clause is one substring test of a line filter
type clause struct {
	literal []byte
	negated bool
	raw     []byte // the clause as typed, including the '!'
}

// accepts reports whether a line satisfies the clause. A negated clause "!X"
// rejects a line only when it contains X and does not contain "!X" itself.
func (c clause) accepts(content []byte) bool {
	if !c.negated {
		return bytes.Contains(content, c.literal)
	}
	return !(bytes.Contains(content, c.literal) && !bytes.Contains(content, c.raw))
}

// LineFilter keeps only the lines accepted by every clause
type LineFilter struct {
	clauses []clause
}

// ParseLineFilter parses "filter <e1>&<e2>&..."
func ParseLineFilter(text string) (*LineFilter, error) {
	rest, ok := strings.CutPrefix(text, filterPrefix)
	if !ok {
		return nil, parseError("line filter", text, "missing \"filter \" prefix")
	}
	if rest == "" {
		return nil, parseError("line filter", text, "no expression")
	}

	var clauses []clause
	for _, expr := range strings.Split(rest, "&") {
		c := clause{raw: []byte(expr), literal: []byte(expr)}
		if lit, neg := strings.CutPrefix(expr, "!"); neg {
			c.negated = true
			c.literal = []byte(lit)
		}
		clauses = append(clauses, c)
	}
	return &LineFilter{clauses: clauses}, nil
}

// Accepts reports whether a line passes every clause
func (f *LineFilter) Accepts(content []byte) bool {
	for _, c := range f.clauses {
		if !c.accepts(content) {
			return false
		}
	}
	return true
}

// Execute drops every line that is not accepted
func (f *LineFilter) Execute(buf *buffer.Buffer) {
	length := buf.RetainLines(func(l *buffer.Line) bool {
		return f.Accepts(l.Content)
	})
	logDone(f, buf.LineCount(), length)
}

// Highlight marks the lines that would be dropped
func (f *LineFilter) Highlight(_ int, text string) []Region {
	if f.Accepts([]byte(text)) {
		return nil
	}
	return wholeLine(text)
}

func (f *LineFilter) String() string {
	exprs := make([]string, len(f.clauses))
	for i, c := range f.clauses {
		exprs[i] = string(c.raw)
	}
	return fmt.Sprintf("line filter %s", strings.Join(exprs, "&"))
}
