package progress

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Kind identifies a long running operation
type Kind int

const (
	Filtering Kind = iota
	Searching
	Loading
	Saving
)

func (k Kind) String() string {
	switch k {
	case Filtering:
		return "Filtering"
	case Searching:
		return "Searching"
	case Loading:
		return "Loading"
	case Saving:
		return "Saving"
	}
	return "Working"
}

// Operation is a progress key. Loading and Saving carry the file path.
type Operation struct {
	Kind Kind
	Path string
}

// Label returns the text shown next to the progress bar
func (o Operation) Label() string {
	if o.Path == "" {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s %s", o.Kind, filepath.Base(o.Path))
}

// Progress is the state of one operation
type Progress struct {
	Label   string
	Current int64
	Max     int64
}

// Percent returns completion in [0, 1]
func (p Progress) Percent() float64 {
	if p.Max <= 0 {
		return 0
	}
	if p.Current >= p.Max {
		return 1
	}
	if p.Current <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Max)
}

// Entry pairs an operation with its progress
type Entry struct {
	Op       Operation
	Progress Progress
	seq      int
}

// Tracker holds the operations currently in flight. It is only touched from
// the interactive loop.
type Tracker struct {
	entries map[Operation]*Entry
	seq     int
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[Operation]*Entry)}
}

// Start inserts or resets an operation
func (t *Tracker) Start(op Operation, total int64) {
	t.seq++
	t.entries[op] = &Entry{
		Op:       op,
		Progress: Progress{Label: op.Label(), Max: total},
		seq:      t.seq,
	}
}

// Update records progress, starting the operation if it was not known
func (t *Tracker) Update(op Operation, current, total int64) {
	e, ok := t.entries[op]
	if !ok {
		t.Start(op, total)
		e = t.entries[op]
	}
	e.Progress.Current = current
	e.Progress.Max = total
}

// Finish removes an operation
func (t *Tracker) Finish(op Operation) {
	delete(t.entries, op)
}

// Get returns the progress of op
func (t *Tracker) Get(op Operation) (Progress, bool) {
	e, ok := t.entries[op]
	if !ok {
		return Progress{}, false
	}
	return e.Progress, true
}

// Len returns the number of operations in flight
func (t *Tracker) Len() int {
	return len(t.entries)
}

// Active returns the operations in the order they were started
func (t *Tracker) Active() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
