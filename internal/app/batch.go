package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/TimelordUK/lview/internal/buffer"
	"github.com/TimelordUK/lview/internal/command"
	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/event"
	"github.com/TimelordUK/lview/internal/loader"
)

// ErrNoInput is returned when batch mode has no file to read
var ErrNoInput = errors.New("no input file")

// batch drives the same command state and slot as the UI, without a screen
type batch struct {
	ctx   context.Context
	bus   *event.Bus
	slot  *buffer.Slot
	state *command.State
	opts  loader.Options

	pending []string
	output  string
	stdout  io.Writer
	hits    io.Writer

	// set once the final save has been started
	finishing bool
}

// RunBatch loads opts.Path, applies opts.Commands in order and writes the
// result to opts.Output, or to stdout when Output is empty. Search hits are
// printed as "line: text"; they go to stderr when the buffer itself goes to
// stdout.
func RunBatch(ctx context.Context, opts Options, stdout, stderr io.Writer) error {
	if opts.Path == "" {
		return ErrNoInput
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := config.Load(opts.ConfigPath)
	bus := event.NewBus(0)
	b := &batch{
		ctx:     ctx,
		bus:     bus,
		slot:    buffer.NewSlot(nil),
		state:   command.NewState(bus),
		opts:    loaderOptions(cfg),
		pending: opts.Commands,
		output:  opts.Output,
		stdout:  stdout,
		hits:    stdout,
	}
	if opts.Output == "" {
		b.hits = stderr
	}

	loader.Open(ctx, opts.Path, bus, b.opts)
	return b.loop()
}

func (b *batch) loop() error {
	for {
		e, err := b.bus.Next(b.ctx)
		if err != nil {
			return err
		}
		done, err := b.handle(e)
		if done || err != nil {
			return err
		}
	}
}

// handle reacts to one event and reports whether the run is over
func (b *batch) handle(e event.Event) (bool, error) {
	switch e := e.(type) {
	case event.BufferLoadFailed:
		return true, fmt.Errorf("open %s: %w", e.Path, e.Err)

	case event.BufferLoaded:
		log.Printf("loaded %s: %d lines", e.Buffer.Path(), e.Buffer.LineCount())
		b.slot.Install(e.Buffer)
		return b.advance()

	case event.CommandFinished:
		b.slot.Install(e.Buffer)
		if s, ok := e.Command.(*command.Search); ok {
			b.printHits(s, e.Buffer)
		}
		return b.advance()

	case event.BufferClosed:
		b.slot.Install(buffer.New())
		return b.advance()

	case event.GotoLine, event.Zoom:
		log.Printf("ignoring %T in batch mode", e)
		return b.advance()

	case event.SaveRequested:
		return false, b.save(e.Path)

	case event.BufferSaved:
		b.slot.Install(e.Buffer)
		log.Printf("saved %s", e.Path)
		if b.finishing {
			return true, nil
		}
		return b.advance()

	case event.BufferSaveFailed:
		b.slot.Install(e.Buffer)
		return true, fmt.Errorf("save %s: %w", e.Path, e.Err)

	case event.CommandStarted:
		log.Printf("running %s on %d lines", e.Command, e.Lines)
	}
	return false, nil
}

// advance runs the next command, or writes the result when none are left
func (b *batch) advance() (bool, error) {
	if len(b.pending) == 0 {
		return b.finish()
	}
	text := b.pending[0]
	b.pending = b.pending[1:]

	b.state.SetText(text)
	if !b.state.Execute(b.ctx, b.slot) {
		return true, fmt.Errorf("%w: %q", command.ErrParse, text)
	}
	return false, nil
}

func (b *batch) finish() (bool, error) {
	if b.output != "" {
		b.finishing = true
		return false, b.save(b.output)
	}

	w := bufio.NewWriter(b.stdout)
	if err := loader.WriteLines(b.ctx, w, b.slot.Buffer(), nil); err != nil {
		return true, fmt.Errorf("write output: %w", err)
	}
	if err := w.Flush(); err != nil {
		return true, fmt.Errorf("write output: %w", err)
	}
	return true, nil
}

func (b *batch) save(path string) error {
	if path == "" {
		path = b.slot.Buffer().Path()
	}
	buf := b.slot.Take()
	if buf == nil {
		return errors.New("buffer is busy")
	}
	loader.SaveAsync(b.ctx, buf, path, b.bus, b.opts)
	return nil
}

func (b *batch) printHits(s *command.Search, buf *buffer.Buffer) {
	for _, i := range s.Results() {
		fmt.Fprintf(b.hits, "%d: %s\n", i+1, buf.LineText(i))
	}
}
