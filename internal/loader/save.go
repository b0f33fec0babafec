package loader

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/TimelordUK/lview/internal/buffer"
	"github.com/TimelordUK/lview/internal/event"
)

// WriteLines writes every line of buf to w, each terminated by "\n".
// progress is called with the number of content bytes written so far.
func WriteLines(ctx context.Context, w io.Writer, buf *buffer.Buffer, progress func(written int64)) error {
	var (
		written int64
		werr    error
	)
	err := buf.Each(func(_ int, l *buffer.Line) bool {
		if werr = ctx.Err(); werr != nil {
			return false
		}
		if _, werr = w.Write(l.Content); werr != nil {
			return false
		}
		if _, werr = w.Write([]byte{'\n'}); werr != nil {
			return false
		}
		written += int64(l.Len()) + 1
		if progress != nil {
			progress(written)
		}
		return true
	})
	if werr != nil {
		return werr
	}
	return err
}

// Save writes buf to path, gzip-compressed when the path ends in ".gz".
// It emits BufferSavingStarted, throttled BufferSaving events and finally
// BufferSaved or BufferSaveFailed, both of which hand buf back. A partially
// written file is left in place on failure.
func Save(ctx context.Context, buf *buffer.Buffer, path string, bus *event.Bus, opts Options) error {
	total := int64(buf.Len())
	bus.Send(event.BufferSavingStarted{Path: path, Total: total})

	if err := save(ctx, buf, path, bus, opts, total); err != nil {
		log.Printf("warn: save failed: %v", err)
		bus.Send(event.BufferSaveFailed{Path: path, Err: err, Buffer: buf})
		return err
	}

	buf.MarkClean()
	bus.Send(event.BufferSaved{Path: path, Buffer: buf})
	return nil
}

// SaveAsync runs Save on its own goroutine. The caller gives up buf until
// BufferSaved or BufferSaveFailed arrives.
func SaveAsync(ctx context.Context, buf *buffer.Buffer, path string, bus *event.Bus, opts Options) {
	go func() {
		_ = Save(ctx, buf, path, bus, opts)
	}()
}

func save(ctx context.Context, buf *buffer.Buffer, path string, bus *event.Bus, opts Options, total int64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	// Write pipeline: file -> buffer -> gzip
	bw := bufio.NewWriter(file)
	var w io.Writer = bw
	var gz *gzip.Writer
	if IsGzip(path) {
		gz = gzip.NewWriter(bw)
		w = gz
	}

	throttle := event.NewThrottle(opts.interval())
	err = WriteLines(ctx, w, buf, func(written int64) {
		if throttle.Ready() {
			bus.Send(event.BufferSaving{Path: path, Current: min(written, total), Total: total})
		}
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("close gzip %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	bus.Send(event.BufferSaving{Path: path, Current: total, Total: total})
	return nil
}
