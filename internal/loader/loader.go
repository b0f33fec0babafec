package loader

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/TimelordUK/lview/internal/buffer"
	"github.com/TimelordUK/lview/internal/event"
	"github.com/TimelordUK/lview/internal/index"
	lviewio "github.com/TimelordUK/lview/internal/io"
)

// DefaultInterval is the minimum wall-clock gap between progress events
const DefaultInterval = 50 * time.Millisecond

// Options tune loading and saving
type Options struct {
	Interval    time.Duration // zero uses DefaultInterval
	Compression bool
	Codec       buffer.Codec // nil uses buffer.LZ4
}

func (o Options) interval() time.Duration {
	if o.Interval <= 0 {
		return DefaultInterval
	}
	return o.Interval
}

// IsGzip reports whether path names a gzip file, by extension
func IsGzip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// countingReader counts bytes pulled from the underlying reader
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Load reads the file at path into a new buffer, emitting
// BufferLoadingStarted, throttled BufferLoading events and a final
// BufferLoading with Current == Total. The buffer is returned only once fully
// populated.
func Load(ctx context.Context, path string, bus *event.Bus, opts Options) (*buffer.Buffer, error) {
	file, err := lviewio.OpenMapped(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	total := file.Size()
	bus.Send(event.BufferLoadingStarted{Path: path, Total: total})

	counter := &countingReader{r: file.Reader()}
	var src io.Reader = counter
	if IsGzip(path) && total > 0 {
		gz, err := gzip.NewReader(counter)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer gz.Close()
		src = gz
	}

	buf := buffer.New()
	buf.SetPath(file.Path())
	buf.SetCompression(opts.Compression)
	if opts.Codec != nil {
		buf.SetCodec(opts.Codec)
	}

	throttle := event.NewThrottle(opts.interval())
	var last int64
	err = index.Scan(src, func(line []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf.Append(buffer.NewLine(bytes.ToValidUTF8(line, []byte("\uFFFD")), buffer.StatusUnmodified))

		if throttle.Ready() {
			// the reader runs ahead of the lines handed out, clamp to total
			last = min(counter.n, total)
			bus.Send(event.BufferLoading{Path: path, Current: last, Total: total})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	bus.Send(event.BufferLoading{Path: path, Current: total, Total: total})
	return buf, nil
}

// Open loads path on its own goroutine and delivers the result as
// BufferLoaded or BufferLoadFailed.
func Open(ctx context.Context, path string, bus *event.Bus, opts Options) {
	go func() {
		buf, err := Load(ctx, path, bus, opts)
		if err != nil {
			log.Printf("warn: load failed: %v", err)
			bus.Send(event.BufferLoadFailed{Path: path, Err: err})
			return
		}
		bus.Send(event.BufferLoaded{Buffer: buf})
	}()
}
