package event

import (
	"context"
	"time"
)

// DefaultCapacity is the queue depth of a bus created with NewBus(0)
const DefaultCapacity = 256

// Bus carries events from any number of senders to the single interactive
// consumer. Ordering is FIFO per sender.
type Bus struct {
	ch chan Event
}

// NewBus creates a bus with the given queue depth
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{ch: make(chan Event, capacity)}
}

// Send queues an event, blocking while the queue is full. Meant for workers.
func (b *Bus) Send(e Event) {
	b.ch <- e
}

// Post queues an event without ever blocking the caller. When the queue is
// full the event is handed to a goroutine and may arrive after events sent
// later.
func (b *Bus) Post(e Event) {
	select {
	case b.ch <- e:
	default:
		go b.Send(e)
	}
}

// Poll drains every event queued right now without blocking
func (b *Bus) Poll() []Event {
	var events []Event
	for {
		select {
		case e := <-b.ch:
			events = append(events, e)
		default:
			return events
		}
	}
}

// Next blocks until an event arrives or ctx is done
func (b *Bus) Next(ctx context.Context) (Event, error) {
	select {
	case e := <-b.ch:
		return e, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Throttle lets at most one tick through per interval
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewThrottle creates a throttle whose first tick is allowed one interval
// after creation
func NewThrottle(interval time.Duration) *Throttle {
	t := &Throttle{interval: interval, now: time.Now}
	t.last = t.now()
	return t
}

// Ready reports whether a tick may be emitted now and, if so, starts a new
// interval
func (t *Throttle) Ready() bool {
	now := t.now()
	if now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
