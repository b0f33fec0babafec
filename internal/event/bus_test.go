package event

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBus_PollDrainsInOrder(t *testing.T) {
	b := NewBus(8)
	if got := b.Poll(); len(got) != 0 {
		t.Fatalf("Poll() on empty bus = %v, want nothing", got)
	}

	b.Send(BufferLoadingStarted{Path: "a", Total: 10})
	b.Send(BufferLoading{Path: "a", Current: 5, Total: 10})
	b.Post(GotoLine{Line: 3})

	got := b.Poll()
	if len(got) != 3 {
		t.Fatalf("Poll() returned %d events, want 3", len(got))
	}
	if _, ok := got[0].(BufferLoadingStarted); !ok {
		t.Fatalf("event 0 = %T, want BufferLoadingStarted", got[0])
	}
	if p, ok := got[1].(BufferLoading); !ok || p.Current != 5 {
		t.Fatalf("event 1 = %#v, want BufferLoading{Current: 5}", got[1])
	}
	if g, ok := got[2].(GotoLine); !ok || g.Line != 3 {
		t.Fatalf("event 2 = %#v, want GotoLine{3}", got[2])
	}
	if again := b.Poll(); len(again) != 0 {
		t.Fatalf("second Poll() = %v, want nothing", again)
	}
}

func TestBus_PostNeverBlocks(t *testing.T) {
	b := NewBus(1)
	b.Post(BufferClosed{})

	done := make(chan struct{})
	go func() {
		b.Post(BufferClosed{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Post blocked on a full bus")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 2; i++ {
		if _, err := b.Next(ctx); err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
	}
}

func TestBus_NextHonoursContext(t *testing.T) {
	b := NewBus(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Next() error = %v, want context.Canceled", err)
	}
}

func TestThrottle(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	th := &Throttle{interval: 50 * time.Millisecond, last: start, now: func() time.Time { return now }}

	tests := []struct {
		advance time.Duration
		want    bool
	}{
		{10 * time.Millisecond, false},
		{40 * time.Millisecond, true},
		{49 * time.Millisecond, false},
		{1 * time.Millisecond, true},
		{200 * time.Millisecond, true},
	}
	for i, tt := range tests {
		now = now.Add(tt.advance)
		if got := th.Ready(); got != tt.want {
			t.Fatalf("step %d: Ready() = %v, want %v", i, got, tt.want)
		}
	}
}
