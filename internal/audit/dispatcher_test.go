package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

// blockingSink holds every delivery until released, to saturate the
// dispatcher buffer deterministically.
type blockingSink struct {
	release chan struct{}
	seen    chan Event
}

func newBlockingSink() *blockingSink {
	return &blockingSink{
		release: make(chan struct{}),
		seen:    make(chan Event, 64),
	}
}

func (s *blockingSink) Emit(_ context.Context, event Event) {
	<-s.release
	s.seen <- event
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := NewChannelSink(16)
	d := NewDispatcher(DispatcherConfig{BufferSize: 16}, sink)
	defer d.Close()

	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		d.Emit(ctx, Event{EventType: name})
	}

	for _, want := range []string{"first", "second", "third"} {
		select {
		case event := <-sink.Events():
			if event.EventType != want {
				t.Errorf("event = %q, want %q", event.EventType, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := newBlockingSink()
	d := NewDispatcher(DispatcherConfig{BufferSize: 1, DropIfFull: true}, sink)

	ctx := context.Background()
	// First event is picked up by the run loop and blocks in the sink;
	// backlog then fills the single buffer slot, everything after drops.
	for i := 0; i < 10; i++ {
		d.Emit(ctx, Event{EventType: "burst"})
	}

	deadline := time.After(time.Second)
	for d.Dropped() == 0 {
		select {
		case <-deadline:
			t.Fatal("no events dropped with saturated buffer")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(sink.release)
	d.Close()
}

func TestDispatcherCloseDrainsBuffer(t *testing.T) {
	sink := NewChannelSink(16)
	d := NewDispatcher(DispatcherConfig{BufferSize: 16}, sink)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		d.Emit(ctx, Event{EventType: "queued"})
	}

	d.Close()

	delivered := 0
	for {
		select {
		case <-sink.Events():
			delivered++
		default:
			if delivered != 5 {
				t.Errorf("delivered = %d, want 5", delivered)
			}
			return
		}
	}
}

func TestDispatcherEmitAfterClose(t *testing.T) {
	sink := NewChannelSink(4)
	d := NewDispatcher(DispatcherConfig{BufferSize: 4}, sink)
	d.Close()
	d.Close() // idempotent

	d.Emit(context.Background(), Event{EventType: "late"})

	select {
	case event := <-sink.Events():
		t.Errorf("event %q delivered after close", event.EventType)
	default:
	}
}

func TestDispatcherConcurrentEmit(t *testing.T) {
	sink := NewChannelSink(1024)
	d := NewDispatcher(DispatcherConfig{BufferSize: 1024}, sink)

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				d.Emit(context.Background(), Event{EventType: "concurrent"})
			}
		}()
	}
	wg.Wait()
	d.Close()

	delivered := 0
	for {
		select {
		case <-sink.Events():
			delivered++
		default:
			if delivered != workers*perWorker {
				t.Errorf("delivered = %d, want %d", delivered, workers*perWorker)
			}
			return
		}
	}
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{
		EventType:  "login_success",
		Identifier: "user@example.com",
		Success:    true,
	})
	sink.Emit(context.Background(), Event{
		EventType: "login_failure",
		Error:     "invalid credentials",
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}

	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if first.EventType != "login_success" || !first.Success {
		t.Errorf("first = %+v", first)
	}
	if strings.Contains(lines[0], "password") {
		t.Error("audit line leaks password-like content")
	}
}
