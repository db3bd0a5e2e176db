package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

type recordingNotifier struct {
	mu       sync.Mutex
	byRoom   map[string][]string
	received chan struct{}
}

func newRecordingNotifier(capacity int) *recordingNotifier {
	return &recordingNotifier{
		byRoom:   make(map[string][]string),
		received: make(chan struct{}, capacity),
	}
}

func (n *recordingNotifier) Publish(room string, notification domain.Notification) {
	n.mu.Lock()
	n.byRoom[room] = append(n.byRoom[room], notification.Message)
	n.mu.Unlock()
	n.received <- struct{}{}
}

func (n *recordingNotifier) messages(room string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.byRoom[room]...)
}

func waitFor(t *testing.T, n *recordingNotifier, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-n.received:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notification %d of %d", i+1, count)
		}
	}
}

func TestDispatcher_DeliversToNotifier(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := newRecordingNotifier(8)
	d := NewDispatcher(4, notifier, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue("user-1", domain.Notification{Message: "hello"})
	waitFor(t, notifier, 1)

	got := notifier.messages("user-1")
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestDispatcher_PreservesOrderPerRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const perRoom = 20
	rooms := []string{"user-a", "user-b", "user-c"}

	notifier := newRecordingNotifier(perRoom * len(rooms))
	d := NewDispatcher(4, notifier, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < perRoom; i++ {
		for _, room := range rooms {
			d.Enqueue(room, domain.Notification{Message: fmt.Sprintf("%s-%d", room, i)})
		}
	}
	waitFor(t, notifier, perRoom*len(rooms))

	// Sharding by room pins each room to one worker, so within a room the
	// publish order matches the enqueue order.
	for _, room := range rooms {
		got := notifier.messages(room)
		if len(got) != perRoom {
			t.Fatalf("room %s: got %d messages, want %d", room, len(got), perRoom)
		}
		for i, msg := range got {
			if want := fmt.Sprintf("%s-%d", room, i); msg != want {
				t.Fatalf("room %s position %d: got %q, want %q", room, i, msg, want)
			}
		}
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingNotifier(1), zerolog.Nop())

	for _, room := range []string{"user-1", "user-2", "another-room", ""} {
		first := d.shardIndex(room)
		if first < 0 || first >= 4 {
			t.Fatalf("shard index %d out of range for %q", first, room)
		}
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(room); got != first {
				t.Fatalf("shard index for %q not stable: %d vs %d", room, got, first)
			}
		}
	}
}

func TestDispatcher_EnqueueDoesNotBlockWhenStopped(t *testing.T) {
	// Workers never started: shard buffers fill up and further enqueues
	// must drop instead of blocking the caller.
	notifier := newRecordingNotifier(1)
	d := NewDispatcher(1, notifier, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+50; i++ {
			d.Enqueue("user-1", domain.Notification{Message: "flood"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("enqueue blocked on a full queue")
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingNotifier(1), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
