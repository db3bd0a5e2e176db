package realtime

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

func drain(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case env := <-c.Send:
		return env
	default:
		t.Fatalf("expected an envelope on the send queue")
		return Envelope{}
	}
}

func TestHub_Publish_NoRoomIsSilentDrop(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	// Must not panic or create the room as a side effect.
	hub.Publish("user-1", domain.Notification{Message: "hello"})

	if hub.room("user-1") != nil {
		t.Fatalf("publish must not create rooms")
	}
}

func TestHub_Publish_DeliversToJoinedClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := NewClient("user-1", "sess-1", 8)
	hub.GetOrCreateRoom("user-1").Join(client)

	task := &domain.Task{ID: "task-1", Title: "Ship it"}
	hub.Publish("user-1", domain.Notification{Message: "New task assigned: Ship it", Task: task})

	env := drain(t, client)
	if env.Type != TypeNewTask {
		t.Fatalf("expected %s envelope, got %s", TypeNewTask, env.Type)
	}

	var payload domain.Notification
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Message != "New task assigned: Ship it" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
	if payload.Task == nil || payload.Task.ID != "task-1" {
		t.Fatalf("expected payload to carry the task")
	}

	// Exactly once: nothing else queued.
	select {
	case extra := <-client.Send:
		t.Fatalf("unexpected extra envelope %+v", extra)
	default:
	}
}

func TestHub_Publish_FanoutToAllSessions(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	room := hub.GetOrCreateRoom("user-1")

	a := NewClient("user-1", "sess-a", 8)
	b := NewClient("user-1", "sess-b", 8)
	room.Join(a)
	room.Join(b)

	hub.Publish("user-1", domain.Notification{Message: "both tabs"})

	for _, c := range []*Client{a, b} {
		env := drain(t, c)
		if env.Type != TypeNewTask {
			t.Fatalf("session %s: expected %s, got %s", c.SessionID, TypeNewTask, env.Type)
		}
	}
}

func TestHub_Publish_AfterLeaveStopsDelivery(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	room := hub.GetOrCreateRoom("user-1")
	client := NewClient("user-1", "sess-1", 8)
	room.Join(client)
	room.Leave("sess-1")

	hub.Publish("user-1", domain.Notification{Message: "gone"})

	select {
	case env := <-client.Send:
		t.Fatalf("unexpected delivery after leave: %+v", env)
	default:
	}
}

func TestRoom_Broadcast_DropsOnFullQueue(t *testing.T) {
	room := NewRoom("user-1", zerolog.Nop())
	slow := NewClient("user-1", "sess-slow", 2)
	fast := NewClient("user-1", "sess-fast", 16)
	room.Join(slow)
	room.Join(fast)

	for i := 0; i < 5; i++ {
		env, err := NewDataEnvelope(TypeNewTask, domain.Notification{Message: fmt.Sprintf("msg-%d", i)})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		delivered := room.Broadcast(env)
		if i < 2 && delivered != 2 {
			t.Fatalf("broadcast %d: expected 2 deliveries, got %d", i, delivered)
		}
		if i >= 2 && delivered != 1 {
			t.Fatalf("broadcast %d: expected slow member to be skipped, got %d", i, delivered)
		}
	}

	if got := len(slow.Send); got != 2 {
		t.Fatalf("slow queue holds %d, want 2", got)
	}
	if got := len(fast.Send); got != 5 {
		t.Fatalf("fast queue holds %d, want 5", got)
	}
}

func TestRoom_Broadcast_PreservesOrderPerConnection(t *testing.T) {
	room := NewRoom("user-1", zerolog.Nop())
	client := NewClient("user-1", "sess-1", 16)
	room.Join(client)

	const n = 10
	for i := 0; i < n; i++ {
		env, err := NewDataEnvelope(TypeNewTask, domain.Notification{Message: fmt.Sprintf("msg-%d", i)})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		room.Broadcast(env)
	}

	for i := 0; i < n; i++ {
		env := <-client.Send
		var payload domain.Notification
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if want := fmt.Sprintf("msg-%d", i); payload.Message != want {
			t.Fatalf("position %d: got %q, want %q", i, payload.Message, want)
		}
	}
}

func TestRoom_Broadcast_SkipsClosedClient(t *testing.T) {
	room := NewRoom("user-1", zerolog.Nop())
	client := NewClient("user-1", "sess-1", 8)
	room.Join(client)
	client.Close()

	env, err := NewDataEnvelope(TypeNewTask, domain.Notification{Message: "late"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if delivered := room.Broadcast(env); delivered != 0 {
		t.Fatalf("expected 0 deliveries to a closed client, got %d", delivered)
	}
}

func TestRoom_JoinLeaveConcurrentWithBroadcast(t *testing.T) {
	room := NewRoom("user-1", zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			c := NewClient("user-1", fmt.Sprintf("sess-%d", i), 1)
			room.Join(c)
			room.Leave(c.SessionID)
		}
	}()

	env, err := NewDataEnvelope(TypeNewTask, domain.Notification{Message: "racing"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for i := 0; i < 200; i++ {
		room.Broadcast(env)
	}
	<-done

	if room.Len() != 0 {
		t.Fatalf("expected empty room, got %d members", room.Len())
	}
}

func TestClient_CloseIdempotent(t *testing.T) {
	c := NewClient("user-1", "sess-1", 4)
	c.Close()
	c.Close()

	select {
	case <-c.Done():
	default:
		t.Fatalf("done channel should be closed")
	}
}

func TestEnvelope_Validate(t *testing.T) {
	cases := []struct {
		name    string
		env     Envelope
		wantErr bool
	}{
		{"valid join", Envelope{Type: TypeJoinRoom, Room: "user-1"}, false},
		{"join without room", Envelope{Type: TypeJoinRoom}, true},
		{"missing type", Envelope{}, true},
		{"plain data envelope", Envelope{Type: TypeNewTask}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.env.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newSessionID()
		if len(id) != 20 {
			t.Fatalf("expected 20 hex chars, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = true
	}
}
