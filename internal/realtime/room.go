package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// Room is an in-memory membership and broadcast fanout primitive keyed by a
// user identifier.
//
// Concurrency guarantees:
//   - Join/Leave are safe under concurrent Broadcast.
//   - Broadcast never blocks: a member with a full queue is skipped.
//   - Broadcast is panic-safe because Client.Send is never closed here.
type Room struct {
	Name string

	log zerolog.Logger

	mu      sync.RWMutex
	members map[string]*Client
}

// NewRoom constructs an empty room.
func NewRoom(name string, log zerolog.Logger) *Room {
	return &Room{
		Name:    name,
		log:     log,
		members: make(map[string]*Client),
	}
}

// Join adds a client to the room's membership.
func (r *Room) Join(client *Client) {
	if client == nil || client.SessionID == "" {
		return
	}

	r.mu.Lock()
	r.members[client.SessionID] = client
	r.mu.Unlock()

	r.log.Debug().Str("room", r.Name).Str("session_id", client.SessionID).Msg("room joined")
}

// Leave removes a client from the room. Removal happens before Close so a
// concurrent broadcaster never holds a pointer to a half-torn-down client.
func (r *Room) Leave(sessionID string) {
	if sessionID == "" {
		return
	}

	r.mu.Lock()
	cl := r.members[sessionID]
	delete(r.members, sessionID)
	r.mu.Unlock()

	if cl != nil {
		cl.Close()
	}

	r.log.Debug().Str("room", r.Name).Str("session_id", sessionID).Msg("room left")
}

// Len returns the current member count.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Broadcast delivers env to every member. Events land on each member's send
// channel in call order, so a single connection observes publishes in order.
// Returns how many members accepted the event.
func (r *Room) Broadcast(env Envelope) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for _, m := range r.members {
		select {
		case <-m.Done():
			continue
		default:
		}

		select {
		case m.Send <- env:
			delivered++
		default:
			// Drop rather than block the room on one slow member.
		}
	}
	return delivered
}
