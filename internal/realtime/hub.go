package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/api/metrics"
	"github.com/Vt221001/employee-management/internal/core/domain"
)

// Hub owns the in-memory room registry. Rooms are keyed by user id; a
// connection may be joined to more than one room. The hub is constructed
// explicitly in main and injected into whatever needs to publish.
type Hub struct {
	log zerolog.Logger

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewHub constructs a Hub instance.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:   log,
		rooms: make(map[string]*Room),
	}
}

// GetOrCreateRoom returns a stable room handle for the given name.
func (h *Hub) GetOrCreateRoom(name string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.rooms[name]; ok {
		return r
	}

	r := NewRoom(name, h.log)
	h.rooms[name] = r
	return r
}

// room returns an existing room without creating one.
func (h *Hub) room(name string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[name]
}

// Publish delivers a notification to every connection joined to room.
// With no room or no members the event is silently dropped: at-most-once,
// no queuing, no redelivery.
func (h *Hub) Publish(room string, notification domain.Notification) {
	metrics.NotificationsPublishedTotal.Inc()

	r := h.room(room)
	if r == nil || r.Len() == 0 {
		metrics.NotificationsDroppedTotal.WithLabelValues("no_subscriber").Inc()
		h.log.Debug().Str("room", room).Msg("notification dropped, no connection joined")
		return
	}

	env, err := NewDataEnvelope(TypeNewTask, notification)
	if err != nil {
		metrics.NotificationsDroppedTotal.WithLabelValues("encode_failed").Inc()
		h.log.Error().Err(err).Str("room", room).Msg("failed to encode notification")
		return
	}

	delivered := r.Broadcast(env)
	metrics.NotificationsDeliveredTotal.Add(float64(delivered))
	if delivered < r.Len() {
		metrics.NotificationsDroppedTotal.WithLabelValues("queue_full").Add(float64(r.Len() - delivered))
	}

	h.log.Debug().Str("room", room).Int("delivered", delivered).Msg("notification published")
}
