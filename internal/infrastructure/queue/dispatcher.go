package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type item struct {
	room         string
	notification domain.Notification
}

// Dispatcher decouples task creation from realtime delivery: notifications
// are routed to a fixed set of workers by consistent hashing on the room
// name, so events for one assignee are published in creation order while the
// request handler never blocks on the websocket layer.
type Dispatcher struct {
	workers  []chan item
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan item, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan item, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its room.
// Non-blocking: if the shard buffer is full the notification is dropped,
// consistent with the at-most-once delivery contract.
func (d *Dispatcher) Enqueue(room string, notification domain.Notification) {
	select {
	case d.workers[d.shardIndex(room)] <- item{room: room, notification: notification}:
	default:
		d.log.Warn().Str("room", room).Msg("notification queue full, dropping")
	}
}

// shardIndex maps a room name deterministically to a worker index.
func (d *Dispatcher) shardIndex(room string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(room))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan item) {
	for {
		select {
		case <-ctx.Done():
			return
		case it, ok := <-ch:
			if !ok {
				return
			}
			d.notifier.Publish(it.room, it.notification)
			d.log.Debug().Str("room", it.room).Int("worker_id", id).Msg("notification dispatched")
		}
	}
}
