package ports

import "github.com/Vt221001/employee-management/internal/core/domain"

// Notifier pushes an assignment notification to every live connection joined
// to the target user's room. Delivery is fire-and-forget and at-most-once:
// with no connection joined, the event is silently dropped.
type Notifier interface {
	Publish(room string, notification domain.Notification)
}
