package realtime

import "sync"

// Client represents one connected websocket session.
//
// Send is never closed by the server so that concurrent publishers can never
// panic on a closed channel; done signals the client's goroutines to stop and
// Close is idempotent.
type Client struct {
	SessionID string
	UserID    string
	Send      chan Envelope

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient constructs a Client with a bounded send queue.
func NewClient(userID, sessionID string, sendQueueSize int) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = 64
	}
	return &Client{
		SessionID: sessionID,
		UserID:    userID,
		Send:      make(chan Envelope, sendQueueSize),
		done:      make(chan struct{}),
	}
}

// Done returns a channel closed when the client is shutting down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close signals the client goroutines to stop. It does NOT close Send.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
