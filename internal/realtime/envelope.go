package realtime

import (
	"encoding/json"
	"errors"
)

// Event types on the realtime channel. Clients emit joinRoom right after
// connecting; the server emits newTask into the assignee's room when a task
// is created.
const (
	TypeJoinRoom = "joinRoom"
	TypeNewTask  = "newTask"
	TypeError    = "error"
)

// Envelope is the single frame shape exchanged over the websocket.
type Envelope struct {
	Type string          `json:"type"`
	Room string          `json:"room,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Validate checks the minimal structural requirements per envelope type.
func (e Envelope) Validate() error {
	if e.Type == "" {
		return errors.New("missing envelope type")
	}
	if e.Type == TypeJoinRoom && e.Room == "" {
		return errors.New("joinRoom requires a room")
	}
	return nil
}

// NewDataEnvelope marshals payload into an envelope of the given type.
func NewDataEnvelope(eventType string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: eventType, Data: raw}, nil
}
