package realtime

import (
	"crypto/rand"
	"encoding/hex"
)

// newSessionID returns a random identifier for one websocket session.
func newSessionID() string {
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(b)
}
