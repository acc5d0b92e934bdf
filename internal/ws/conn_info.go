package ws

import (
	"time"

	"github.com/google/uuid"
)

// ConnInfo describes one websocket connection for logging.
type ConnInfo struct {
	ConnID      string
	UserID      uuid.UUID
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
