package livefeed

import "github.com/google/uuid"

// Snapshot is one full result-set delivery for a topic. Data replaces the
// client's previous state wholesale; it is never a diff.
type Snapshot struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Client is one live connection. It abstracts the transport so the hub can
// be tested without a WebSocket.
type Client interface {
	// GetConnID identifies the connection; one user may hold several.
	GetConnID() string
	GetUserID() uuid.UUID
	GetRole() string

	// GetSendChannel is where the hub delivers snapshots.
	GetSendChannel() chan<- Snapshot

	Run()
	Close()
}
