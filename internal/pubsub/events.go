// Package pubsub moves events from cellvim's background goroutines (the
// file watcher, the debug logger) into the Bubble Tea update loop without
// blocking either side.
package pubsub

import "time"

// EventType names what happened to the payload.
type EventType string

const (
	// FileChangedEvent is published by the watcher after the open tab
	// file is rewritten on disk. Payload is the file path.
	FileChangedEvent EventType = "file-changed"
	// LogLineEvent is published by the debug logger for every formatted
	// entry. Payload is the rendered line.
	LogLineEvent EventType = "log-line"
)

// Event pairs a typed payload with what happened and when.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
