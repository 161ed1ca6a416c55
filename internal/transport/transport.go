// Package transport defines the contract between the core server and the
// layer that delivers discrete messages over reliable, ordered per-connection
// channels. Connection ids are assigned by the transport.
package transport

// EventType discriminates transport events.
type EventType int

const (
	EventConnect EventType = iota
	EventData
	EventDisconnect
)

// Event is one transport occurrence. Events for a given connection arrive
// in order; the core consumes all events through a single serialized loop.
type Event struct {
	Type   EventType
	ConnID int64
	// Data carries the raw frame for EventData; empty otherwise.
	Data string
}

// Sender delivers outbound frames. Send must not block the caller: a slow
// or gone connection drops the frame, and liveness is the transport's
// problem, not the core's.
type Sender interface {
	Send(connID int64, frame string)
}
