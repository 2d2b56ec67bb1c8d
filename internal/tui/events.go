package tui

// EventKind identifies a responder event.
type EventKind int

const (
	// EventChunk carries a piece of a streaming reply.
	EventChunk EventKind = iota
	// EventDone marks the end of the current reply.
	EventDone
	// EventStatus carries an informational line for the transcript.
	EventStatus
	// EventError carries an error line for the transcript.
	EventError
)

// Event is one message from the responder to the interface.
type Event struct {
	Kind EventKind
	Text string
}

// Responder produces replies to submitted prompts. The interface reads
// Events until the channel closes; Submit must not block on the UI.
type Responder interface {
	Submit(prompt string)
	Events() <-chan Event
	Close()
}
