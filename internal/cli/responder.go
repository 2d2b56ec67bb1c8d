package cli

import (
	"strings"
	"sync"
	"time"

	"github.com/loomline/loomline/internal/tui"
)

// echoResponder is the built-in demo backend: it streams the submitted
// prompt back word by word so the interface can be exercised without any
// external service.
type echoResponder struct {
	events    chan tui.Event
	done      chan struct{}
	closeOnce sync.Once
}

func newEchoResponder() *echoResponder {
	return &echoResponder{
		events: make(chan tui.Event, 16),
		done:   make(chan struct{}),
	}
}

func (r *echoResponder) Events() <-chan tui.Event {
	return r.events
}

func (r *echoResponder) Submit(prompt string) {
	go r.stream(prompt)
}

func (r *echoResponder) stream(prompt string) {
	if !r.emit(tui.Event{Kind: tui.EventChunk, Text: "You said:\n\n"}) {
		return
	}
	for _, word := range strings.Fields(prompt) {
		time.Sleep(40 * time.Millisecond)
		if !r.emit(tui.Event{Kind: tui.EventChunk, Text: word + " "}) {
			return
		}
	}
	r.emit(tui.Event{Kind: tui.EventDone})
}

// emit delivers an event unless the responder has shut down. It reports
// whether delivery happened so a stream can stop early on shutdown.
func (r *echoResponder) emit(evt tui.Event) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.events <- evt:
		return true
	case <-r.done:
		return false
	}
}

func (r *echoResponder) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}
