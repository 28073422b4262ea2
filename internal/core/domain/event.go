package domain

// EventKind distinguishes progress from terminal events.
type EventKind string

const (
	// EventMessage carries one progress chunk from the build engine or the registry push.
	EventMessage EventKind = "message"
	// EventEnd signals that the build completed.
	EventEnd EventKind = "end"
	// EventError signals that the build failed; Err holds the triggering failure.
	EventError EventKind = "error"
)

// Event is emitted by a running build. Exactly one terminal event (end or
// error) is emitted per build and it is always the last one.
type Event struct {
	Kind EventKind
	Data []byte
	Err  error
}

// Terminal reports whether the event ends the build's event stream.
func (e Event) Terminal() bool {
	return e.Kind == EventEnd || e.Kind == EventError
}
