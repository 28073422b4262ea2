package pipeline

import (
	"bytes"
	"slices"
	"sync"

	"github.com/TopPano/providence-engine/internal/core/domain"
)

// Build is a running or finished build.
type Build struct {
	id     domain.BuildID
	events chan domain.Event
	done   chan struct{}

	mu      sync.Mutex
	history []domain.Stage
	err     error
}

func newBuild(id domain.BuildID, buffer int) *Build {
	return &Build{
		id:      id,
		events:  make(chan domain.Event, buffer),
		done:    make(chan struct{}),
		history: []domain.Stage{domain.StageCreated},
	}
}

// ID returns the build identifier.
func (b *Build) ID() domain.BuildID {
	return b.id
}

// Events returns the event stream. It is closed after the terminal event.
func (b *Build) Events() <-chan domain.Event {
	return b.events
}

// Done is closed when the build has finished.
func (b *Build) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the build has finished and returns its error.
func (b *Build) Wait() error {
	<-b.done
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// History returns the stages the build has entered so far, in order.
func (b *Build) History() []domain.Stage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.history)
}

// Stage returns the current stage.
func (b *Build) Stage() domain.Stage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history[len(b.history)-1]
}

func (b *Build) enter(stage domain.Stage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = append(b.history, stage)
}

func (b *Build) emit(ev domain.Event) {
	b.events <- ev
}

// finish records the terminal stage, emits the single terminal event and
// closes the stream.
func (b *Build) finish(stage domain.Stage, err error) {
	b.mu.Lock()
	b.history = append(b.history, stage)
	b.err = err
	b.mu.Unlock()

	if err != nil {
		b.emit(domain.Event{Kind: domain.EventError, Err: err})
	} else {
		b.emit(domain.Event{Kind: domain.EventEnd})
	}
	close(b.events)
	close(b.done)
}

// progressWriter turns each write into a message event.
type progressWriter struct {
	build *Build
}

func (w *progressWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	// Writers may reuse p after Write returns.
	w.build.emit(domain.Event{Kind: domain.EventMessage, Data: bytes.Clone(p)})
	return len(p), nil
}
