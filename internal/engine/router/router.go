// Package router dispatches inbound controller messages by their type.
package router

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/TopPano/providence-engine/internal/core/ports"
	"go.trai.ch/zerr"
)

// Message is the envelope of a controller message.
type Message struct {
	Type      string          `json:"type"`
	ChannelID string          `json:"channelId"`
	Payload   json.RawMessage `json:"payload"`
}

// Handler processes one message of a registered type.
type Handler func(ctx context.Context, msg Message)

// Router subscribes to one subject and forwards each message to the handler
// registered for its type.
type Router struct {
	bus     ports.Bus
	subject string
	queue   string
	logger  ports.Logger

	mu     sync.RWMutex
	routes map[string]Handler
}

// New creates a Router for subject. A non-empty queue makes the router join
// that queue group.
func New(bus ports.Bus, subject, queue string, logger ports.Logger) *Router {
	return &Router{
		bus:     bus,
		subject: subject,
		queue:   queue,
		logger:  logger,
		routes:  make(map[string]Handler),
	}
}

// AddRoute registers handler for messages of type typ. The first
// registration for a type wins; later ones are ignored and reported false.
func (r *Router) AddRoute(typ string, handler Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[typ]; ok {
		return false
	}
	r.routes[typ] = handler
	return true
}

// Start subscribes to the router's subject. Handlers run on the bus delivery
// goroutine with ctx.
func (r *Router) Start(ctx context.Context) (ports.Subscription, error) {
	sub, err := r.bus.Subscribe(r.subject, r.queue, func(data []byte) {
		r.Dispatch(ctx, data)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start router"), "subject", r.subject)
	}
	return sub, nil
}

// Dispatch decodes data and calls the matching handler. Undecodable messages
// and unknown types are logged and dropped.
func (r *Router) Dispatch(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		r.logger.Error(zerr.With(zerr.Wrap(err, "dropped undecodable message"), "subject", r.subject))
		return
	}

	r.mu.RLock()
	handler, ok := r.routes[msg.Type]
	r.mu.RUnlock()
	if !ok {
		r.logger.Warn("invalid message type: " + msg.Type)
		return
	}

	handler(ctx, msg)
}
