// Package nats carries controller and worker messages over NATS.
package nats

import (
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	natsgo "github.com/nats-io/nats.go"
	"go.trai.ch/zerr"
)

const clientName = "providence-engine"

// Conn is the part of *nats.Conn the bus uses.
type Conn interface {
	Subscribe(subject string, cb natsgo.MsgHandler) (*natsgo.Subscription, error)
	QueueSubscribe(subject, queue string, cb natsgo.MsgHandler) (*natsgo.Subscription, error)
	Publish(subject string, data []byte) error
	Drain() error
}

// Bus implements ports.Bus.
type Bus struct {
	conn Conn
}

// New creates a Bus on an established connection.
func New(conn Conn) *Bus {
	return &Bus{conn: conn}
}

// Connect dials the server named in cfg and keeps reconnecting on loss.
func Connect(cfg domain.NATSConfig) (*Bus, error) {
	conn, err := natsgo.Connect(cfg.URL, natsgo.Name(clientName), natsgo.MaxReconnects(-1))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to connect to nats"), "url", cfg.URL)
	}
	return New(conn), nil
}

// Subscribe registers handler for subject, joining queue when it is set.
func (b *Bus) Subscribe(subject, queue string, handler ports.MessageHandler) (ports.Subscription, error) {
	cb := func(msg *natsgo.Msg) {
		handler(msg.Data)
	}

	var (
		sub *natsgo.Subscription
		err error
	)
	if queue != "" {
		sub, err = b.conn.QueueSubscribe(subject, queue, cb)
	} else {
		sub, err = b.conn.Subscribe(subject, cb)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to subscribe"), "subject", subject)
	}
	return sub, nil
}

// Publish sends data on subject.
func (b *Bus) Publish(subject string, data []byte) error {
	if err := b.conn.Publish(subject, data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish"), "subject", subject)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (b *Bus) Close() error {
	if err := b.conn.Drain(); err != nil {
		return zerr.Wrap(err, "failed to drain nats connection")
	}
	return nil
}
