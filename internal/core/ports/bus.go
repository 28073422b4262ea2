package ports

// MessageHandler receives the raw payload of one bus message.
type MessageHandler func(data []byte)

// Bus is the message transport between the controller and the worker.
//
//go:generate go run go.uber.org/mock/mockgen -source=bus.go -destination=mocks/mock_bus.go -package=mocks
type Bus interface {
	// Subscribe delivers messages published on subject to handler. A non-empty
	// queue joins a queue group so each message reaches one subscriber.
	Subscribe(subject, queue string, handler MessageHandler) (Subscription, error)

	// Publish sends data on subject.
	Publish(subject string, data []byte) error
}

// Subscription is an active bus subscription.
type Subscription interface {
	Unsubscribe() error
}
