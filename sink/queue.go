// Package sink gives crawl consumers a ready-made event sink: a
// crawler.Handler that forwards each dispatched page onto a decoupled
// message queue. The engine never depends on this package; it is an
// optional collaborator wired in as an ordinary handler.
package sink

// Producer defines a producer behavior, exposing a single Produce method
// meant to enqueue an array of bytes.
type Producer interface {
	Produce([]byte) error
}

// Consumer defines a consumer behavior, connecting to a queue and blocking
// while forwarding incoming byte payloads into a channel.
type Consumer interface {
	Consume(chan<- []byte) error
}

// ProducerConsumer is a simple message queue offering both ends.
type ProducerConsumer interface {
	Producer
	Consumer
}

// ProducerConsumerCloser is a ProducerConsumer that owns a resource (a
// connection, a channel) that must be released explicitly.
type ProducerConsumerCloser interface {
	ProducerConsumer
	Close()
}
