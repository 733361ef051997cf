package event

import (
	"context"
	"log"
)

// Listener consumes events from a publisher and dispatches them to a handler
// on a dedicated goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	cancel    context.CancelFunc
}

// NewListener creates a listener for the supplied publisher and handler.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
	}
}

// Start begins dispatching events until Stop is called.
func (l *Listener[T]) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	go func() {
		for {
			event, err := l.publisher.Consume(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Printf("event: error consuming: %v", err)
				continue
			}
			if event == nil {
				continue
			}
			l.handler(event)
		}
	}()
}

// Stop terminates dispatching.
func (l *Listener[T]) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
}
