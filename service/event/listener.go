package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/viant/gridpricer/service/messaging"
)

// drainTimeout bounds how long a stopping listener waits for the next queued
// event before it exits.
const drainTimeout = 10 * time.Millisecond

// Listener drains a publisher on its own goroutine and hands every event to
// the handler in publication order. A handler panic nacks the event, moving
// it to the queue's dead letters, and the listener carries on.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewListener creates a stopped listener; call Start to begin consuming.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop cancels the listener and waits for its goroutine to exit. Events
// published before Stop are still handed to the handler.
func (l *Listener[T]) Stop() {
	l.cancel()
	<-l.done
}

// Start consumes events on a new goroutine until Stop is called.
func (l *Listener[T]) Start() {
	go func() {
		defer close(l.done)
		for {
			msg, err := l.publisher.queue.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					l.drain()
					return
				}
				log.WithError(err).Warn("failed to consume event")
				continue
			}
			l.handle(msg)
		}
	}()
}

func (l *Listener[T]) drain() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		msg, err := l.publisher.queue.Consume(ctx)
		cancel()
		if err != nil {
			return
		}
		l.handle(msg)
	}
}

func (l *Listener[T]) handle(msg messaging.Message[Event[T]]) {
	if msg == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("event handler failed")
			if err := msg.Nack(fmt.Errorf("handler panic: %v", r)); err != nil {
				log.WithError(err).Warn("failed to nack event")
			}
		}
	}()
	l.handler(msg.T())
	if err := msg.Ack(); err != nil {
		log.WithError(err).Warn("failed to ack event")
	}
}
