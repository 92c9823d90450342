package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/gridpricer/service/messaging"
)

// ErrClosed is returned by Publish once the publisher has been closed.
var ErrClosed = errors.New("event: publisher closed")

// Publisher hands events to a queue. Publish only appends to an unbounded
// pending list; a forwarding goroutine, started on first use, moves pending
// events into the queue so publishers never wait on consumers.
type Publisher[T any] struct {
	queue   messaging.Queue[Event[T]]
	mux     sync.Mutex
	pending []*Event[T]
	started bool
	closed  bool
	signal  chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Publisher[T]{
		queue:  queue,
		signal: make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Publish stamps and enqueues the event without blocking. A nil publisher
// discards events; a closed one returns ErrClosed.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	event.CreatedAt = time.Now()
	p.mux.Lock()
	if p.closed {
		p.mux.Unlock()
		return ErrClosed
	}
	p.pending = append(p.pending, event)
	if !p.started {
		p.started = true
		go p.forward()
	}
	p.mux.Unlock()
	p.wake()
	return nil
}

// Pending returns the number of events not yet moved into the queue.
func (p *Publisher[T]) Pending() int {
	p.mux.Lock()
	defer p.mux.Unlock()
	return len(p.pending)
}

// DeadLetters returns the number of events whose handler failed, when the
// queue keeps a dead letter list.
func (p *Publisher[T]) DeadLetters() int {
	if p == nil {
		return 0
	}
	if dlq, ok := p.queue.(interface{ DLQSize() int }); ok {
		return dlq.DLQSize()
	}
	return 0
}

// Close rejects further events and waits until pending events reach the
// queue or ctx is done; in the latter case the remaining events are dropped.
func (p *Publisher[T]) Close(ctx context.Context) error {
	p.mux.Lock()
	if p.closed {
		p.mux.Unlock()
		return nil
	}
	p.closed = true
	started := p.started
	p.mux.Unlock()
	defer p.cancel()
	if !started {
		return nil
	}
	p.wake()
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.cancel()
		<-p.done
		return ctx.Err()
	}
}

func (p *Publisher[T]) wake() {
	select {
	case p.signal <- struct{}{}:
	default:
	}
}

func (p *Publisher[T]) forward() {
	defer close(p.done)
	for {
		p.mux.Lock()
		batch := p.pending
		p.pending = nil
		closed := p.closed
		p.mux.Unlock()

		for _, event := range batch {
			if err := p.queue.Publish(p.ctx, event); err != nil {
				return
			}
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		select {
		case <-p.signal:
		case <-p.ctx.Done():
			return
		}
	}
}
