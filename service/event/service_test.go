package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gridpricer/service/messaging/memory"
	"go.uber.org/goleak"
)

type pricedPayload struct {
	ID    string
	Price int
}

func TestService_Listener(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New()
	var mu sync.Mutex
	var received []string
	all := make(chan struct{})
	SetListenerOf[pricedPayload](srv, func(e *Event[pricedPayload]) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e.Data.ID)
		if len(received) == 3 {
			close(all)
		}
	})
	assert.True(t, HasListenerOf[pricedPayload](srv))

	publisher := PublisherOf[pricedPayload](srv)
	assert.Same(t, publisher, PublisherOf[pricedPayload](srv))
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		anEvent := NewEvent(&Context{ItemID: id, EventType: TypePriced}, pricedPayload{ID: id, Price: 42})
		require.NoError(t, publisher.Publish(ctx, anEvent))
	}

	select {
	case <-all:
	case <-time.After(time.Second):
		t.Fatal("events were not delivered")
	}
	srv.Shutdown()
	assert.False(t, HasListenerOf[pricedPayload](srv))
	assert.Equal(t, []string{"a", "b", "c"}, received)
}

func TestPublisher_Nil(t *testing.T) {
	var publisher *Publisher[pricedPayload]
	assert.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, pricedPayload{})))
}

func TestService_ShutdownDrains(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New()
	var mu sync.Mutex
	count := 0
	SetListenerOf[pricedPayload](srv, func(e *Event[pricedPayload]) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	publisher := PublisherOf[pricedPayload](srv)
	for i := 0; i < 100; i++ {
		require.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, pricedPayload{Price: i})))
	}
	srv.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 100, count)
}

func TestPublisher_ClosedAfterShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New()
	SetListenerOf[pricedPayload](srv, func(e *Event[pricedPayload]) {})
	publisher := PublisherOf[pricedPayload](srv)
	srv.Shutdown()

	for i := 0; i < 2000; i++ {
		err := publisher.Publish(context.Background(), NewEvent(&Context{}, pricedPayload{Price: i}))
		require.ErrorIs(t, err, ErrClosed)
	}
	assert.Same(t, publisher, PublisherOf[pricedPayload](srv))
}

func TestPublisher_SlowListener(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New(WithQueueConfig(func(string) memory.Config {
		return memory.Config{QueueBuffer: 1}
	}))
	var mu sync.Mutex
	count := 0
	SetListenerOf[pricedPayload](srv, func(e *Event[pricedPayload]) {
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		count++
		mu.Unlock()
	})
	publisher := PublisherOf[pricedPayload](srv)

	started := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, pricedPayload{Price: i})))
	}
	assert.Less(t, time.Since(started), 20*time.Millisecond, "publishing waits on the listener")

	srv.Shutdown()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
	assert.Equal(t, 0, publisher.Pending())
}

func TestService_UnheardEventsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New(WithQueueConfig(func(string) memory.Config {
		return memory.Config{QueueBuffer: 1}
	}))
	publisher := PublisherOf[pricedPayload](srv)
	for i := 0; i < 5; i++ {
		require.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, pricedPayload{Price: i})))
	}
	srv.Shutdown()
	assert.ErrorIs(t, publisher.Publish(context.Background(), NewEvent(&Context{}, pricedPayload{})), ErrClosed)
}

func TestListener_DeadLetters(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New()
	var mu sync.Mutex
	var handled []int
	SetListenerOf[pricedPayload](srv, func(e *Event[pricedPayload]) {
		if e.Data.Price%2 == 1 {
			panic("cannot handle odd price")
		}
		mu.Lock()
		handled = append(handled, e.Data.Price)
		mu.Unlock()
	})
	publisher := PublisherOf[pricedPayload](srv)
	for i := 0; i < 6; i++ {
		require.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, pricedPayload{Price: i})))
	}
	srv.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 2, 4}, handled)
	assert.Equal(t, 3, DeadLettersOf[pricedPayload](srv))
}
