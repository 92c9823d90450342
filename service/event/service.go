package event

import (
	"context"
	"reflect"
	"sync"

	"github.com/viant/gridpricer/service/messaging"
	"github.com/viant/gridpricer/service/messaging/memory"
)

// Service keeps one publisher and at most one listener per payload type.
type Service struct {
	typedPublishers map[reflect.Type]any
	typedListeners  map[reflect.Type]stopper
	mux             *sync.RWMutex
	newQueueConfig  func(name string) memory.Config
}

type stopper interface {
	Stop()
}

func New(opts ...Option) *Service {
	ret := &Service{
		typedPublishers: make(map[reflect.Type]any),
		typedListeners:  make(map[reflect.Type]stopper),
		mux:             &sync.RWMutex{},
		newQueueConfig: func(string) memory.Config {
			return memory.DefaultConfig()
		},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

type closer interface {
	Close(ctx context.Context) error
}

// Shutdown closes every publisher, so later Publish calls fail with
// ErrClosed, and stops every registered listener. Events published before
// Shutdown are delivered first; events of a type nobody listens to are
// dropped.
func (s *Service) Shutdown() {
	s.mux.Lock()
	listeners := s.typedListeners
	s.typedListeners = make(map[reflect.Type]stopper)
	publishers := make(map[reflect.Type]closer, len(s.typedPublishers))
	for key, publisher := range s.typedPublishers {
		publishers[key] = publisher.(closer)
	}
	s.mux.Unlock()

	for key, publisher := range publishers {
		ctx := context.Background()
		if _, ok := listeners[key]; !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithCancel(ctx)
			cancel()
		}
		_ = publisher.Close(ctx)
	}
	for _, listener := range listeners {
		listener.Stop()
	}
}

func QueueOf[T any](s *Service, name string) messaging.Queue[T] {
	return memory.NewQueue[T](s.newQueueConfig(name))
}

func keyOf[T any]() reflect.Type {
	var t T
	rType := reflect.TypeOf(t)
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}

// SetListenerOf replaces the listener for events carrying T.
func SetListenerOf[T any](s *Service, handler func(*Event[T])) {
	key := keyOf[T]()
	publisher := PublisherOf[T](s)
	listener := NewListener[T](publisher, handler)

	s.mux.Lock()
	previous := s.typedListeners[key]
	s.typedListeners[key] = listener
	s.mux.Unlock()
	if previous != nil {
		previous.Stop()
	}
	listener.Start()
}

// HasListenerOf returns true when a listener consumes events carrying T.
func HasListenerOf[T any](s *Service) bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	_, ok := s.typedListeners[keyOf[T]()]
	return ok
}

// PublisherOf returns a publisher for the provided type
func PublisherOf[T any](s *Service) *Publisher[T] {
	key := keyOf[T]()
	s.mux.RLock()
	ret, ok := s.typedPublishers[key]
	s.mux.RUnlock()
	if ok {
		return ret.(*Publisher[T])
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if ret, ok = s.typedPublishers[key]; ok {
		return ret.(*Publisher[T])
	}
	publisher := NewPublisher[T](QueueOf[Event[T]](s, key.String()))
	s.typedPublishers[key] = publisher
	return publisher
}

// DeadLettersOf returns the number of events carrying T whose handler failed.
func DeadLettersOf[T any](s *Service) int {
	return PublisherOf[T](s).DeadLetters()
}
