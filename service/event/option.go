package event

import (
	"github.com/viant/gridpricer/service/messaging/memory"
)

type Option func(s *Service)

// WithQueueConfig sets the memory queue configuration factory, called once
// per event payload type.
func WithQueueConfig(newConfig func(name string) memory.Config) Option {
	return func(s *Service) {
		s.newQueueConfig = newConfig
	}
}
