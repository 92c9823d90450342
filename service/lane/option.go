package lane

import (
	"time"

	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/event"
	"github.com/viant/gridpricer/service/pricing"
)

// Option configures a Lane
type Option func(*Lane)

// WithName sets the lane name used in logs, traces and events
func WithName(name string) Option {
	return func(l *Lane) {
		l.name = name
	}
}

// WithMode sets the execution mode
func WithMode(mode model.Mode) Option {
	return func(l *Lane) {
		l.mode = mode
	}
}

// WithTimeUnit sets the wall-clock length of one time unit in real-time mode
func WithTimeUnit(unit time.Duration) Option {
	return func(l *Lane) {
		if unit > 0 {
			l.timeUnit = unit
		}
	}
}

// WithPricer sets the pricing implementation
func WithPricer(pricer pricing.Pricer) Option {
	return func(l *Lane) {
		if pricer != nil {
			l.pricer = pricer
		}
	}
}

// WithPublisher makes the lane publish an event for every priced item
func WithPublisher(publisher *event.Publisher[model.Priced]) Option {
	return func(l *Lane) {
		l.publisher = publisher
	}
}

// WithScope sets the metrics scope
func WithScope(scope tally.Scope) Option {
	return func(l *Lane) {
		if scope != nil {
			l.metrics = NewMetrics(scope)
		}
	}
}
