package gridpricer

import (
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/progress"
	"github.com/viant/gridpricer/service/event"
	"github.com/viant/gridpricer/service/pricing"
	"github.com/viant/gridpricer/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service
type Option func(s *Service)

// WithConfig sets the service configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithMetricsScope sets the tally scope lanes, pools and dispatchers report to
func WithMetricsScope(scope tally.Scope) Option {
	return func(s *Service) {
		if scope != nil {
			s.scope = scope
		}
	}
}

// WithPricer replaces the stub pricing function
func WithPricer(pricer pricing.Pricer) Option {
	return func(s *Service) {
		if pricer != nil {
			s.pricer = pricer
		}
	}
}

// WithPricedListener registers a handler notified, on its own goroutine, every
// time an item gets priced.
func WithPricedListener(handler func(*event.Event[model.Priced])) Option {
	return func(s *Service) {
		s.pricedListener = handler
	}
}

// WithProgressListener registers a callback invoked with a copy of the run
// counters on every change.
func WithProgressListener(handler func(progress.Progress)) Option {
	return func(s *Service) {
		s.progressListener = handler
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times; the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter, for example
// OTLP, Jaeger, Zipkin or an in-memory exporter in tests.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
