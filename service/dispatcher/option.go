package dispatcher

import "github.com/uber-go/tally/v4"

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithScope sets the metrics scope
func WithScope(scope tally.Scope) Option {
	return func(d *Dispatcher) {
		if scope != nil {
			d.scope = scope
		}
	}
}
