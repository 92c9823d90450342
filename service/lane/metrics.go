package lane

import (
	"github.com/uber-go/tally/v4"
)

// Metrics is the struct containing all the counters that track lane activity
type Metrics struct {
	ItemsEnqueued  tally.Counter
	ItemsPriced    tally.Counter
	EnqueueRejects tally.Counter
	EventsDropped  tally.Counter
	Elapsed        tally.Gauge
}

// NewMetrics returns a new Metrics struct, with all metrics initialized
// and rooted at the given tally.Scope
func NewMetrics(scope tally.Scope) *Metrics {
	return &Metrics{
		ItemsEnqueued:  scope.Counter("items_enqueued"),
		ItemsPriced:    scope.Counter("items_priced"),
		EnqueueRejects: scope.Counter("enqueue_rejects"),
		EventsDropped:  scope.Counter("events_dropped"),
		Elapsed:        scope.Gauge("elapsed"),
	}
}
