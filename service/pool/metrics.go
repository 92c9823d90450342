package pool

import (
	"github.com/uber-go/tally/v4"
)

// Metrics is the struct containing all the counters that track pool
// placement decisions
type Metrics struct {
	LanesProvisioned tally.Counter
	Absorbed         tally.Counter
	PlacementRejects tally.Counter
	Lanes            tally.Gauge
	CompletionTime   tally.Gauge
}

// NewMetrics returns a new Metrics struct, with all metrics initialized
// and rooted at the given tally.Scope
func NewMetrics(scope tally.Scope) *Metrics {
	return &Metrics{
		LanesProvisioned: scope.Counter("lanes_provisioned"),
		Absorbed:         scope.Counter("placements_absorbed"),
		PlacementRejects: scope.Counter("placement_rejects"),
		Lanes:            scope.Gauge("lanes"),
		CompletionTime:   scope.Gauge("completion_time"),
	}
}
