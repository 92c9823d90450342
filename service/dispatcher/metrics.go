package dispatcher

import (
	"github.com/uber-go/tally/v4"
)

// Metrics tracks routing decisions of a dispatcher
type Metrics struct {
	LocalPlacements tally.Counter
	GridPlacements  tally.Counter
	Rejected        tally.Counter
	CompletionTime  tally.Gauge
}

// NewMetrics returns a new Metrics struct rooted at the given scope
func NewMetrics(scope tally.Scope) *Metrics {
	placements := scope.SubScope("placements")
	return &Metrics{
		LocalPlacements: placements.Counter("local"),
		GridPlacements:  placements.Counter("grid"),
		Rejected:        placements.Counter("rejected"),
		CompletionTime:  scope.Gauge("completion_time"),
	}
}
