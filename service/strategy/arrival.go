package strategy

import (
	"context"

	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/dispatcher"
)

// ArrivalName is the registry name of the input-order strategy
const ArrivalName = "arrival"

// Arrival offers items in input order, applying the same online placement
// rule as Greedy.
type Arrival struct{}

// NewArrival returns the input-order strategy.
func NewArrival() Strategy {
	return &Arrival{}
}

// Name implements Strategy
func (a *Arrival) Name() string {
	return ArrivalName
}

// Schedule implements Strategy
func (a *Arrival) Schedule(ctx context.Context, items []*model.Item, d *dispatcher.Dispatcher) ([]Result, error) {
	return run(ctx, items, items, d)
}
