package strategy

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/dispatcher"
	"github.com/viant/gridpricer/service/pricing"
)

// GreedyName is the registry name of the longest-first strategy
const GreedyName = "greedy"

// Greedy offers items longest first. Items of equal duration keep their
// relative input order.
type Greedy struct{}

// NewGreedy returns the longest-first strategy.
func NewGreedy() Strategy {
	return &Greedy{}
}

// Name implements Strategy
func (g *Greedy) Name() string {
	return GreedyName
}

// Order returns a copy of items sorted by descending duration.
func (g *Greedy) Order(items []*model.Item) []*model.Item {
	ordered := append([]*model.Item(nil), items...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return pricing.DurationOf(ordered[i]) > pricing.DurationOf(ordered[j])
	})
	return ordered
}

// Schedule implements Strategy
func (g *Greedy) Schedule(ctx context.Context, items []*model.Item, d *dispatcher.Dispatcher) ([]Result, error) {
	results, err := run(ctx, g.Order(items), items, d)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"strategy":   GreedyName,
		"items":      len(items),
		"work":       pricing.Sum(items),
		"completion": d.CompletionTime(),
	}).Debug("batch scheduled")
	return results, nil
}
