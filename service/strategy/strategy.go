package strategy

import (
	"context"

	"github.com/pkg/errors"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/progress"
	"github.com/viant/gridpricer/service/dispatcher"
)

// Strategy places a batch on a dispatcher, executes it and returns one result
// per item in input order.
type Strategy interface {
	Name() string
	Schedule(ctx context.Context, items []*model.Item, d *dispatcher.Dispatcher) ([]Result, error)
}

// Result pairs an item with its price
type Result struct {
	Item  *model.Item
	Price int
}

// place offers items to d one by one in the given order.
func place(ctx context.Context, ordered []*model.Item, d *dispatcher.Dispatcher) {
	for _, item := range ordered {
		switch d.Place(item) {
		case dispatcher.SideLocal:
			progress.UpdateCtx(ctx, progress.Delta{Local: 1})
		default:
			progress.UpdateCtx(ctx, progress.Delta{Grid: 1})
		}
	}
}

// collect reads every price in input order; any unpriced item fails the batch.
func collect(items []*model.Item) ([]Result, error) {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		price, err := item.Price()
		if err != nil {
			return nil, errors.Wrap(err, "incomplete schedule")
		}
		results = append(results, Result{Item: item, Price: price})
	}
	return results, nil
}

func run(ctx context.Context, ordered, items []*model.Item, d *dispatcher.Dispatcher) ([]Result, error) {
	progress.UpdateCtx(ctx, progress.Delta{Total: len(items)})
	place(ctx, ordered, d)
	d.Execute(ctx)
	return collect(items)
}
