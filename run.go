package gridpricer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/progress"
	"github.com/viant/gridpricer/service/dao"
	"github.com/viant/gridpricer/service/dao/item"
	"github.com/viant/gridpricer/service/strategy"
)

// Run summarises one scheduled batch
type Run struct {
	ID             string
	Strategy       string
	Results        []strategy.Result
	CompletionTime int
	// LocalItems is the number of items executed by the local lane
	LocalItems int
	// GridLanes is the number of lanes the pool provisioned
	GridLanes int
	Progress  *progress.Progress
	items     *item.Service
}

// Item returns an item scheduled by this run.
func (r *Run) Item(ctx context.Context, id string) (*model.Item, error) {
	ret, err := r.items.Load(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "item %v", id)
	}
	return ret, nil
}

// Items lists the items of this run, optionally narrowed by criteria.Category
// or criteria.Priced parameters.
func (r *Run) Items(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Item, error) {
	return r.items.List(ctx, parameters...)
}
