package dispatcher

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/lane"
	"github.com/viant/gridpricer/service/placement"
	"github.com/viant/gridpricer/service/pool"
	"github.com/viant/gridpricer/tracing"
)

// Dispatcher holds exactly one local target and one grid target.
type Dispatcher struct {
	local   placement.Target
	grid    placement.Target
	scope   tally.Scope
	metrics *Metrics
}

// New creates a dispatcher over the supplied targets.
func New(local, grid placement.Target, options ...Option) *Dispatcher {
	ret := &Dispatcher{local: local, grid: grid, scope: tally.NoopScope}
	for _, opt := range options {
		opt(ret)
	}
	ret.metrics = NewMetrics(ret.scope)
	return ret
}

// NewDefault creates a dispatcher over a fresh local lane and an empty pool
// sharing the given mode and time unit.
func NewDefault(mode model.Mode, timeUnit time.Duration) *Dispatcher {
	laneOptions := []lane.Option{lane.WithMode(mode), lane.WithTimeUnit(timeUnit)}
	local := lane.New(append(laneOptions, lane.WithName(lane.DefaultName))...)
	grid := pool.New(pool.WithLaneOptions(laneOptions...))
	return New(local, grid)
}

// Local returns the local target.
func (d *Dispatcher) Local() placement.Target {
	return d.local
}

// Grid returns the grid target.
func (d *Dispatcher) Grid() placement.Target {
	return d.grid
}

// MarginalTime returns the larger of both sides' marginal times.
func (d *Dispatcher) MarginalTime(item *model.Item) int {
	return max(d.local.MarginalTime(item), d.grid.MarginalTime(item))
}

// Route returns the side item would be placed on without placing it.
// Ties go to the local lane.
func (d *Dispatcher) Route(item *model.Item) Side {
	if d.local.MarginalTime(item) <= d.grid.MarginalTime(item) {
		return SideLocal
	}
	return SideGrid
}

// Place routes item and places it on the chosen side. A side that has
// already executed rejects the item, which then stays unpriced.
func (d *Dispatcher) Place(item *model.Item) Side {
	side := d.Route(item)
	target, counter := d.local, d.metrics.LocalPlacements
	if side == SideGrid {
		target, counter = d.grid, d.metrics.GridPlacements
	}
	if !target.Place(item) {
		d.metrics.Rejected.Inc(1)
		log.WithFields(log.Fields{"item": item.ID, "side": side}).Warn("placement rejected, target already executed")
		return side
	}
	counter.Inc(1)
	return side
}

// Execute runs the local and grid targets concurrently and waits for both.
func (d *Dispatcher) Execute(ctx context.Context) {
	ctx, span := tracing.StartSpan(ctx, "dispatcher.execute", "INTERNAL")
	defer tracing.EndSpan(span, nil)

	var wg conc.WaitGroup
	wg.Go(func() { d.local.Execute(ctx) })
	wg.Go(func() { d.grid.Execute(ctx) })
	wg.Wait()

	completion := d.CompletionTime()
	d.metrics.CompletionTime.Update(float64(completion))
	span.WithInt("dispatcher.completion", completion)
}

// CompletionTime returns the larger of both sides' completion times.
func (d *Dispatcher) CompletionTime() int {
	return max(d.local.CompletionTime(), d.grid.CompletionTime())
}
