package pool

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/lane"
	"github.com/viant/gridpricer/service/placement"
	"github.com/viant/gridpricer/service/pricing"
	"github.com/viant/gridpricer/tracing"
	"go.uber.org/atomic"
)

// Pool owns a growing set of lanes. Lanes are never removed and items are
// never moved between lanes.
type Pool struct {
	overhead    int
	laneOptions []lane.Option
	scope       tally.Scope
	metrics     *Metrics
	lanes       []*lane.Lane
	executed    atomic.Bool
}

var _ placement.Target = (*Pool)(nil)

// New creates an empty pool.
func New(options ...Option) *Pool {
	ret := &Pool{
		overhead: pricing.DefaultOverhead,
		scope:    tally.NoopScope,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.metrics = NewMetrics(ret.scope)
	return ret
}

// Overhead returns the provisioning overhead in time units.
func (p *Pool) Overhead() int {
	return p.overhead
}

// Len returns the number of provisioned lanes.
func (p *Pool) Len() int {
	return len(p.lanes)
}

// Lanes returns the lanes in creation order.
func (p *Pool) Lanes() []*lane.Lane {
	return append([]*lane.Lane(nil), p.lanes...)
}

// MarginalTime estimates the extra completion time of the pool as a whole if
// item were added now: 0 when an existing lane absorbs it, otherwise the item
// duration plus the provisioning overhead.
func (p *Pool) MarginalTime(item *model.Item) int {
	if _, ok := p.AbsorbingLaneIndex(item); ok {
		return 0
	}
	return pricing.DurationOf(item) + p.overhead
}

// AbsorbingLaneIndex returns the first lane, in creation order, that can take
// item without raising the longest committed lane duration.
func (p *Pool) AbsorbingLaneIndex(item *model.Item) (int, bool) {
	if len(p.lanes) == 0 {
		return -1, false
	}
	slack := p.longestCommitted()
	for i, candidate := range p.lanes {
		if candidate.MarginalTime(item) <= slack {
			return i, true
		}
	}
	return -1, false
}

func (p *Pool) longestCommitted() int {
	longest := 0
	for _, candidate := range p.lanes {
		if committed := candidate.Committed(); committed > longest {
			longest = committed
		}
	}
	return longest
}

// Place enqueues item on the absorbing lane or provisions a new lane for it.
// Once the pool has started executing it provisions nothing and rejects item.
func (p *Pool) Place(item *model.Item) bool {
	if p.executed.Load() {
		p.metrics.PlacementRejects.Inc(1)
		log.WithFields(log.Fields{"item": item.ID, "lanes": len(p.lanes)}).Warn("pool already executed, item rejected")
		return false
	}
	if index, ok := p.AbsorbingLaneIndex(item); ok {
		if !p.lanes[index].Enqueue(item) {
			p.metrics.PlacementRejects.Inc(1)
			return false
		}
		p.metrics.Absorbed.Inc(1)
		return true
	}
	name := "grid-" + strconv.Itoa(len(p.lanes))
	options := append(append([]lane.Option(nil), p.laneOptions...),
		lane.WithName(name),
		lane.WithScope(p.scope.SubScope("lane")))
	provisioned := lane.New(options...)
	provisioned.Enqueue(item)
	p.lanes = append(p.lanes, provisioned)
	p.metrics.LanesProvisioned.Inc(1)
	p.metrics.Lanes.Update(float64(len(p.lanes)))
	log.WithFields(log.Fields{"lane": name, "item": item.ID, "category": item.Category}).Debug("provisioned lane")
	return true
}

// Execute runs every lane concurrently and returns once all have finished.
func (p *Pool) Execute(ctx context.Context) {
	p.executed.Store(true)
	ctx, span := tracing.StartSpan(ctx, "pool.execute", "INTERNAL")
	span.WithInt("pool.lanes", len(p.lanes))
	defer tracing.EndSpan(span, nil)

	var wg conc.WaitGroup
	for _, aLane := range p.lanes {
		aLane := aLane
		wg.Go(func() {
			aLane.Execute(ctx)
		})
	}
	wg.Wait()

	completion := p.CompletionTime()
	p.metrics.CompletionTime.Update(float64(completion))
	span.WithInt("pool.completion", completion)
}

// CompletionTime returns 0 for an empty pool, otherwise the longest lane
// elapsed time plus the provisioning overhead, charged once per pool.
func (p *Pool) CompletionTime() int {
	if len(p.lanes) == 0 {
		return 0
	}
	longest := 0
	for _, aLane := range p.lanes {
		if elapsed := aLane.Elapsed(); elapsed > longest {
			longest = elapsed
		}
	}
	return longest + p.overhead
}

func (p *Pool) String() string {
	return fmt.Sprintf("Pool[lanes=%d;overhead=%d]", len(p.lanes), p.overhead)
}
