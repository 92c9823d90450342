package lane

import (
	"context"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/internal/clock"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/progress"
	"github.com/viant/gridpricer/service/event"
	"github.com/viant/gridpricer/service/placement"
	"github.com/viant/gridpricer/service/pricing"
	"github.com/viant/gridpricer/tracing"
	"go.uber.org/atomic"
)

// DefaultName is used when no name option is supplied.
const DefaultName = "local"

// Lane executes its queued items sequentially. Items are appended before
// execution starts; the lane executes exactly once and is read-only after.
type Lane struct {
	name      string
	mode      model.Mode
	timeUnit  time.Duration
	pricer    pricing.Pricer
	publisher *event.Publisher[model.Priced]
	metrics   *Metrics

	items     []*model.Item
	committed int

	started  atomic.Bool
	once     sync.Once
	elapsed  atomic.Int64
	measured atomic.Duration
}

var _ placement.Target = (*Lane)(nil)

// New creates an empty lane.
func New(options ...Option) *Lane {
	ret := &Lane{
		name:     DefaultName,
		mode:     model.ModeAccelerated,
		timeUnit: pricing.DefaultTimeUnit,
		pricer:   pricing.Stub(),
		metrics:  NewMetrics(tally.NoopScope),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Name returns the lane name.
func (l *Lane) Name() string {
	return l.name
}

// Mode returns the lane execution mode.
func (l *Lane) Mode() model.Mode {
	return l.mode
}

// Enqueue appends item to the tail of the queue. Items offered once execution
// has started are rejected and stay pending; it returns false in that case.
func (l *Lane) Enqueue(item *model.Item) bool {
	if l.started.Load() {
		l.metrics.EnqueueRejects.Inc(1)
		log.WithFields(log.Fields{"lane": l.name, "item": item.ID}).Warn("lane already started, item rejected")
		return false
	}
	l.items = append(l.items, item)
	l.committed += pricing.DurationOf(item)
	l.metrics.ItemsEnqueued.Inc(1)
	return true
}

// Place implements placement.Target
func (l *Lane) Place(item *model.Item) bool {
	return l.Enqueue(item)
}

// MarginalTime returns the total time the lane would need if item were
// appended now.
func (l *Lane) MarginalTime(item *model.Item) int {
	return l.committed + pricing.DurationOf(item)
}

// Committed returns the sum of queued item durations.
func (l *Lane) Committed() int {
	return l.committed
}

// Len returns the number of queued items.
func (l *Lane) Len() int {
	return len(l.items)
}

// Items returns a copy of the queue in enqueue order.
func (l *Lane) Items() []*model.Item {
	return append([]*model.Item(nil), l.items...)
}

// Execute prices every queued item in enqueue order. Each item is resolved as
// soon as it is computed, before the rest of the lane finishes. Subsequent
// calls are no-ops.
func (l *Lane) Execute(ctx context.Context) {
	l.once.Do(func() {
		l.execute(ctx)
	})
}

func (l *Lane) execute(ctx context.Context) {
	l.started.Store(true)
	ctx, span := tracing.StartSpan(ctx, "lane.execute "+l.name, "INTERNAL")
	span.WithAttributes(map[string]string{"lane.name": l.name, "lane.mode": string(l.mode)})
	span.WithInt("lane.items", len(l.items))
	defer tracing.EndSpan(span, nil)

	logger := log.WithFields(log.Fields{"lane": l.name, "items": len(l.items), "mode": l.mode})
	logger.Debug("lane started")

	realtime := l.mode.IsRealtime()
	started := clock.Now()
	units := 0
	for _, item := range l.items {
		itemStarted := clock.Now()
		duration := pricing.DurationOf(item)
		if realtime {
			clock.Sleep(time.Duration(duration) * l.timeUnit)
		} else {
			units += duration
		}
		item.Resolve(l.pricer.Price(ctx, item))
		l.metrics.ItemsPriced.Inc(1)
		progress.UpdateCtx(ctx, progress.Delta{Priced: 1})
		l.publish(ctx, item, clock.Since(itemStarted))
	}

	if realtime {
		measured := clock.Since(started)
		l.measured.Store(measured)
		units = int(math.Round(float64(measured) / float64(l.timeUnit)))
	} else {
		l.measured.Store(time.Duration(units) * l.timeUnit)
	}
	l.elapsed.Store(int64(units))
	l.metrics.Elapsed.Update(float64(units))
	span.WithInt("lane.elapsed", units)
	logger.WithField("elapsed", units).Debug("lane finished")
}

func (l *Lane) publish(ctx context.Context, item *model.Item, took time.Duration) {
	if l.publisher == nil {
		return
	}
	snapshot, err := item.Snapshot()
	if err != nil {
		return
	}
	eCtx := &event.Context{
		ItemID:      item.ID,
		Lane:        l.name,
		EventType:   event.TypePriced,
		TimeTakenMs: int(took.Milliseconds()),
	}
	if err = l.publisher.Publish(ctx, event.NewEvent(eCtx, *snapshot)); err != nil {
		l.metrics.EventsDropped.Inc(1)
		log.WithError(err).WithFields(log.Fields{"lane": l.name, "item": item.ID}).Debug("priced event dropped")
	}
}

// Elapsed returns the realized execution time in time units: the sum of item
// durations in accelerated mode, measured wall clock in real-time mode.
// An empty or not yet executed lane reports 0.
func (l *Lane) Elapsed() int {
	return int(l.elapsed.Load())
}

// ElapsedDuration returns the realized execution time as a duration.
func (l *Lane) ElapsedDuration() time.Duration {
	return l.measured.Load()
}

// CompletionTime implements placement.Target
func (l *Lane) CompletionTime() int {
	return l.Elapsed()
}
