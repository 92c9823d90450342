package gridpricer

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/internal/idgen"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/progress"
	"github.com/viant/gridpricer/service/dao/item"
	"github.com/viant/gridpricer/service/dispatcher"
	"github.com/viant/gridpricer/service/event"
	"github.com/viant/gridpricer/service/lane"
	"github.com/viant/gridpricer/service/messaging/memory"
	"github.com/viant/gridpricer/service/pool"
	"github.com/viant/gridpricer/service/pricing"
	"github.com/viant/gridpricer/service/strategy"
	"github.com/viant/gridpricer/tracing"
)

// Service schedules batches with the configured strategy. Every Schedule call
// gets a fresh local lane and an empty grid.
type Service struct {
	config           *Config
	scope            tally.Scope
	pricer           pricing.Pricer
	strategy         strategy.Strategy
	events           *event.Service
	publisher        *event.Publisher[model.Priced]
	pricedListener   func(*event.Event[model.Priced])
	progressListener func(progress.Progress)
}

// New creates a service. It fails when the configuration is invalid.
func New(options ...Option) (*Service, error) {
	ret := &Service{
		config: DefaultConfig(),
		scope:  tally.NoopScope,
		pricer: pricing.Stub(),
	}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	mode, err := model.ParseMode(string(s.config.Mode))
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}
	s.config.Mode = mode
	if err = s.config.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if s.strategy, err = strategy.Lookup(s.config.Strategy); err != nil {
		return err
	}
	level, _ := log.ParseLevel(s.config.LogLevel)
	log.SetLevel(level)

	if t := s.config.Tracing; t.Enabled {
		if err = tracing.Init(t.ServiceName, t.ServiceVersion, t.OutputFile); err != nil {
			return errors.Wrap(err, "failed to init tracing")
		}
	}
	if s.pricedListener != nil {
		s.events = event.New(event.WithQueueConfig(func(string) memory.Config {
			return memory.Config{QueueBuffer: s.config.EventBuffer, DeadLetter: true}
		}))
		event.SetListenerOf[model.Priced](s.events, s.pricedListener)
		s.publisher = event.PublisherOf[model.Priced](s.events)
	}
	return nil
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// NewDispatcher creates a dispatcher over a fresh local lane and an empty
// grid, both following the service configuration.
func (s *Service) NewDispatcher() *dispatcher.Dispatcher {
	laneOptions := []lane.Option{
		lane.WithMode(s.config.Mode),
		lane.WithTimeUnit(s.config.TimeUnit),
		lane.WithPricer(s.pricer),
	}
	if s.publisher != nil {
		laneOptions = append(laneOptions, lane.WithPublisher(s.publisher))
	}
	local := lane.New(append(laneOptions,
		lane.WithName(lane.DefaultName),
		lane.WithScope(s.scope.SubScope("local")))...)
	grid := pool.New(
		pool.WithOverhead(s.config.Overhead),
		pool.WithLaneOptions(laneOptions...),
		pool.WithScope(s.scope.SubScope("grid")))
	return dispatcher.New(local, grid, dispatcher.WithScope(s.scope.SubScope("dispatcher")))
}

// Schedule places and prices items with the configured strategy and blocks
// until every lane has finished.
func (s *Service) Schedule(ctx context.Context, items []*model.Item) (run *Run, err error) {
	runID := idgen.New()
	ctx, span := tracing.StartSpan(ctx, "gridpricer.schedule", "INTERNAL")
	span.WithAttributes(map[string]string{"run.id": runID, "run.strategy": s.strategy.Name()})
	span.WithInt("run.items", len(items))
	defer func() { tracing.EndSpan(span, err) }()

	ctx, tracker := progress.WithNewTracker(ctx, runID, s.strategy.Name(), s.progressListener)
	store := item.New()
	for _, anItem := range items {
		if err = store.Save(ctx, anItem); err != nil {
			return nil, errors.Wrapf(err, "failed to register %v", anItem)
		}
	}

	d := s.NewDispatcher()
	results, err := s.strategy.Schedule(ctx, items, d)
	if err != nil {
		return nil, errors.Wrapf(err, "run %v", runID)
	}
	snapshot := tracker.Snapshot()
	run = &Run{
		ID:             runID,
		Strategy:       s.strategy.Name(),
		Results:        results,
		CompletionTime: d.CompletionTime(),
		LocalItems:     d.Local().(*lane.Lane).Len(),
		GridLanes:      d.Grid().(*pool.Pool).Len(),
		Progress:       &snapshot,
		items:          store,
	}
	span.WithInt("run.completion", run.CompletionTime)
	log.WithFields(log.Fields{
		"run":        runID,
		"strategy":   run.Strategy,
		"items":      len(items),
		"local":      run.LocalItems,
		"gridLanes":  run.GridLanes,
		"completion": run.CompletionTime,
	}).Info("batch priced")
	return run, nil
}

// DeadLetters returns the number of priced events whose listener panicked.
func (s *Service) DeadLetters() int {
	if s.events == nil {
		return 0
	}
	return event.DeadLettersOf[model.Priced](s.events)
}

// Shutdown stops the priced-event listener after delivering queued events.
// Lanes of later runs drop their priced events.
func (s *Service) Shutdown() {
	if s.events != nil {
		s.events.Shutdown()
	}
}
