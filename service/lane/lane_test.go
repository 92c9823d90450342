package lane

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/internal/clock"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/progress"
	"github.com/viant/gridpricer/service/event"
	"github.com/viant/gridpricer/service/pricing"
)

func TestLane_MarginalTime(t *testing.T) {
	testCases := []struct {
		name      string
		queued    []model.Category
		candidate model.Category
		expect    int
	}{
		{name: "empty lane", candidate: model.Long, expect: 10},
		{name: "one fast queued", queued: []model.Category{model.Fast}, candidate: model.SemiFast, expect: 7},
		{name: "mixed queue", queued: []model.Category{model.Long, model.SemiFast, model.Fast}, candidate: model.Fast, expect: 19},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			aLane := New()
			for _, category := range tc.queued {
				aLane.Enqueue(model.NewItem(category))
			}
			candidate := model.NewItem(tc.candidate)
			committed := aLane.Committed()
			for i := 0; i < 3; i++ {
				assert.Equal(t, tc.expect, aLane.MarginalTime(candidate))
			}
			assert.Equal(t, committed, aLane.Committed())
			assert.Equal(t, len(tc.queued), aLane.Len())
		})
	}
}

func TestLane_ExecuteAccelerated(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	aLane := New(WithName("local"), WithScope(scope))
	items := model.NewBatch(2, 1, 1)
	for _, item := range items {
		assert.True(t, aLane.Enqueue(item))
	}
	for _, item := range items {
		_, err := item.Price()
		assert.ErrorIs(t, err, model.ErrResultNotReady)
	}

	ctx, tracker := progress.WithNewTracker(context.Background(), "run", "greedy", nil)
	aLane.Execute(ctx)

	assert.Equal(t, 2+2+5+10, aLane.Elapsed())
	assert.Equal(t, aLane.Elapsed(), aLane.CompletionTime())
	assert.Equal(t, 19*pricing.DefaultTimeUnit, aLane.ElapsedDuration())
	assert.Equal(t, 4, tracker.Snapshot().PricedItems)
	for _, item := range items {
		price, err := item.Price()
		require.NoError(t, err)
		assert.Equal(t, pricing.FixedPrice, price)
	}
	assert.EqualValues(t, 4, counterValue(scope, "items_priced"))
	assert.EqualValues(t, 4, counterValue(scope, "items_enqueued"))

	// executed once, read-only after
	late := model.NewItem(model.Fast)
	assert.False(t, aLane.Enqueue(late))
	assert.Equal(t, 4, aLane.Len())
	assert.EqualValues(t, 1, counterValue(scope, "enqueue_rejects"))
	aLane.Execute(ctx)
	assert.False(t, late.IsPriced())
	assert.Equal(t, 19, aLane.Elapsed())
}

func TestLane_ExecuteEmpty(t *testing.T) {
	aLane := New(WithMode(model.ModeRealtime), WithTimeUnit(time.Millisecond))
	aLane.Execute(context.Background())
	assert.Equal(t, 0, aLane.Elapsed())
}

func TestLane_ExecuteRealtime(t *testing.T) {
	unit := 20 * time.Millisecond
	aLane := New(WithMode(model.ModeRealtime), WithTimeUnit(unit))
	items := model.NewBatch(2, 1, 0)
	for _, item := range items {
		aLane.Enqueue(item)
	}
	started := time.Now()
	aLane.Execute(context.Background())
	took := time.Since(started)

	assert.Equal(t, 9, aLane.Elapsed())
	assert.GreaterOrEqual(t, took, 9*unit)
	assert.InDelta(t, float64(9*unit), float64(aLane.ElapsedDuration()), float64(unit)/2)
	for _, item := range items {
		assert.True(t, item.IsPriced())
	}
}

func TestLane_PartialResults(t *testing.T) {
	gate := make(chan struct{})
	clock.SleepFunc = func(time.Duration) { <-gate }
	defer func() { clock.SleepFunc = time.Sleep }()

	aLane := New(WithMode(model.ModeRealtime))
	first, second := model.NewItem(model.Long), model.NewItem(model.Fast)
	aLane.Enqueue(first)
	aLane.Enqueue(second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		aLane.Execute(context.Background())
	}()

	gate <- struct{}{}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	price, err := first.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, pricing.FixedPrice, price)
	assert.False(t, second.IsPriced())

	gate <- struct{}{}
	<-done
	assert.True(t, second.IsPriced())
}

func TestLane_Events(t *testing.T) {
	srv := event.New()
	defer srv.Shutdown()
	received := make(chan *event.Event[model.Priced], 3)
	event.SetListenerOf[model.Priced](srv, func(e *event.Event[model.Priced]) {
		received <- e
	})

	aLane := New(WithName("grid-0"), WithPublisher(event.PublisherOf[model.Priced](srv)))
	items := model.NewBatch(1, 1, 1)
	for _, item := range items {
		aLane.Enqueue(item)
	}
	aLane.Execute(context.Background())

	for _, item := range items {
		select {
		case e := <-received:
			assert.Equal(t, item.ID, e.Data.ID)
			assert.Equal(t, pricing.FixedPrice, e.Data.Price)
			assert.Equal(t, "grid-0", e.Context.Lane)
			assert.Equal(t, event.TypePriced, e.Context.EventType)
		case <-time.After(time.Second):
			t.Fatalf("missing event for %v", item)
		}
	}
}

func TestLane_CustomPricer(t *testing.T) {
	aLane := New(WithPricer(pricing.Func(func(ctx context.Context, item *model.Item) int {
		return pricing.DurationOf(item) * 100
	})))
	item := model.NewItem(model.SemiFast)
	aLane.Place(item)
	aLane.Execute(context.Background())
	price, err := item.Price()
	require.NoError(t, err)
	assert.Equal(t, 500, price)
}

func counterValue(scope tally.TestScope, name string) int64 {
	for _, counter := range scope.Snapshot().Counters() {
		if counter.Name() == name {
			return counter.Value()
		}
	}
	return 0
}

func TestLane_ClosedPublisher(t *testing.T) {
	srv := event.New()
	event.SetListenerOf[model.Priced](srv, func(e *event.Event[model.Priced]) {})
	publisher := event.PublisherOf[model.Priced](srv)
	srv.Shutdown()

	scope := tally.NewTestScope("", nil)
	aLane := New(WithPublisher(publisher), WithScope(scope))
	items := model.NewBatch(1100, 0, 0)
	for _, item := range items {
		assert.True(t, aLane.Place(item))
	}
	aLane.Execute(context.Background())

	assert.Equal(t, 2*1100, aLane.Elapsed())
	assert.EqualValues(t, 1100, counterValue(scope, "items_priced"))
	assert.EqualValues(t, 1100, counterValue(scope, "events_dropped"))
	assert.False(t, aLane.Place(model.NewItem(model.Fast)))
}
