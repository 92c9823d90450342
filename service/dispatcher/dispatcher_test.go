package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/lane"
	"github.com/viant/gridpricer/service/pool"
	"github.com/viant/gridpricer/service/pricing"
)

func TestDispatcher_Place(t *testing.T) {
	testCases := []struct {
		name       string
		ordered    []model.Category
		sides      []Side
		gridLanes  int
		completion int
	}{
		{
			name:       "semi-fast then fast stay local",
			ordered:    []model.Category{model.SemiFast, model.Fast},
			sides:      []Side{SideLocal, SideLocal},
			completion: 7,
		},
		{
			name:       "long, semi-fast, fast",
			ordered:    []model.Category{model.Long, model.SemiFast, model.Fast},
			sides:      []Side{SideLocal, SideGrid, SideGrid},
			gridLanes:  2,
			completion: 13,
		},
		{
			name:       "two semi-fast, four fast",
			ordered:    []model.Category{model.SemiFast, model.SemiFast, model.Fast, model.Fast, model.Fast, model.Fast},
			sides:      []Side{SideLocal, SideLocal, SideGrid, SideGrid, SideGrid, SideGrid},
			gridLanes:  4,
			completion: 10,
		},
		{
			name:       "two long, semi-fast, fast",
			ordered:    []model.Category{model.Long, model.Long, model.SemiFast, model.Fast},
			sides:      []Side{SideLocal, SideGrid, SideGrid, SideGrid},
			gridLanes:  2,
			completion: 18,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDefault(model.ModeAccelerated, pricing.DefaultTimeUnit)
			var items []*model.Item
			for i, category := range tc.ordered {
				item := model.NewItem(category)
				items = append(items, item)
				assert.Equal(t, tc.sides[i], d.Place(item), "item %d", i)
			}
			d.Execute(context.Background())
			assert.Equal(t, tc.completion, d.CompletionTime())
			assert.Equal(t, tc.gridLanes, d.Grid().(*pool.Pool).Len())
			for _, item := range items {
				price, err := item.Price()
				require.NoError(t, err)
				assert.Equal(t, pricing.FixedPrice, price)
			}
		})
	}
}

func TestDispatcher_Route(t *testing.T) {
	d := NewDefault(model.ModeAccelerated, pricing.DefaultTimeUnit)
	d.Place(model.NewItem(model.Fast))
	d.Place(model.NewItem(model.SemiFast))

	// local would reach 9, a new grid lane 10
	fast := model.NewItem(model.Fast)
	assert.Equal(t, SideLocal, d.Route(fast))
	// local 17 against grid 18
	long := model.NewItem(model.Long)
	assert.Equal(t, SideLocal, d.Route(long))

	tie := New(lane.New(), pool.New(pool.WithOverhead(0)))
	assert.Equal(t, SideLocal, tie.Route(model.NewItem(model.Long)))
}

func TestDispatcher_MarginalTime(t *testing.T) {
	d := NewDefault(model.ModeAccelerated, pricing.DefaultTimeUnit)
	d.Place(model.NewItem(model.Long))
	d.Place(model.NewItem(model.SemiFast))

	local := d.Local().(*lane.Lane)
	grid := d.Grid().(*pool.Pool)
	for _, candidate := range model.NewBatch(1, 1, 1) {
		expect := max(local.MarginalTime(candidate), grid.MarginalTime(candidate))
		for i := 0; i < 3; i++ {
			assert.Equal(t, expect, d.MarginalTime(candidate))
		}
	}
	assert.Equal(t, 1, local.Len())
	assert.Equal(t, 1, grid.Len())
	assert.Equal(t, 10, local.Committed())
}

func TestDispatcher_Metrics(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	d := New(lane.New(), pool.New(), WithScope(scope))
	for _, item := range model.NewBatch(0, 1, 1) {
		d.Place(item)
	}
	d.Execute(context.Background())

	counters := map[string]int64{}
	for _, counter := range scope.Snapshot().Counters() {
		counters[counter.Name()] = counter.Value()
	}
	assert.EqualValues(t, 2, counters["placements.local"])
	assert.EqualValues(t, 0, counters["placements.grid"])
	for _, gauge := range scope.Snapshot().Gauges() {
		if gauge.Name() == "completion_time" {
			assert.EqualValues(t, 15, gauge.Value())
		}
	}
}

func TestDispatcher_PlaceAfterExecute(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	local := lane.New()
	d := New(local, pool.New(), WithScope(scope))
	d.Place(model.NewItem(model.Fast))
	d.Execute(context.Background())

	late := model.NewItem(model.Fast)
	assert.Equal(t, SideLocal, d.Place(late))
	assert.False(t, late.IsPriced())
	assert.Equal(t, 1, local.Len())
	assert.Equal(t, 2, d.CompletionTime())

	counters := map[string]int64{}
	for _, counter := range scope.Snapshot().Counters() {
		counters[counter.Name()] = counter.Value()
	}
	assert.EqualValues(t, 1, counters["placements.local"])
	assert.EqualValues(t, 1, counters["placements.rejected"])
}

func TestDispatcher_Realtime(t *testing.T) {
	unit := 5 * time.Millisecond
	accelerated := NewDefault(model.ModeAccelerated, unit)
	realtime := NewDefault(model.ModeRealtime, unit)
	for _, d := range []*Dispatcher{accelerated, realtime} {
		for _, category := range []model.Category{model.Long, model.SemiFast, model.Fast} {
			d.Place(model.NewItem(category))
		}
		d.Execute(context.Background())
	}
	assert.Equal(t, 13, accelerated.CompletionTime())
	assert.InDelta(t, accelerated.CompletionTime(), realtime.CompletionTime(), 1)
}
