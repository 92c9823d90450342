package pool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/lane"
	"github.com/viant/gridpricer/service/pricing"
	"go.uber.org/goleak"
)

type PoolSuite struct {
	suite.Suite
	scope tally.TestScope
	pool  *Pool
}

func (s *PoolSuite) SetupTest() {
	s.scope = tally.NewTestScope("", nil)
	s.pool = New(WithScope(s.scope))
}

func (s *PoolSuite) TearDownTest() {
	goleak.VerifyNone(s.T())
}

func TestPoolSuite(t *testing.T) {
	suite.Run(t, new(PoolSuite))
}

func (s *PoolSuite) TestEmptyPool() {
	for _, category := range model.Categories() {
		item := model.NewItem(category)
		s.Equal(pricing.Duration(category)+pricing.DefaultOverhead, s.pool.MarginalTime(item))
		_, ok := s.pool.AbsorbingLaneIndex(item)
		s.False(ok)
	}
	s.pool.Execute(context.Background())
	s.Equal(0, s.pool.CompletionTime())
	s.Equal(0, s.pool.Len())
}

func (s *PoolSuite) TestPlacement() {
	long := model.NewItem(model.Long)
	s.pool.Place(long)
	s.Equal(1, s.pool.Len())

	fast := model.NewItem(model.Fast)
	s.Equal(2+pricing.DefaultOverhead, s.pool.MarginalTime(fast), "lane 0 would grow past 10")
	s.pool.Place(fast)
	s.Equal(2, s.pool.Len())

	semiFast := model.NewItem(model.SemiFast)
	index, ok := s.pool.AbsorbingLaneIndex(semiFast)
	s.True(ok)
	s.Equal(1, index)
	s.Equal(0, s.pool.MarginalTime(semiFast))
	s.pool.Place(semiFast)
	s.Equal(2, s.pool.Len())

	lanes := s.pool.Lanes()
	s.Equal("grid-0", lanes[0].Name())
	s.Equal("grid-1", lanes[1].Name())
	s.Equal(10, lanes[0].Committed())
	s.Equal(7, lanes[1].Committed())

	s.pool.Execute(context.Background())
	s.Equal(10+pricing.DefaultOverhead, s.pool.CompletionTime())
	for _, item := range []*model.Item{long, fast, semiFast} {
		price, err := item.Price()
		s.NoError(err)
		s.Equal(pricing.FixedPrice, price)
	}

	snapshot := s.scope.Snapshot()
	counters := map[string]int64{}
	for _, counter := range snapshot.Counters() {
		counters[counter.Name()] = counter.Value()
	}
	s.EqualValues(2, counters["lanes_provisioned"])
	s.EqualValues(1, counters["placements_absorbed"])
}

func (s *PoolSuite) TestFirstFit() {
	for i := 0; i < 3; i++ {
		s.pool.Place(model.NewItem(model.Long))
	}
	s.Equal(3, s.pool.Len(), "equal lanes leave no slack")
	_, ok := s.pool.AbsorbingLaneIndex(model.NewItem(model.Fast))
	s.False(ok)

	pool := New()
	pool.Place(model.NewItem(model.Long))
	pool.Place(model.NewItem(model.Fast))
	pool.Place(model.NewItem(model.Fast))
	index, ok := pool.AbsorbingLaneIndex(model.NewItem(model.Fast))
	s.True(ok)
	s.Equal(1, index)
	s.Equal(2, pool.Len())
	s.Equal(4, pool.Lanes()[1].Committed())
}

func (s *PoolSuite) TestMarginalTimeIdempotent() {
	s.pool.Place(model.NewItem(model.Long))
	s.pool.Place(model.NewItem(model.Fast))
	candidates := model.NewBatch(1, 1, 1)
	for _, candidate := range candidates {
		first := s.pool.MarginalTime(candidate)
		for i := 0; i < 3; i++ {
			s.Equal(first, s.pool.MarginalTime(candidate))
		}
	}
	s.Equal(2, s.pool.Len())
	s.Equal(12, s.pool.Lanes()[0].Committed()+s.pool.Lanes()[1].Committed())
}

func (s *PoolSuite) TestOverhead() {
	pool := New(WithOverhead(3))
	item := model.NewItem(model.SemiFast)
	s.Equal(8, pool.MarginalTime(item))
	pool.Place(item)
	pool.Execute(context.Background())
	s.Equal(8, pool.CompletionTime())
	s.Equal(3, pool.Overhead())
}

func TestPool_ExecuteRealtime(t *testing.T) {
	defer goleak.VerifyNone(t)
	unit := 10 * time.Millisecond
	pool := New(WithLaneOptions(lane.WithMode(model.ModeRealtime), lane.WithTimeUnit(unit)))
	pool.Place(model.NewItem(model.Long))
	pool.Place(model.NewItem(model.SemiFast))
	pool.Place(model.NewItem(model.SemiFast))
	assert.Equal(t, 2, pool.Len())
	for _, aLane := range pool.Lanes() {
		assert.Equal(t, model.ModeRealtime, aLane.Mode())
	}

	started := time.Now()
	pool.Execute(context.Background())
	took := time.Since(started)

	// lanes run concurrently: wall clock tracks the longest lane, not the sum
	assert.GreaterOrEqual(t, took, 10*unit)
	assert.Less(t, took, 20*unit)
	assert.InDelta(t, 10+pricing.DefaultOverhead, pool.CompletionTime(), 1)
}

func (s *PoolSuite) TestPlaceAfterExecute() {
	first := model.NewItem(model.Long)
	s.True(s.pool.Place(first))
	s.pool.Execute(context.Background())

	late := []*model.Item{model.NewItem(model.Long), model.NewItem(model.Fast)}
	for _, item := range late {
		s.False(s.pool.Place(item))
		s.False(item.IsPriced())
	}
	s.Equal(1, s.pool.Len(), "no lane provisioned after execution")
	s.pool.Execute(context.Background())
	s.Equal(10+pricing.DefaultOverhead, s.pool.CompletionTime())

	counters := map[string]int64{}
	for _, counter := range s.scope.Snapshot().Counters() {
		counters[counter.Name()] = counter.Value()
	}
	s.EqualValues(2, counters["placement_rejects"])
	s.EqualValues(1, counters["lanes_provisioned"])
}
