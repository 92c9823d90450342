package pricing

import (
	"time"

	"github.com/viant/gridpricer/model"
)

const (
	// DefaultOverhead is the one-time lane provisioning latency of a pool,
	// expressed in time units.
	DefaultOverhead = 8

	// DefaultTimeUnit is the wall-clock length of one time unit in real-time mode.
	DefaultTimeUnit = time.Second
)

var durations = map[model.Category]int{
	model.Fast:     2,
	model.SemiFast: 5,
	model.Long:     10,
}

// Duration returns the processing duration of a category in time units.
func Duration(category model.Category) int {
	return durations[category]
}

// DurationOf returns the processing duration of an item in time units.
func DurationOf(item *model.Item) int {
	return Duration(item.Category)
}

// Sum returns the total duration of the supplied items.
func Sum(items []*model.Item) int {
	total := 0
	for _, item := range items {
		total += DurationOf(item)
	}
	return total
}
