// Package placement defines the contract shared by every component that can
// accept items and run them: a single serial lane, a pool of lanes, or any
// alternative implementation the dispatcher should route to.
package placement

import (
	"context"

	"github.com/viant/gridpricer/model"
)

// Target accepts items before execution and runs them once.
type Target interface {
	// MarginalTime estimates the completion time the target would incur if
	// item were added now. It never mutates the target.
	MarginalTime(item *model.Item) int

	// Place assigns the item to the target. It returns false when the target
	// has already started executing and the item stays pending.
	Place(item *model.Item) bool

	// Execute runs every placed item and returns once all of them are priced.
	Execute(ctx context.Context)

	// CompletionTime returns the realized completion time; valid after Execute.
	CompletionTime() int
}
