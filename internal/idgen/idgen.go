package idgen

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// NewFunc returns a new globally unique identifier. Override in tests.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier produced by NewFunc.
func New() string { return NewFunc() }

// Sequential returns a generator producing prefix-1, prefix-2, ... Each
// generator keeps its own counter, there is no process wide state.
func Sequential(prefix string) func() string {
	counter := atomic.NewInt64(0)
	return func() string {
		return fmt.Sprintf("%v-%d", prefix, counter.Inc())
	}
}
