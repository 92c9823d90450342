package pricing

import (
	"context"

	"github.com/viant/gridpricer/model"
)

// FixedPrice is the value returned by the stub pricing computation.
const FixedPrice = 42

// Price computes the item price. The computation is owned by an external
// pricing library; this is its deterministic stand-in.
func Price(_ *model.Item) int {
	return FixedPrice
}

// Pricer computes an item price. Implementations must be total and safe for
// concurrent use by many lanes.
type Pricer interface {
	Price(ctx context.Context, item *model.Item) int
}

// Func adapts a plain function to the Pricer interface.
type Func func(ctx context.Context, item *model.Item) int

// Price implements Pricer
func (f Func) Price(ctx context.Context, item *model.Item) int {
	return f(ctx, item)
}

type stub struct{}

func (stub) Price(_ context.Context, item *model.Item) int {
	return Price(item)
}

// Stub returns the default Pricer backed by Price.
func Stub() Pricer {
	return stub{}
}
