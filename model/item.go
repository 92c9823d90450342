package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/viant/gridpricer/internal/idgen"
	"go.uber.org/atomic"
)

// Item represents a unit of work to be priced. Its identity and category never
// change; its result slot moves from pending to priced exactly once.
type Item struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`

	claimed atomic.Bool
	price   atomic.Int64
	priced  atomic.Bool
	once    sync.Once
	done    chan struct{}
}

// Priced is an immutable snapshot of a priced item.
type Priced struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Price    int      `json:"price" yaml:"price"`
}

// NewItem creates a pending item with a fresh unique identifier.
func NewItem(category Category) *Item {
	return NewItemWithID(idgen.New(), category)
}

// NewItemWithID creates a pending item with a caller supplied identifier.
func NewItemWithID(id string, category Category) *Item {
	return &Item{
		ID:       id,
		Category: category,
		done:     make(chan struct{}),
	}
}

// NewBatch creates fast, then semi-fast, then long items.
func NewBatch(fast, semiFast, long int) []*Item {
	ret := make([]*Item, 0, fast+semiFast+long)
	for i := 0; i < fast; i++ {
		ret = append(ret, NewItem(Fast))
	}
	for i := 0; i < semiFast; i++ {
		ret = append(ret, NewItem(SemiFast))
	}
	for i := 0; i < long; i++ {
		ret = append(ret, NewItem(Long))
	}
	return ret
}

// Resolve records the item price. Only the first call has an effect; it
// returns false when the item had already been priced.
func (i *Item) Resolve(price int) bool {
	if !i.claimed.CompareAndSwap(false, true) {
		return false
	}
	i.price.Store(int64(price))
	i.priced.Store(true)
	close(i.doneChan())
	return true
}

// IsPriced returns true once the item has been priced.
func (i *Item) IsPriced() bool {
	return i.priced.Load()
}

// Price returns the item price or ErrResultNotReady while the item is pending.
func (i *Item) Price() (int, error) {
	if !i.priced.Load() {
		return 0, errors.Wrapf(ErrResultNotReady, "item %v", i.ID)
	}
	return int(i.price.Load()), nil
}

// Done returns a channel closed when the item gets priced.
func (i *Item) Done() <-chan struct{} {
	return i.doneChan()
}

func (i *Item) doneChan() chan struct{} {
	i.once.Do(func() {
		if i.done == nil {
			i.done = make(chan struct{})
		}
	})
	return i.done
}

// Wait blocks until the item is priced or ctx is done.
func (i *Item) Wait(ctx context.Context) (int, error) {
	select {
	case <-i.doneChan():
		return i.Price()
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Snapshot returns the priced view of the item or ErrResultNotReady.
func (i *Item) Snapshot() (*Priced, error) {
	price, err := i.Price()
	if err != nil {
		return nil, err
	}
	return &Priced{ID: i.ID, Category: i.Category, Price: price}, nil
}

func (i *Item) String() string {
	return fmt.Sprintf("Item[%v;%v]", i.ID, i.Category)
}
