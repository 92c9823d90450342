// Package progress provides a lightweight tracker that keeps aggregated
// counters (items total, placed, priced) for a single pricing run. The tracker
// instance lives in the context, every component that receives the context
// can update the counters via the Delta helper without a global registry.

package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the strategy,
// dispatcher or lanes.
type Delta struct {
	Total  int
	Local  int
	Grid   int
	Priced int
}

// Progress keeps aggregated item counters of one run. It is safe for
// concurrent use.
type Progress struct {
	RunID     string
	Strategy  string
	StartedAt time.Time

	TotalItems  int
	LocalItems  int
	GridItems   int
	PricedItems int

	sync.Mutex
	onChange func(Progress)
}

// Pending returns the number of items not priced yet.
func (p *Progress) Pending() int {
	return p.TotalItems - p.PricedItems
}

// Update applies the supplied delta to the tracker. It is safe to call from
// multiple goroutines. The onChange callback, if any, is invoked with a copy
// of the tracker outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.TotalItems += d.Total
	p.LocalItems += d.Local
	p.GridItems += d.Grid
	p.PricedItems += d.Priced
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:       p.RunID,
		Strategy:    p.Strategy,
		StartedAt:   p.StartedAt,
		TotalItems:  p.TotalItems,
		LocalItems:  p.LocalItems,
		GridItems:   p.GridItems,
		PricedItems: p.PricedItems,
	}
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables the callback.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both.
func WithNewTracker(ctx context.Context, runID, strategy string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Strategy:  strategy,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
