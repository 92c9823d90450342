package strategy

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	mux        sync.RWMutex
	strategies = make(map[string]Strategy)
)

func init() {
	Register(GreedyName, NewGreedy)
	Register(ArrivalName, NewArrival)
}

// Register creates a strategy and keeps it under name. Duplicate names and
// nil strategies are rejected.
func Register(name string, strategyFunc func() Strategy) {
	if strategyFunc == nil {
		log.WithField("name", name).Error("invalid strategy creator function")
		return
	}
	mux.Lock()
	defer mux.Unlock()
	if _, registered := strategies[name]; registered {
		log.WithField("name", name).Error("strategy already registered")
		return
	}
	strategy := strategyFunc()
	if strategy == nil {
		log.WithField("name", name).Error("nil strategy created")
		return
	}
	strategies[name] = strategy
}

// Lookup returns the strategy registered under name
func Lookup(name string) (Strategy, error) {
	mux.RLock()
	defer mux.RUnlock()
	strategy, ok := strategies[name]
	if !ok {
		return nil, errors.Errorf("unknown strategy: %q", name)
	}
	return strategy, nil
}

// Names returns the registered strategy names, sorted
func Names() []string {
	mux.RLock()
	defer mux.RUnlock()
	result := make([]string, 0, len(strategies))
	for name := range strategies {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
