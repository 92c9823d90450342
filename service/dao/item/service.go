// Package item provides the in-memory store of the items of a pricing run.
package item

import (
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/dao"
	"github.com/viant/gridpricer/service/dao/criteria"
	"github.com/viant/gridpricer/service/dao/store"
)

// Service keeps items by id
type Service struct {
	*store.MemoryStore[string, model.Item]
}

var _ dao.Service[string, model.Item] = (*Service)(nil)

// New creates an empty item store
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, model.Item](
			func(item *model.Item) string { return item.ID },
			store.WithFilter[string, model.Item](criteria.MatchItem),
		),
	}
}
