package pool

import (
	"github.com/uber-go/tally/v4"
	"github.com/viant/gridpricer/service/lane"
)

// Option configures a Pool
type Option func(*Pool)

// WithOverhead sets the one-time provisioning overhead in time units
func WithOverhead(overhead int) Option {
	return func(p *Pool) {
		if overhead >= 0 {
			p.overhead = overhead
		}
	}
}

// WithLaneOptions sets options applied to every lane the pool provisions
func WithLaneOptions(options ...lane.Option) Option {
	return func(p *Pool) {
		p.laneOptions = append(p.laneOptions, options...)
	}
}

// WithScope sets the metrics scope; lanes report under its "lane" sub-scope
func WithScope(scope tally.Scope) Option {
	return func(p *Pool) {
		if scope != nil {
			p.scope = scope
		}
	}
}
