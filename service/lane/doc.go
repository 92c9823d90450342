// Package lane implements a serial execution lane: items are queued before
// execution and then priced strictly one after another, in enqueue order.
// A lane is used both as the standalone "local" side of the dispatcher and as
// a node of the elastic pool.
package lane
