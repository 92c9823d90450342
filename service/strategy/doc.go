// Package strategy decides the order in which a batch is offered to a
// dispatcher, executes the placement and collects per-item prices in input
// order.
package strategy
