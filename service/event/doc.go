// Package event carries typed notifications, such as an item becoming
// priced, from lanes to an optional listener over an in-memory queue.
package event
