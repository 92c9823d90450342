// Package model contains the in-memory representation of the items priced by
// the grid pricer: the item itself with its one-shot result slot, the item
// category that determines its processing duration and the execution mode
// shared by every lane of a run.
package model
