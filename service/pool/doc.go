// Package pool implements the elastic grid: a creation-ordered set of serial
// lanes that execute concurrently with each other. The pool reuses slack of
// existing lanes first-fit and provisions a new lane only when no existing
// lane can absorb an item without raising the longest lane.
package pool
