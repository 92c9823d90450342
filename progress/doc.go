// Package progress defines primitives for reporting and aggregating the
// progress of a pricing run. Lanes and the dispatcher update counters found in
// the context, so a caller can observe partial completion while lanes are
// still executing.
package progress
