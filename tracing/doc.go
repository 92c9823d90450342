// Package tracing integrates OpenTelemetry with the grid pricer so that a
// pricing run, the dispatcher sides and every lane execution show up as
// nested spans.
package tracing
