// Package dispatcher splits work between one local lane and the elastic grid,
// routing every item to whichever side grows the least.
package dispatcher
