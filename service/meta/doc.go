// Package meta loads YAML resources through afs, expanding ${env.KEY}
// expressions before decoding.
package meta
