// Package dao defines the generic entity store contract used to keep the
// items of a pricing run addressable by id.
package dao
