// Package pricing bridges lanes with the pricing computation. It owns the
// fixed duration table of each item category and the stub price function
// standing in for the externally owned pricing library.
package pricing
