// Package messaging defines the generic queue abstraction used to move
// notifications (such as priced item events) between lanes and listeners.
package messaging
