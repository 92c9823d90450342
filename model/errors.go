package model

import "errors"

// ErrResultNotReady is returned when a price is read from an item that has not
// been priced yet. It signals a caller error: the item's lane has not executed.
var ErrResultNotReady = errors.New("result not ready")
