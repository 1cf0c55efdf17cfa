package kernel

import "errors"

// ErrBusy is returned by Run when another run is already in flight on the
// same kernel.
var ErrBusy = errors.New("a run is already in progress")
