package viz

import "errors"

// ErrBusClosed is returned by Bus.Start after Close.
var ErrBusClosed = errors.New("viz: bus closed")
