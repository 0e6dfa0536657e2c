package tap

import "errors"

// ErrUnhandledFormat is returned by Configure for formats that do not
// describe a stream at all. Unsupported encodings are not errors; they leave
// the processor in pass-through mode.
var ErrUnhandledFormat = errors.New("tap: unhandled format")
