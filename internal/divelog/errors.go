package divelog

import "errors"

var (
	// ErrDataFormat reports a dump that does not match the device
	// format: truncated buffers, inconsistent length prefixes, or an
	// out-of-range dive-mode code.
	ErrDataFormat = errors.New("dive data malformed")

	// ErrUnsupported reports a field that has no location in the
	// current dive mode's layout.
	ErrUnsupported = errors.New("field not supported in this dive mode")
)
