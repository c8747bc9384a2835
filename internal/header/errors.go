package header

import "errors"

var (
	// ErrUnsupportedVersion is returned when a decoded header names a
	// version this codec does not know how to interpret.
	ErrUnsupportedVersion = errors.New("header: unsupported version")

	// ErrInvalidScheme is returned when a threshold or share count
	// falls outside the range this format can express.
	ErrInvalidScheme = errors.New("header: threshold out of supported range")

	// ErrInvalidLength is returned when Decode is given a byte string
	// that is neither a 2-byte salt header nor a 3-byte share header.
	ErrInvalidLength = errors.New("header: data is not a valid header length")
)
