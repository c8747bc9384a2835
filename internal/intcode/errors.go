package intcode

import "errors"

var (
	// ErrBadOrder is returned when a decoded group's mod-13 ordering
	// index does not match the position expected by the decoder,
	// indicating two groups were transposed (or one is simply out of
	// place) within a 13-group window.
	ErrBadOrder = errors.New("intcode: bad order (mod-13 index mismatch)")

	// ErrInvalidFormat is returned when a group is not six decimal
	// digits (with or without the displayed hyphen).
	ErrInvalidFormat = errors.New("intcode: invalid group format")

	// ErrOddLength is returned when an encode input has an odd number
	// of bytes; intcodes always carry exactly two bytes per group.
	ErrOddLength = errors.New("intcode: data length must be even")
)
