package rs

import "errors"

var (
	// ErrNotEnoughData is returned by Decode when fewer than msgLen
	// packets are present in the input.
	ErrNotEnoughData = errors.New("rs: not enough data to recover message")

	// ErrCorrupt is returned by Decode when no candidate dominates the
	// majority vote after exhausting the subset search.
	ErrCorrupt = errors.New("rs: message too corrupt to recover")
)
