package secure

import "errors"

var (
	// ErrInsufficientEntropy is returned by WaitForEntropy when the
	// draw counter has not reached floor by the deadline.
	ErrInsufficientEntropy = errors.New("secure: insufficient entropy")

	// ErrCancelled is returned by WaitForEntropy when ctx is done
	// before the floor is met.
	ErrCancelled = errors.New("secure: cancelled")
)
