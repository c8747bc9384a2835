package shamir

import "errors"

var (
	// ErrThresholdInvalid is returned when t < 2.
	ErrThresholdInvalid = errors.New("shamir: threshold must be at least 2")

	// ErrTooFewShares is returned when fewer x-coordinates than the
	// threshold are supplied to Split.
	ErrTooFewShares = errors.New("shamir: number of x-coordinates must be >= threshold")

	// ErrDuplicateX is returned when Split or Join is given duplicate
	// or zero x-coordinates.
	ErrDuplicateX = errors.New("shamir: x-coordinates must be distinct and non-zero")

	// ErrSecretEmpty is returned when Split is called with an empty secret.
	ErrSecretEmpty = errors.New("shamir: secret must not be empty")

	// ErrNoShares is returned when Join is called with no shares.
	ErrNoShares = errors.New("shamir: no shares provided")

	// ErrNotEnoughShares is returned when Join is given fewer shares
	// than are needed to determine a unique polynomial. The pipeline
	// above this package is responsible for verifying reconstruction
	// via round trip before disclosing a secret.
	ErrNotEnoughShares = errors.New("shamir: not enough shares to reconstruct")

	// ErrLengthMismatch is returned when shares carry bodies of
	// different lengths.
	ErrLengthMismatch = errors.New("shamir: shares have mismatched body lengths")

	// ErrSelfCheckFailed is returned when Split's internal subset
	// round-trip validation fails, indicating a bug in the arithmetic
	// rather than bad input. It should never occur in correct use.
	ErrSelfCheckFailed = errors.New("shamir: internal reconstruction self-check failed")
)
