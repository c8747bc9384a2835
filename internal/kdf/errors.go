package kdf

import "errors"

// ErrCancelled is returned when ctx is done before a derivation or
// calibration loop completes.
var ErrCancelled = errors.New("kdf: cancelled")
