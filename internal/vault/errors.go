package vault

import (
	"errors"

	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/intcode"
	"github.com/sbkvault/sbk/internal/kdf"
	"github.com/sbkvault/sbk/internal/mnemonic"
	"github.com/sbkvault/sbk/internal/rs"
	"github.com/sbkvault/sbk/internal/secure"
	"github.com/sbkvault/sbk/internal/shamir"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

// translate maps an internal package's sentinel error to the
// corresponding pkg/sbkerrors sentinel, preserving err as Cause via
// Wrap so the original detail survives in Unwrap. Errors that are
// already nil, or that don't match a known sentinel, pass through
// unchanged (the latter is always a bug in the pipeline itself, not
// user input, so it deliberately isn't given a friendlier code).
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, intcode.ErrBadOrder):
		return sbkerrors.Wrap(sbkerrors.ErrBadOrder, "%v", err)
	case errors.Is(err, intcode.ErrInvalidFormat), errors.Is(err, intcode.ErrOddLength):
		return sbkerrors.Wrap(sbkerrors.ErrCorrupt, "%v", err)
	case errors.Is(err, mnemonic.ErrUnknownWord):
		return sbkerrors.Wrap(sbkerrors.ErrUnknownWord, "%v", err)
	case errors.Is(err, rs.ErrNotEnoughData):
		return sbkerrors.Wrap(sbkerrors.ErrNotEnoughData, "%v", err)
	case errors.Is(err, rs.ErrCorrupt):
		return sbkerrors.Wrap(sbkerrors.ErrCorrupt, "%v", err)
	case errors.Is(err, header.ErrUnsupportedVersion):
		return sbkerrors.Wrap(sbkerrors.ErrUnsupportedVersion, "%v", err)
	case errors.Is(err, header.ErrInvalidScheme), errors.Is(err, header.ErrInvalidLength):
		return sbkerrors.Wrap(sbkerrors.ErrInvalidScheme, "%v", err)
	case errors.Is(err, secure.ErrInsufficientEntropy):
		return sbkerrors.Wrap(sbkerrors.ErrInsufficientEntropy, "%v", err)
	case errors.Is(err, secure.ErrCancelled), errors.Is(err, kdf.ErrCancelled):
		return sbkerrors.Wrap(sbkerrors.ErrCancelled, "%v", err)
	case errors.Is(err, shamir.ErrThresholdInvalid), errors.Is(err, shamir.ErrTooFewShares),
		errors.Is(err, shamir.ErrDuplicateX), errors.Is(err, shamir.ErrSecretEmpty),
		errors.Is(err, shamir.ErrLengthMismatch), errors.Is(err, shamir.ErrNotEnoughShares),
		errors.Is(err, shamir.ErrNoShares):
		return sbkerrors.Wrap(sbkerrors.ErrInvalidScheme, "%v", err)
	case errors.Is(err, shamir.ErrSelfCheckFailed):
		return sbkerrors.Wrap(sbkerrors.ErrInternalRoundTripFailure, "%v", err)
	default:
		return err
	}
}
