// Package sbkerrors provides the structured error type and sentinel
// errors used across the vault pipeline. Every externally observable
// failure is a tagged *Error rather than a bare string, so callers can
// branch on Code without parsing messages.
package sbkerrors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes, one per error class plus success/general.
const (
	ExitSuccess     = 0 // Successful execution
	ExitGeneral     = 1 // Unclassified error
	ExitUserInput   = 2 // User-correctable: re-prompt and retry
	ExitEnvironment = 3 // Environmental: back off and retry or abort
	ExitIntegrity   = 4 // Fatal/integrity: no secrets disclosed, process terminates
)

// Class groups sentinels by how a caller should react to them, beyond
// the bare ExitCode: UserInput errors are worth re-prompting for,
// Environment errors are worth a backoff-and-retry, Integrity errors
// are not recoverable and must abort without disclosing a secret.
type Class int

const (
	ClassUnclassified Class = iota
	ClassUserInput
	ClassEnvironment
	ClassIntegrity
)

// Error is the structured error type every sentinel below is an
// instance of.
type Error struct {
	Code       string            // Machine-readable error code, from the taxonomy in §6
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for the caller
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI use
	Class      Class             // How a caller should react: re-prompt, back off, or abort
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error: two *Error values match if their
// Code matches, regardless of Details/Cause/Suggestion.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors, one per entry in the error-code taxonomy.
var (
	// ErrInsufficientEntropy: entropy floor not met after wait.
	ErrInsufficientEntropy = &Error{
		Code:     "INSUFFICIENT_ENTROPY",
		Message:  "insufficient entropy in generated material",
		ExitCode: ExitEnvironment,
		Class:    ClassEnvironment,
	}

	// ErrUnsupportedVersion: header version not recognized.
	ErrUnsupportedVersion = &Error{
		Code:     "UNSUPPORTED_VERSION",
		Message:  "unsupported header version",
		ExitCode: ExitIntegrity,
		Class:    ClassIntegrity,
	}

	// ErrBadOrder: intcode mod-13 index mismatch.
	ErrBadOrder = &Error{
		Code:     "BAD_ORDER",
		Message:  "intcode group is out of order",
		ExitCode: ExitUserInput,
		Class:    ClassUserInput,
	}

	// ErrUnknownWord: mnemonic token has no neighbor within distance 4.
	ErrUnknownWord = &Error{
		Code:     "UNKNOWN_WORD",
		Message:  "mnemonic word is not recognized",
		ExitCode: ExitUserInput,
		Class:    ClassUserInput,
	}

	// ErrNotEnoughData: decode called with fewer than msg_len groups.
	ErrNotEnoughData = &Error{
		Code:     "NOT_ENOUGH_DATA",
		Message:  "not enough groups entered to decode",
		ExitCode: ExitUserInput,
		Class:    ClassUserInput,
	}

	// ErrCorrupt: no dominant candidate during RS voting.
	ErrCorrupt = &Error{
		Code:     "CORRUPT",
		Message:  "entered data is too corrupt to recover",
		ExitCode: ExitUserInput,
		Class:    ClassUserInput,
	}

	// ErrSharesFromDifferentSecrets: header disagreement among shares.
	ErrSharesFromDifferentSecrets = &Error{
		Code:     "SHARES_FROM_DIFFERENT_SECRETS",
		Message:  "entered shares do not agree on scheme parameters",
		ExitCode: ExitIntegrity,
		Class:    ClassIntegrity,
	}

	// ErrInvalidScheme: sss_t > sss_n or sss_t out of range.
	ErrInvalidScheme = &Error{
		Code:     "INVALID_SCHEME",
		Message:  "threshold scheme parameters are invalid",
		ExitCode: ExitUserInput,
		Class:    ClassUserInput,
	}

	// ErrCancelled: user cancelled.
	ErrCancelled = &Error{
		Code:     "CANCELLED",
		Message:  "operation cancelled",
		ExitCode: ExitEnvironment,
		Class:    ClassEnvironment,
	}

	// ErrInternalRoundTripFailure: self-validation in the generation
	// pipeline failed; no secrets were disclosed.
	ErrInternalRoundTripFailure = &Error{
		Code:     "INTERNAL_ROUND_TRIP_FAILURE",
		Message:  "generated artifact failed its own self-validation",
		ExitCode: ExitIntegrity,
		Class:    ClassIntegrity,
	}
)

// New creates an Error with the given code and message, defaulting to
// ExitGeneral.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message, ExitCode: ExitGeneral}
}

// Wrap attaches additional message context to err, preserving its
// Code/Details/Suggestion/ExitCode if it is (or wraps) an *Error.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)

	var se *Error
	if errors.As(err, &se) {
		return &Error{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
			Class:      se.Class,
		}
	}
	return &Error{Code: "GENERAL_ERROR", Message: msg, Cause: err, ExitCode: ExitGeneral}
}

// WithDetails returns a copy of err with Details set.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return &Error{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
			Class:      se.Class,
		}
	}
	return &Error{Code: "GENERAL_ERROR", Message: err.Error(), Details: details, Cause: err, ExitCode: ExitGeneral}
}

// WithSuggestion returns a copy of err with Suggestion set.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return &Error{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
			Class:      se.Class,
		}
	}
	return &Error{Code: "GENERAL_ERROR", Message: err.Error(), Suggestion: suggestion, Cause: err, ExitCode: ExitGeneral}
}

// ExitCode returns the CLI exit code for err (ExitSuccess for nil,
// ExitGeneral for an error that isn't an *Error).
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *Error
	if errors.As(err, &se) {
		return se.ExitCode
	}
	return ExitGeneral
}

// Code returns err's machine-readable code, or "GENERAL_ERROR" if it
// isn't an *Error.
func Code(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// ClassOf returns err's Class, or ClassUnclassified if it isn't an
// *Error. Callers (chiefly internal/cli) use this to decide uniformly
// whether to re-prompt, back off, or abort without a type switch over
// every sentinel.
func ClassOf(err error) Class {
	var se *Error
	if errors.As(err, &se) {
		return se.Class
	}
	return ClassUnclassified
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool { return errors.Is(err, target) }

// As wraps errors.As for convenience.
func As(err error, target any) bool { return errors.As(err, target) }
