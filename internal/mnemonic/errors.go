package mnemonic

import "errors"

var (
	// ErrUnknownWord is returned when a decoded token is not in the
	// wordlist and no entry is within a Damerau-Levenshtein distance of
	// 4, so no correction can be made in good confidence.
	ErrUnknownWord = errors.New("mnemonic: unknown word, no plausible correction")
)
