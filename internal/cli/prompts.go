package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/sbkvault/sbk/internal/secure"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

// stdinReader is shared across every line-based prompt in this
// package so interleaved promptGroupLine calls read consecutive
// lines from the same buffer rather than each wrapping os.Stdin fresh
// and losing any bytes already buffered ahead of a newline.
//
//nolint:gochecknoglobals // single shared reader over process stdin
var stdinReader = bufio.NewReader(os.Stdin)

// promptHiddenLine prompts for a single line of input with hidden
// (non-echoing) terminal input, the way a password is entered.
func promptHiddenLine(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	line, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return line, nil
}

// promptSaltPhrase prompts for the memorized salt phrase used to
// derive the raw salt, with confirmation so a typo during generation
// doesn't silently produce an undocumented salt.
func promptSaltPhrase(confirm bool) ([]byte, error) {
	phrase, err := promptHiddenLine("Enter salt phrase: ")
	if err != nil {
		return nil, err
	}

	if len(phrase) == 0 {
		return nil, sbkerrors.WithSuggestion(sbkerrors.ErrNotEnoughData, "salt phrase cannot be empty")
	}

	if !confirm {
		return phrase, nil
	}

	confirmation, err := promptHiddenLine("Confirm salt phrase: ")
	if err != nil {
		secure.Zero(phrase)
		return nil, err
	}
	defer secure.Zero(confirmation)

	if string(phrase) != string(confirmation) {
		secure.Zero(phrase)
		return nil, sbkerrors.WithSuggestion(sbkerrors.ErrCancelled, "salt phrases do not match")
	}

	return phrase, nil
}

// promptConfirmation asks the user to confirm a displayed artifact
// was transcribed correctly before moving on.
func promptConfirmation(question string) bool {
	out(os.Stderr, "\n%s [y/N]: ", question)

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// promptGroupLine prompts for one group of recovery input: either a
// six-digit intcode group or a two-word mnemonic pair, depending on
// what the user chooses to type. The returned string is untouched so
// the caller can decide how to parse it.
func promptGroupLine(label string) (string, error) {
	out(os.Stderr, "%s: ", label)

	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}
