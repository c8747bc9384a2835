package vault

import (
	"context"
	"io"
	"time"

	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/intcode"
	"github.com/sbkvault/sbk/internal/kdf"
	"github.com/sbkvault/sbk/internal/mnemonic"
	"github.com/sbkvault/sbk/internal/secure"
	"github.com/sbkvault/sbk/internal/shamir"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

// defaultEntropyWaitTimeout bounds how long Generate waits, at step 2,
// for the process to have drawn enough bytes via secure.Random before
// it gives up and reports insufficient entropy rather than blocking
// indefinitely, when Config.EntropyWaitTimeout isn't set.
const defaultEntropyWaitTimeout = 2 * time.Second

// Generate runs the full key-generation pipeline: derive the raw salt
// from a memorized phrase, wait for an entropy floor, draw a fresh
// brainkey, split the resulting master key into Shamir shares, render
// every artifact, and self-validate each one before returning.
// brainkeyRNG is the randomness source for the brainkey itself
// (crypto/rand.Reader in production; a fixed reader in tests for
// reproducible scenarios). No result is returned unless every
// self-check below passed; no partial GenerateResult is ever handed
// back.
func Generate(ctx context.Context, cfg Config, in GenerateInput, brainkeyRNG io.Reader) (*GenerateResult, error) {
	ctx = ctxOrBackground(ctx)

	rawSalt := kdf.DeriveSaltFromPhrase(in.SaltPhrase, cfg.RawSaltLen)

	waitTimeout := cfg.EntropyWaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = defaultEntropyWaitTimeout
	}

	floor := int64(cfg.RawSaltLen + cfg.RawBrainkeyLen)
	if err := secure.WaitForEntropy(ctx, floor, waitTimeout); err != nil {
		return nil, translate(err)
	}

	rawBrainkey := make([]byte, cfg.RawBrainkeyLen)
	if _, err := io.ReadFull(brainkeyRNG, rawBrainkey); err != nil {
		return nil, sbkerrors.Wrap(sbkerrors.ErrInsufficientEntropy, "drawing brainkey: %v", err)
	}

	masterKey := make([]byte, 0, len(rawSalt)+len(rawBrainkey))
	masterKey = append(masterKey, rawSalt...)
	masterKey = append(masterKey, rawBrainkey...)

	coeffSource := coefficientRNG(rawSalt, in.SharesetID)

	xs := make([]byte, in.Shares)
	for i := range xs {
		xs[i] = byte(i + 1)
	}
	shares, err := shamir.Split(coeffSource, masterKey, xs, in.Threshold)
	if err != nil {
		return nil, translate(err)
	}

	saltHeader, err := header.NewParameters(in.KDFParams.MemoryMiB, in.KDFParams.TimeIters, 0, in.Threshold, in.Shares)
	if err != nil {
		return nil, translate(err)
	}
	saltHeaderBytes, err := header.Encode(saltHeader)
	if err != nil {
		return nil, translate(err)
	}
	saltBody := buildBody(saltHeaderBytes, rawSalt)
	saltIntcodes, saltWords, err := encodeArtifact(saltBody)
	if err != nil {
		return nil, err
	}

	brainkeyHeaderBytes, err := header.Encode(saltHeader)
	if err != nil {
		return nil, translate(err)
	}
	brainkeyBody := buildBody(brainkeyHeaderBytes, rawBrainkey)
	brainkeyIntcodes, brainkeyWords, err := encodeArtifact(brainkeyBody)
	if err != nil {
		return nil, err
	}

	shareArtifacts := make([]ShareArtifact, len(shares))
	for i, s := range shares {
		shareHeader, err := header.NewParameters(in.KDFParams.MemoryMiB, in.KDFParams.TimeIters, int(s.X), in.Threshold, in.Shares)
		if err != nil {
			return nil, translate(err)
		}
		shareHeaderBytes, err := header.Encode(shareHeader)
		if err != nil {
			return nil, translate(err)
		}
		shareBody := buildBody(shareHeaderBytes, s.Y)
		shareIntcodes, shareWords, err := encodeArtifact(shareBody)
		if err != nil {
			return nil, err
		}
		shareArtifacts[i] = ShareArtifact{
			Artifact: Artifact{Header: shareHeader, Body: shareBody, Intcodes: shareIntcodes, Mnemonic: shareWords},
			X:        int(s.X),
		}
	}

	// shamir.Split already re-joined every threshold-size subset of
	// its own output as an arithmetic self-check; this additionally
	// decodes the header of each of the first threshold shares'
	// rendered bodies (whose intcode and mnemonic round trips
	// encodeArtifact already checked), rejoins the bodies' payloads at
	// the decoded x-coordinates, and confirms the result still matches
	// masterKey.
	rejoinShares := make([]shamir.Share, in.Threshold)
	for i := 0; i < in.Threshold; i++ {
		body := shareArtifacts[i].Body
		shareParams, err := header.Decode(body[:header.ShareLen])
		if err != nil {
			return nil, sbkerrors.WithDetails(sbkerrors.ErrInternalRoundTripFailure, map[string]string{"stage": "share header decode"})
		}
		rejoinShares[i] = shamir.Share{X: byte(shareParams.SSSX), Y: body[header.ShareLen:]}
	}
	rejoined, err := shamir.Join(rejoinShares)
	if err != nil || !bytesEqual(rejoined, masterKey) {
		return nil, sbkerrors.WithDetails(sbkerrors.ErrInternalRoundTripFailure, map[string]string{"stage": "share rejoin"})
	}

	if !secure.MeetsEntropyFloor(rawSalt) || !secure.MeetsEntropyFloor(rawBrainkey) {
		return nil, sbkerrors.ErrInsufficientEntropy
	}

	seed, err := kdf.DeriveSeed(ctx, rawSalt, rawBrainkey, in.WalletName, in.KDFParams, progressFunc(in.Progress, "seed"))
	if err != nil {
		return nil, translate(err)
	}

	return &GenerateResult{
		Salt:     Artifact{Header: saltHeader, Body: saltBody, Intcodes: saltIntcodes, Mnemonic: saltWords},
		Brainkey: Artifact{Header: saltHeader, Body: brainkeyBody, Intcodes: brainkeyIntcodes, Mnemonic: brainkeyWords},
		Shares:   shareArtifacts,
		Seed:     seed,
	}, nil
}

// buildBody prepends headerBytes to rawBody.
func buildBody(headerBytes, rawBody []byte) []byte {
	body := make([]byte, 0, len(headerBytes)+len(rawBody))
	body = append(body, headerBytes...)
	body = append(body, rawBody...)
	return body
}

// encodeArtifact renders body as both an intcode group sequence and a
// mnemonic word sequence, verifying the mnemonic round trip (the
// intcode round trip is already self-checked inside
// intcode.EncodeMessage).
func encodeArtifact(body []byte) (intcodes []string, words []string, err error) {
	groups, err := intcode.EncodeMessage(body)
	if err != nil {
		return nil, nil, translate(err)
	}

	words = mnemonic.BytesToWords(body)
	decoded, err := mnemonic.WordsToBytes(words)
	if err != nil || !bytesEqual(decoded, body) {
		return nil, nil, sbkerrors.WithDetails(sbkerrors.ErrInternalRoundTripFailure, map[string]string{"stage": "mnemonic round trip"})
	}

	return []string(groups), words, nil
}

// progressFunc adapts a stage-labeled progress callback to the plain
// func(float64) kdf.Derive expects, or returns nil if cb is nil so
// kdf.Derive skips the progress-smoothing goroutine entirely.
func progressFunc(cb func(stage string, pct float64), stage string) func(float64) {
	if cb == nil {
		return nil
	}
	return func(pct float64) { cb(stage, pct) }
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
