// Package vault implements the end-to-end generation and recovery
// pipelines: deriving a wallet seed from a memorized salt phrase and a
// freshly drawn brainkey, splitting the salt and brainkey together
// (the master key) into Shamir shares,
// and rendering every artifact (salt, brainkey, share) as a
// self-validated header-prefixed intcode/mnemonic grid.
package vault

import (
	"context"
	"time"

	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/kdf"
)

// Artifact bundles a header-prefixed raw body with its rendered
// intcode and mnemonic display forms, mirroring the shape every
// generated or recovered salt/brainkey/share artifact takes.
type Artifact struct {
	Header   header.Parameters
	Body     []byte // header-prefixed bytes: header || raw payload
	Intcodes []string
	Mnemonic []string
}

// ShareArtifact is one Shamir share's artifact, additionally carrying
// its x-coordinate for display.
type ShareArtifact struct {
	Artifact
	X int
}

// Config bounds the pipeline's byte lengths, mirroring the source's
// DEFAULT_RAW_SALT_LEN/DEFAULT_BRAINKEY_LEN constants, plus how long
// Generate will wait for the process entropy floor before giving up.
type Config struct {
	RawSaltLen     int
	RawBrainkeyLen int

	// EntropyWaitTimeout bounds step 2 of Generate. Zero means use
	// defaultEntropyWaitTimeout.
	EntropyWaitTimeout time.Duration
}

// DefaultConfig matches the source's defaults: a 13-byte raw salt and
// an 8-byte raw brainkey.
var DefaultConfig = Config{RawSaltLen: 13, RawBrainkeyLen: 8}

// GenerateInput collects everything Generate needs beyond what
// Config and the KDF parameters already pin.
type GenerateInput struct {
	SaltPhrase string
	WalletName string
	SharesetID string
	Threshold  int
	Shares     int
	KDFParams  kdf.Params
	Progress   func(stage string, pct float64)
}

// GenerateResult is everything Generate produces: the salt and
// brainkey artifacts, one artifact per share, and the derived wallet
// seed. No field is populated unless every internal self-check
// passed.
type GenerateResult struct {
	Salt     Artifact
	Brainkey Artifact
	Shares   []ShareArtifact
	Seed     []byte
}

// ctxOrBackground returns ctx, or context.Background() if ctx is nil,
// so callers that don't care about cancellation can pass nil.
func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
