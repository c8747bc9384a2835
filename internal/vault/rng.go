package vault

import (
	"crypto/sha256"
	"io"
	"math/rand/v2"

	"golang.org/x/crypto/hkdf"
)

// coefficientRNG returns a deterministic, cryptographically
// constructed byte stream seeded from rawSalt and sharesetID: the
// same (raw_salt, shareset_id) pair always produces the same stream,
// so repeated Split calls with identical inputs produce identical
// shares, while different share-sets (or different salts) diverge.
// The seed is stretched through HKDF rather than used directly, and
// the stream itself comes from ChaCha8 rather than a raw counter, so
// this is deterministic without being a weak, predictable generator.
func coefficientRNG(rawSalt []byte, sharesetID string) io.Reader {
	extractor := hkdf.New(sha256.New, rawSalt, nil, []byte(sharesetID))
	var seed [32]byte
	if _, err := io.ReadFull(extractor, seed[:]); err != nil {
		// hkdf.New's Reader only fails if more output is requested than
		// the underlying hash can stretch to safely; 32 bytes from
		// SHA-256-based HKDF is far under that limit.
		panic("vault: hkdf seed derivation failed: " + err.Error())
	}
	return rand.NewChaCha8(seed)
}
