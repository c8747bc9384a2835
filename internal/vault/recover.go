package vault

import (
	"context"

	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/intcode"
	"github.com/sbkvault/sbk/internal/kdf"
	"github.com/sbkvault/sbk/internal/mnemonic"
	"github.com/sbkvault/sbk/internal/rs"
	"github.com/sbkvault/sbk/internal/shamir"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

// GroupEntry is one user-entered group of a salt, brainkey, or share
// artifact: either an intcode string or a word pair, corresponding to
// the same two-byte position in the encoded body. At most one of
// Intcode/Words should be set; both nil means the position has not
// been entered yet.
type GroupEntry struct {
	Intcode *string
	Words   *[2]string
}

// assembleParts decodes every GroupEntry into its two bytes, preferring
// whichever of Intcode/Words the caller supplied, and validating the
// intcode ordering index against the group's position (idxOffset 0,
// matching how every artifact in this package is encoded).
func assembleParts(entries []GroupEntry) (intcode.PartVals, error) {
	intcodeGroups := make([]*string, len(entries))
	for i, e := range entries {
		intcodeGroups[i] = e.Intcode
	}
	parts, err := intcode.DecodeParts(intcodeGroups, 0)
	if err != nil {
		return nil, translate(err)
	}

	for i, e := range entries {
		if e.Words == nil {
			continue
		}
		decoded, err := mnemonic.WordsToBytes(e.Words[:])
		if err != nil {
			return nil, translate(err)
		}
		parts[i*2] = []byte{decoded[0]}
		parts[i*2+1] = []byte{decoded[1]}
	}
	return parts, nil
}

// decodeMessage assembles entries and recovers the msgLen-byte
// message they encode, tolerating missing groups and a bounded number
// of disagreements exactly as intcode.DecodeMessage does, but allowing
// each two-byte position to come from either an intcode group or a
// mnemonic word pair.
func decodeMessage(entries []GroupEntry, msgLen int) ([]byte, error) {
	parts, err := assembleParts(entries)
	if err != nil {
		return nil, err
	}

	packets := make([]*byte, len(parts))
	for i, p := range parts {
		if p != nil {
			b := p[0]
			packets[i] = &b
		}
	}
	data, err := rs.Decode(packets, msgLen)
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

// RecoverFromSaltBrainkey decodes a salt artifact and a brainkey
// artifact from user-entered groups, verifies their headers agree on
// scheme parameters, re-derives the wallet seed, and returns it.
// saltMsgLen and brainkeyMsgLen are the encoded body lengths (both
// header-prefixed) that the entered groups must reconstruct.
func RecoverFromSaltBrainkey(ctx context.Context, saltEntries, brainkeyEntries []GroupEntry, saltMsgLen, brainkeyMsgLen int, walletName string, progress func(float64)) ([]byte, error) {
	ctx = ctxOrBackground(ctx)

	saltBody, err := decodeMessage(saltEntries, saltMsgLen)
	if err != nil {
		return nil, err
	}
	if len(saltBody) < header.SaltLen {
		return nil, sbkerrors.ErrCorrupt
	}
	params, err := header.Decode(saltBody[:header.SaltLen])
	if err != nil {
		return nil, translate(err)
	}
	rawSalt := saltBody[header.SaltLen:]

	brainkeyBody, err := decodeMessage(brainkeyEntries, brainkeyMsgLen)
	if err != nil {
		return nil, err
	}
	if len(brainkeyBody) < header.BrainkeyLen {
		return nil, sbkerrors.ErrCorrupt
	}
	brainkeyParams, err := header.Decode(brainkeyBody[:header.BrainkeyLen])
	if err != nil {
		return nil, translate(err)
	}
	if brainkeyParams.Version != params.Version ||
		brainkeyParams.KDFMemoryMiB != params.KDFMemoryMiB ||
		brainkeyParams.KDFTimeIters != params.KDFTimeIters {
		return nil, sbkerrors.ErrCorrupt
	}
	rawBrainkey := brainkeyBody[header.BrainkeyLen:]

	kdfParams := kdf.Params{Parallelism: header.KDFParallelism, MemoryMiB: params.KDFMemoryMiB, TimeIters: params.KDFTimeIters}
	return kdf.DeriveSeed(ctx, rawSalt, rawBrainkey, walletName, kdfParams, progress)
}

// RecoverFromShares decodes threshold share artifacts from
// user-entered groups, verifies their headers agree on scheme
// parameters, rejoins them into the master key, splits that back into
// raw salt and raw brainkey per cfg, and re-derives the wallet seed.
// shareMsgLen gives each share's encoded body length (header included).
func RecoverFromShares(ctx context.Context, cfg Config, shareEntries [][]GroupEntry, shareMsgLen int, walletName string, progress func(float64)) ([]byte, error) {
	ctx = ctxOrBackground(ctx)

	if len(shareEntries) == 0 {
		return nil, sbkerrors.ErrNotEnoughData
	}

	shares := make([]shamir.Share, len(shareEntries))
	var reference *header.Parameters

	for i, entries := range shareEntries {
		body, err := decodeMessage(entries, shareMsgLen)
		if err != nil {
			return nil, err
		}
		if len(body) < header.ShareLen {
			return nil, sbkerrors.ErrCorrupt
		}
		params, err := header.Decode(body[:header.ShareLen])
		if err != nil {
			return nil, translate(err)
		}

		if reference == nil {
			reference = &params
		} else if params.Version != reference.Version ||
			params.KDFMemoryMiB != reference.KDFMemoryMiB ||
			params.KDFTimeIters != reference.KDFTimeIters ||
			params.SSST != reference.SSST {
			return nil, sbkerrors.ErrSharesFromDifferentSecrets
		}

		shares[i] = shamir.Share{X: byte(params.SSSX), Y: body[header.ShareLen:]}
	}

	masterKey, err := shamir.Join(shares)
	if err != nil {
		return nil, translate(err)
	}
	if len(masterKey) != cfg.RawSaltLen+cfg.RawBrainkeyLen {
		return nil, sbkerrors.ErrCorrupt
	}

	rawSalt := masterKey[:cfg.RawSaltLen]
	rawBrainkey := masterKey[cfg.RawSaltLen:]

	kdfParams := kdf.Params{Parallelism: header.KDFParallelism, MemoryMiB: reference.KDFMemoryMiB, TimeIters: reference.KDFTimeIters}
	return kdf.DeriveSeed(ctx, rawSalt, rawBrainkey, walletName, kdfParams, progress)
}
