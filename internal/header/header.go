// Package header implements the bit-packed parameter header that
// prefixes every salt, brainkey, and share artifact: a version, the
// KDF cost parameters, and (for shares only) the share's x-coordinate
// and threshold. KDF memory and time costs are stored in a lossy
// exponential encoding, so headers stay small (2 or 3 bytes) across a
// wide parameter range at the cost of snapping values to the nearest
// representable point.
package header

import (
	"fmt"
	"math"
)

// Version0 is the only header version this codec understands.
const Version0 = 0

// KDFParallelism is the Argon2id parallelism every header implies; it
// is not itself encoded, since the format fixes it rather than
// storing it.
const KDFParallelism = 128

// MinThreshold and MaxThreshold bound the Shamir threshold a 3-bit
// sss_t field (stored as threshold-2) can express.
const (
	MinThreshold = 2
	MaxThreshold = 9
)

// base is the exponential encoding's growth factor: each increment of
// an encoded exponent field multiplies the decoded value by roughly
// this much.
const base = 1.125

const (
	SaltLen  = 2
	ShareLen = 3

	// BrainkeyLen is the brainkey header's encoded length. A brainkey
	// header carries the same fields as a salt header (SSSX elided),
	// so it is the same 2-byte shape; BrainkeyLen is a distinct name
	// so call sites read as what they mean rather than borrowing
	// SaltLen's name for an artifact that isn't a salt.
	BrainkeyLen = SaltLen
)

// Parameters is the decoded form of a header. SSSX is 0 for a salt or
// brainkey header (neither has share-specific fields); SSSN cannot be
// recovered from a header alone, since the format only stores the
// threshold, so a decoded share's SSSN is always set equal to SSST.
type Parameters struct {
	Version int

	KDFMemoryMiB int
	KDFTimeIters int

	SSSX int
	SSST int
	SSSN int
}

func paramCoeffs(b float64) (s, o int) {
	s = int(1 / (b - 1))
	o = int(1 - float64(s))
	return s, o
}

// paramExp maps an encoded exponent n back to its represented value.
func paramExp(n int, b float64) int {
	s, o := paramCoeffs(b)
	v := math.Pow(b, float64(n))*float64(s) + float64(o)
	return int(math.Round(v))
}

// paramLog maps a value to the exponent whose paramExp is nearest to
// it, clamped to a non-negative integer.
func paramLog(v int, b float64) int {
	s, o := paramCoeffs(b)
	n := math.Log(float64(v-o)/float64(s)) / math.Log(b)
	rounded := int(math.Round(n))
	if rounded < 0 {
		rounded = 0
	}
	return rounded
}

// SnapKDFParams rounds kdfM (MiB) and kdfT (iterations) to the
// nearest values representable by the exponential encoding, without
// requiring a full Parameters value. The KDF orchestrator uses this
// to snap its calibration output before committing to it.
func SnapKDFParams(kdfM, kdfT int) (snappedM, snappedT int) {
	kdfMEnc := paramLog(kdfM/100, base)
	kdfTEnc := paramLog(kdfT, base)
	return paramExp(kdfMEnc, base) * 100, paramExp(kdfTEnc, base)
}

// NewParameters validates and constructs Parameters for a fresh
// artifact. kdfM (MiB) is taken in whole units of 100, truncating any
// remainder, and both kdfM and kdfT are snapped here to the nearest
// values the exponential encoding can represent.
func NewParameters(kdfM, kdfT, sssX, sssT, sssN int) (Parameters, error) {
	kdfMEnc := paramLog(kdfM/100, base)
	kdfTEnc := paramLog(kdfT, base)
	snappedM := paramExp(kdfMEnc, base) * 100
	snappedT := paramExp(kdfTEnc, base)

	if sssT < MinThreshold || sssT > MaxThreshold {
		return Parameters{}, fmt.Errorf("%w: sss_t=%d", ErrInvalidScheme, sssT)
	}
	if snappedM%100 != 0 {
		return Parameters{}, fmt.Errorf("%w: kdf_m=%d is not a multiple of 100 after snapping", ErrInvalidScheme, snappedM)
	}

	return Parameters{
		Version:      Version0,
		KDFMemoryMiB: snappedM,
		KDFTimeIters: snappedT,
		SSSX:         sssX,
		SSST:         sssT,
		SSSN:         sssN,
	}, nil
}

// Encode renders p as a header. If p.SSSX is 0, the result is a
// 2-byte salt/brainkey header; otherwise it is a 3-byte share header
// carrying p.SSSX (1-based) and p.SSST.
func Encode(p Parameters) ([]byte, error) {
	kdfMEnc := paramLog(p.KDFMemoryMiB/100, base)
	kdfTEnc := paramLog(p.KDFTimeIters, base)
	if kdfMEnc&0x3F != kdfMEnc {
		return nil, fmt.Errorf("%w: kdf_m encodes to an out-of-range exponent", ErrInvalidScheme)
	}
	if kdfTEnc&0x3F != kdfTEnc {
		return nil, fmt.Errorf("%w: kdf_t encodes to an out-of-range exponent", ErrInvalidScheme)
	}

	encoded := uint32(p.Version) | uint32(kdfMEnc)<<4 | uint32(kdfTEnc)<<10

	if p.SSSX <= 0 {
		buf := make([]byte, SaltLen)
		buf[0] = byte(encoded)
		buf[1] = byte(encoded >> 8)
		return buf, nil
	}

	if p.SSST < MinThreshold || p.SSST > MaxThreshold {
		return nil, fmt.Errorf("%w: sss_t=%d", ErrInvalidScheme, p.SSST)
	}
	sssXEnc := p.SSSX - 1
	sssTEnc := p.SSST - 2
	if sssXEnc&0x1F != sssXEnc {
		return nil, fmt.Errorf("%w: sss_x=%d out of range", ErrInvalidScheme, p.SSSX)
	}

	encoded |= uint32(sssXEnc) << 16
	encoded |= uint32(sssTEnc) << 21

	buf := make([]byte, ShareLen)
	buf[0] = byte(encoded)
	buf[1] = byte(encoded >> 8)
	buf[2] = byte(encoded >> 16)
	return buf, nil
}

// Decode parses a 2-byte salt/brainkey header or 3-byte share header
// back to Parameters.
func Decode(data []byte) (Parameters, error) {
	var isSalt bool
	var padded [3]byte
	switch len(data) {
	case SaltLen:
		isSalt = true
		padded[0], padded[1] = data[0], data[1]
	case ShareLen:
		isSalt = false
		padded[0], padded[1], padded[2] = data[0], data[1], data[2]
	default:
		return Parameters{}, ErrInvalidLength
	}

	encoded := uint32(padded[0]) | uint32(padded[1])<<8 | uint32(padded[2])<<16

	version := int(encoded & 0x0F)
	if version != Version0 {
		return Parameters{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	kdfMEnc := int((encoded >> 4) & 0x3F)
	kdfTEnc := int((encoded >> 10) & 0x3F)
	kdfM := paramExp(kdfMEnc, base) * 100
	kdfT := paramExp(kdfTEnc, base)

	if isSalt {
		return Parameters{
			Version:      version,
			KDFMemoryMiB: kdfM,
			KDFTimeIters: kdfT,
			SSSX:         0,
			SSST:         MinThreshold,
			SSSN:         MinThreshold,
		}, nil
	}

	sssXEnc := int((encoded >> 16) & 0x1F)
	sssTEnc := int((encoded >> 21) & 0x07)
	sssX := sssXEnc + 1
	sssT := sssTEnc + 2
	if sssT < MinThreshold || sssT > MaxThreshold {
		return Parameters{}, fmt.Errorf("%w: sss_t=%d", ErrInvalidScheme, sssT)
	}

	return Parameters{
		Version:      version,
		KDFMemoryMiB: kdfM,
		KDFTimeIters: kdfT,
		SSSX:         sssX,
		SSST:         sssT,
		SSSN:         sssT,
	}, nil
}
