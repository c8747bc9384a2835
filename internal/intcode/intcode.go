// Package intcode implements the six-digit decimal "intcode" transport
// encoding: each group carries two data bytes plus a mod-13 ordering
// index that detects a group having been transposed or dropped in
// place within any 13-group window. Combined with the rs package's
// redundancy, a full artifact survives a bounded number of missing or
// misread groups.
package intcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sbkvault/sbk/internal/rs"
)

// modulus is the ordering-index period. 13 is small enough to fit in
// 4 bits (0-15) with room to spare, and large enough that accidental
// transpositions of nearby groups are very unlikely to share an index.
const modulus = 13

// Group is the rendered six-digit, hyphenated form of one intcode,
// e.g. "012-345".
type Group = string

// EncodeParts renders data (which must have even length) as one group
// per byte pair, with ordering indexes starting at idxOffset.
func EncodeParts(data []byte, idxOffset int) ([]Group, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddLength
	}

	groups := make([]Group, len(data)/2)
	for i := range groups {
		idx := idxOffset + i
		chk := idx % modulus
		bits := (chk << 16) | (int(data[i*2]) << 8) | int(data[i*2+1])
		groups[i] = render(bits)
	}
	return groups, nil
}

func render(bits int) Group {
	s := fmt.Sprintf("%06d", bits)
	return s[:3] + "-" + s[3:]
}

// PartVals holds the decoded bytes of a group sequence, two per group,
// with a nil entry marking a byte that is not yet known (the group was
// absent, blank, or failed to parse as plain whitespace).
type PartVals = [][]byte

// DecodeParts parses groups (nil entries mark groups the user has not
// entered yet) into PartVals. idxOffset sets the ordering index
// expected of the first group, exactly mirroring the offset passed to
// EncodeParts. A present group whose ordering index does not match the
// position expected from idxOffset and its own position in groups
// fails with ErrBadOrder; a present group that is not six decimal
// digits fails with ErrInvalidFormat. Both errors are wrapped with the
// offending group's index so a caller can point the user at the
// specific bad group.
func DecodeParts(groups []*Group, idxOffset int) (PartVals, error) {
	expectedChk := idxOffset % modulus

	parts := make(PartVals, len(groups)*2)
	for i, g := range groups {
		if g != nil && strings.TrimSpace(*g) != "" {
			b0, b1, err := parseGroup(*g, byte(expectedChk))
			if err != nil {
				return nil, fmt.Errorf("intcode: group %d: %w", i, err)
			}
			parts[i*2] = []byte{b0}
			parts[i*2+1] = []byte{b1}
		}
		expectedChk = (expectedChk + 1) % modulus
	}
	return parts, nil
}

func parseGroup(g string, expectedChk byte) (byte0, byte1 byte, err error) {
	cleaned := strings.ReplaceAll(g, "-", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if len(cleaned) != 6 {
		return 0, 0, ErrInvalidFormat
	}
	bits, err := strconv.Atoi(cleaned)
	if err != nil || bits < 0 || bits > 0xFFFFF {
		return 0, 0, ErrInvalidFormat
	}

	chk := byte(bits >> 16)
	byte0 = byte((bits >> 8) & 0xFF)
	byte1 = byte(bits & 0xFF)

	if chk != expectedChk {
		return 0, 0, ErrBadOrder
	}
	return byte0, byte1, nil
}

// EncodeMessage encodes data as a full intcode sequence: data is
// padded with Reed-Solomon-style ecc bytes so that the total byte
// count is a multiple of 4 (the conventional display splits the
// result evenly into a data half and an ecc half), then every byte
// pair is rendered as a group. Before returning, EncodeMessage decodes
// its own output and verifies it reproduces data, matching the
// pipeline-level self-validation the spec requires before any artifact
// is disclosed.
func EncodeMessage(data []byte) ([]Group, error) {
	totalLen := len(data) * 2
	for totalLen%4 != 0 {
		totalLen++
	}
	eccLen := totalLen - len(data)

	block := rs.Encode(data, eccLen)
	groups, err := EncodeParts(block, 0)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeMessage(AllPresent(groups), len(data))
	if err != nil || !bytesEqual(decoded, data) {
		return nil, fmt.Errorf("intcode: round trip check failed: %w", err)
	}
	return groups, nil
}

// DecodeMessage decodes a (possibly incomplete or corrupted) group
// sequence back to a msgLen-byte message, via the rs package's
// erasure/corruption-tolerant decode.
func DecodeMessage(groups []*Group, msgLen int) ([]byte, error) {
	parts, err := DecodeParts(groups, 0)
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
	return rs.Decode(packets, msgLen)
}

// AllPresent wraps every group in groups as a non-nil *Group, for
// callers (like EncodeMessage's self-check) that have a complete,
// freshly-produced sequence with no erasures.
func AllPresent(groups []Group) []*Group {
	out := make([]*Group, len(groups))
	for i := range groups {
		out[i] = &groups[i]
	}
	return out
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
