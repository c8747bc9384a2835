package intcode

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodePartsRendersSixDigitGroups(t *testing.T) {
	groups, err := EncodeParts([]byte{0x01, 0x02, 0x03, 0x04}, 0)
	if err != nil {
		t.Fatalf("EncodeParts: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g) != 7 || g[3] != '-' {
			t.Fatalf("group %q is not ddd-ddd shaped", g)
		}
	}

	// idx=0: chk=0, bytes 0x01 0x02 -> bits = 0x000102 = 258
	if groups[0] != "000-258" {
		t.Fatalf("group 0 = %q, want 000-258", groups[0])
	}
	// idx=1: chk=1, bytes 0x03 0x04 -> bits = 0x010304 = 66308
	if groups[1] != "066-308" {
		t.Fatalf("group 1 = %q, want 066-308", groups[1])
	}
}

func TestEncodeDecodePartsRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	groups, err := EncodeParts(data, 0)
	if err != nil {
		t.Fatalf("EncodeParts: %v", err)
	}

	parts, err := DecodeParts(AllPresent(groups), 0)
	if err != nil {
		t.Fatalf("DecodeParts: %v", err)
	}

	got := make([]byte, 0, len(data))
	for _, p := range parts {
		if p == nil {
			t.Fatalf("unexpected missing part")
		}
		got = append(got, p[0])
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %x, want %x", got, data)
	}
}

func TestEncodeOddLengthRejected(t *testing.T) {
	if _, err := EncodeParts([]byte{0x01}, 0); !errors.Is(err, ErrOddLength) {
		t.Fatalf("expected ErrOddLength, got %v", err)
	}
}

// TestSwappedIntcodesAreDetected mirrors scenario S3: encoding
// 0x01 0x02 0x03 0x04 yields two intcodes at consecutive ordering
// indexes. Swapping them must raise ErrBadOrder on decode, since each
// group's embedded index then disagrees with the position it's
// decoded from.
func TestSwappedIntcodesAreDetected(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	groups, err := EncodeParts(data, 0)
	if err != nil {
		t.Fatalf("EncodeParts: %v", err)
	}

	swapped := []Group{groups[1], groups[0]}
	if _, err := DecodeParts(AllPresent(swapped), 0); !errors.Is(err, ErrBadOrder) {
		t.Fatalf("expected ErrBadOrder, got %v", err)
	}
}

func TestDecodePartsRejectsBadFormat(t *testing.T) {
	bad := "12-34"
	if _, err := DecodeParts([]*Group{&bad}, 0); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestDecodePartsTreatsBlankAsMissing(t *testing.T) {
	data := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	groups, err := EncodeParts(data, 0)
	if err != nil {
		t.Fatalf("EncodeParts: %v", err)
	}

	present := AllPresent(groups)
	present[0] = nil

	parts, err := DecodeParts(present, 0)
	if err != nil {
		t.Fatalf("DecodeParts: %v", err)
	}
	if parts[0] != nil || parts[1] != nil {
		t.Fatalf("expected first group's bytes to be missing")
	}
	if parts[2] == nil || parts[3] == nil {
		t.Fatalf("expected second group's bytes to be present")
	}
}

func TestOrderingWrapsAcrossThirteenGroups(t *testing.T) {
	data := make([]byte, 2*20)
	for i := range data {
		data[i] = byte(i*11 + 1)
	}
	groups, err := EncodeParts(data, 0)
	if err != nil {
		t.Fatalf("EncodeParts: %v", err)
	}
	if len(groups) != 20 {
		t.Fatalf("expected 20 groups, got %d", len(groups))
	}

	parts, err := DecodeParts(AllPresent(groups), 0)
	if err != nil {
		t.Fatalf("DecodeParts past a 13-group wrap: %v", err)
	}
	got := make([]byte, 0, len(data))
	for _, p := range parts {
		got = append(got, p[0])
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %x, want %x", got, data)
	}
}

func TestEncodeMessageDecodeMessageRoundTrip(t *testing.T) {
	msg := []byte("sbk artifact!!!!")
	groups, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	got, err := DecodeMessage(AllPresent(groups), len(msg))
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q, want %q", got, msg)
	}
}

func TestDecodeMessageToleratesOneMissingGroup(t *testing.T) {
	msg := []byte("0123456789abcdef")
	groups, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	present := AllPresent(groups)
	present[len(present)-1] = nil

	got, err := DecodeMessage(present, len(msg))
	if err != nil {
		t.Fatalf("DecodeMessage with one erasure: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q, want %q", got, msg)
	}
}
