package tag

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the fixed byte width of an account address.
const AddressLength = 32

// Address is a fixed-width account address.
// The zero value is the all-zeros address.
type Address [AddressLength]byte

// Well-known addresses.
var (
	// AddressZero is the all-zeros address (0x0).
	AddressZero = Address{}

	// AddressOne is 0x1, where the standard library is published.
	AddressOne = mustByteAddress(1)

	// AddressTwo is 0x2.
	AddressTwo = mustByteAddress(2)
)

func mustByteAddress(b byte) Address {
	var a Address
	a[AddressLength-1] = b
	return a
}

// NewAddress constructs an Address from exactly AddressLength bytes.
func NewAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, fmt.Errorf("address must be %d bytes, got %d", AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromHex parses a hex address literal, with or without a "0x"
// prefix. Short literals are accepted and left-padded with zeros, matching
// the literal form used in source and on the command line (e.g. "0x1").
func AddressFromHex(s string) (Address, error) {
	var a Address
	orig := s
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return a, fmt.Errorf("invalid address %q: empty hex digits", orig)
	}
	if len(s) > 2*AddressLength {
		return a, fmt.Errorf("invalid address %q: longer than %d bytes", orig, AddressLength)
	}
	// hex.Decode needs an even number of digits; odd-length short forms
	// like "0x123" are valid literals.
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", orig, err)
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// MustAddressFromHex is like AddressFromHex but panics on error.
// Use only in tests or on literals known to be valid.
func MustAddressFromHex(s string) Address {
	a, err := AddressFromHex(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// CanonicalString renders the address as full-width lowercase hex,
// zero-padded, with an optional "0x" prefix. This rendering is byte-stable
// and suitable for hashing and persistence.
func (a Address) CanonicalString(withPrefix bool) string {
	if withPrefix {
		return "0x" + hex.EncodeToString(a[:])
	}
	return hex.EncodeToString(a[:])
}

// ShortString renders the address as "0x" followed by lowercase hex with
// leading zeros stripped ("0x1" for AddressOne). Lossless but unstable;
// display only.
func (a Address) ShortString() string {
	trimmed := strings.TrimLeft(hex.EncodeToString(a[:]), "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return "0x" + trimmed
}

// String implements fmt.Stringer using the display form.
func (a Address) String() string {
	return a.ShortString()
}

// Compare returns -1, 0, or 1 ordering addresses lexicographically by byte.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

// AbstractSizeForGasMetering returns the fixed abstract memory cost of an
// address. Identical on every architecture.
func (a Address) AbstractSizeForGasMetering() AbstractSize {
	return AddressLength
}
