package filesystem

import (
	"encoding/hex"
)

// Name is a raw, platform-native directory entry name: a byte sequence on
// POSIX (native filesystem encoding, nominally UTF-8) or a UTF-16 code unit
// sequence on Windows. It is constructed from a kernel-returned buffer by
// copying the bytes up to (but not including) the first in-bounds
// terminator, and never reads past the buffer it was given.
//
// Name deliberately has no implicit text representation: two Names compare
// equal iff their raw bytes are identical, and converting to a string
// requires an explicit, named decode operation so that callers can't
// accidentally compare undecodable names as if they were valid text.
type Name struct {
	raw []byte
}

// NewNameFromBytes constructs a Name by copying the given raw bytes. The
// caller's slice is not retained.
func NewNameFromBytes(raw []byte) Name {
	if len(raw) == 0 {
		return Name{}
	}
	owned := make([]byte, len(raw))
	copy(owned, raw)
	return Name{raw: owned}
}

// RawBytes returns the Name's raw byte (POSIX) or code-unit-pair (Windows,
// little-endian) representation. The returned slice must not be modified.
func (n Name) RawBytes() []byte {
	return n.raw
}

// Equal reports whether two Names have identical raw bytes.
func (n Name) Equal(other Name) bool {
	if len(n.raw) != len(other.raw) {
		return false
	}
	for i := range n.raw {
		if n.raw[i] != other.raw[i] {
			return false
		}
	}
	return true
}

// Hex renders the raw bytes as a hex string, for diagnostics involving
// names that may not be validly decodable.
func (n Name) Hex() string {
	return hex.EncodeToString(n.raw)
}

// IsEmpty reports whether the Name has zero raw bytes.
func (n Name) IsEmpty() bool {
	return len(n.raw) == 0
}

// IsDotOrDotDot reports whether the raw bytes are exactly "." or "..". The
// comparison is always a raw compare against the platform's native encoding
// of those names (single bytes on POSIX, UTF-16 code units on Windows),
// never a decode-then-compare, so it holds even for names that aren't
// validly encoded.
func (n Name) IsDotOrDotDot() bool {
	return bytesEqual(n.raw, dotRaw) || bytesEqual(n.raw, dotDotRaw)
}

// IsHiddenByDotPrefix reports whether the first byte/code-unit of the name
// is the dot character, the conventional "hidden file" marker on POSIX
// filesystems.
func (n Name) IsHiddenByDotPrefix() bool {
	return hasDotPrefix(n.raw)
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

// DecodeLossy decodes the Name to a string, replacing invalid sequences
// with U+FFFD. A lossy-decoded string must not be used to re-derive a path
// that's passed back to the kernel, since the replacement characters don't
// round-trip to the original bytes.
func (n Name) DecodeLossy() string {
	return decodeLossy(n.raw)
}

// DecodeStrict decodes the Name to a string, returning ok=false if the raw
// bytes are not validly encoded in the platform's native filesystem
// encoding (valid UTF-8 on POSIX, valid UTF-16 with no lone surrogates on
// Windows).
func (n Name) DecodeStrict() (string, bool) {
	return decodeStrict(n.raw)
}

// DecodeValidating decodes the Name to a string, or returns a *DecodeError
// carrying the original Name if the bytes aren't validly encoded.
func (n Name) DecodeValidating() (string, error) {
	if s, ok := n.DecodeStrict(); ok {
		return s, nil
	}
	return "", &DecodeError{Name: n}
}

// String implements fmt.Stringer using lossy decoding, so that Name values
// are always printable without risk of panicking or exposing raw bytes
// unexpectedly in log output. Code that needs the exact bytes should use
// RawBytes or Hex instead.
func (n Name) String() string {
	return n.DecodeLossy()
}
