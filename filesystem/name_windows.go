package filesystem

import "unicode/utf16"

// NewNameFromUTF16 constructs a Name from a slice of UTF-16 code units, the
// representation FindFirstFileW/FindNextFileW hand back. The code units are
// stored as raw little-endian byte pairs so that Name's raw-byte identity
// and equality semantics are uniform across platforms.
func NewNameFromUTF16(units []uint16) Name {
	if len(units) == 0 {
		return Name{}
	}
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	return Name{raw: raw}
}

// dotRaw and dotDotRaw are the raw little-endian UTF-16 encodings of "."
// and "..", compared against directly rather than via decoding.
var (
	dotRaw    = []byte{'.', 0}
	dotDotRaw = []byte{'.', 0, '.', 0}
)

// hasDotPrefix reports whether raw begins with the dot code unit.
func hasDotPrefix(raw []byte) bool {
	return len(raw) >= 2 && raw[0] == '.' && raw[1] == 0
}

// codeUnits reinterprets the raw little-endian byte pairs as UTF-16 code
// units. It returns ok=false if the raw byte length is odd, which should
// never happen for a Name built from NewNameFromUTF16.
func codeUnits(raw []byte) ([]uint16, bool) {
	if len(raw)%2 != 0 {
		return nil, false
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	return units, true
}

// isSurrogate reports whether r is a UTF-16 surrogate code unit (high or
// low half), used to detect and reject lone (unpaired) surrogates during
// strict decoding.
func isSurrogate(r uint16) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

// decodeStrict decodes raw little-endian UTF-16 code units to a string,
// failing if the sequence contains a lone (unpaired) surrogate.
func decodeStrict(raw []byte) (string, bool) {
	units, ok := codeUnits(raw)
	if !ok {
		return "", false
	}
	for i := 0; i < len(units); i++ {
		u := units[i]
		if !isSurrogate(u) {
			continue
		}
		if u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) &&
			units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF {
			i++
			continue
		}
		return "", false
	}
	return string(utf16.Decode(units)), true
}

// decodeLossy decodes raw little-endian UTF-16 code units to a string,
// replacing lone surrogates and other invalid sequences with U+FFFD, per
// the behavior of unicode/utf16.Decode.
func decodeLossy(raw []byte) string {
	units, ok := codeUnits(raw)
	if !ok {
		return string(utf16.Decode([]uint16{0xFFFD}))
	}
	return string(utf16.Decode(units))
}
