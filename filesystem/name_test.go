package filesystem

import "testing"

func TestNameEqualityIsRawByteBased(t *testing.T) {
	a := NewNameFromBytes([]byte{0xFF, 0xFE, 'x'})
	b := NewNameFromBytes([]byte{0xFF, 0xFE, 'x'})
	c := NewNameFromBytes([]byte("valid"))

	if !a.Equal(b) {
		t.Error("identical raw bytes should compare equal")
	}
	if a.Equal(c) {
		t.Error("different raw bytes should not compare equal")
	}
}

func TestNameHexIsStableForUndecodableBytes(t *testing.T) {
	name := NewNameFromBytes([]byte{0xFF, 0xFE})
	if hex := name.Hex(); hex != "fffe" {
		t.Errorf("Hex() = %q, want %q", hex, "fffe")
	}
}
