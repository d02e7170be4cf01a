//go:build !windows

package filesystem

import "testing"

func TestNameDecodeStrictRejectsInvalidUTF8(t *testing.T) {
	name := NewNameFromBytes([]byte{0xFF, 0xFE})
	if _, ok := name.DecodeStrict(); ok {
		t.Error("DecodeStrict should reject invalid UTF-8 on POSIX")
	}
	if _, err := name.DecodeValidating(); err == nil {
		t.Error("DecodeValidating should return an error for invalid UTF-8")
	}
}

func TestNameDecodeStrictRoundTripsValidText(t *testing.T) {
	name := NewNameFromBytes([]byte("héllo"))
	decoded, ok := name.DecodeStrict()
	if !ok {
		t.Fatal("DecodeStrict rejected valid UTF-8")
	}
	if decoded != "héllo" {
		t.Errorf("decoded = %q, want %q", decoded, "héllo")
	}
}

func TestNameIsDotOrDotDot(t *testing.T) {
	cases := map[string]bool{
		".":    true,
		"..":   true,
		"...":  false,
		"a":    false,
		"":     false,
		".git": false,
	}
	for raw, want := range cases {
		name := NewNameFromBytes([]byte(raw))
		if got := name.IsDotOrDotDot(); got != want {
			t.Errorf("IsDotOrDotDot(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNameIsHiddenByDotPrefix(t *testing.T) {
	if !NewNameFromBytes([]byte(".hidden")).IsHiddenByDotPrefix() {
		t.Error("expected dot-prefixed name to be hidden")
	}
	if NewNameFromBytes([]byte("visible")).IsHiddenByDotPrefix() {
		t.Error("expected non-dot-prefixed name to not be hidden")
	}
}

func TestNameDecodeLossyReplacesInvalidSequences(t *testing.T) {
	name := NewNameFromBytes([]byte{'a', 0xFF, 'b'})
	decoded := name.DecodeLossy()
	if decoded != "a�b" {
		t.Errorf("DecodeLossy = %q, want %q", decoded, "a�b")
	}
}
