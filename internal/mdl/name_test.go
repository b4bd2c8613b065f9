package mdl

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewNameTruncates(t *testing.T) {
	n := NewName(strings.Repeat("a", 100), ModelNameSize)
	if got := len(n.String()); got != ModelNameSize-1 {
		t.Fatalf("text length = %d, want %d", got, ModelNameSize-1)
	}
	b := n.Bytes()
	if len(b) != ModelNameSize || b[ModelNameSize-1] != 0 {
		t.Fatalf("field = %v", b)
	}
}

func TestNameWindows1252(t *testing.T) {
	n := NewName("crâne.bmp", TextureNameSize)
	b := n.Bytes()
	if b[2] != 0xE2 {
		t.Fatalf("â encoded as %#x, want 0xe2", b[2])
	}
	if got := parseName(b).String(); got != "crâne.bmp" {
		t.Fatalf("decoded %q", got)
	}

	// Runes outside the code page are replaced, not dropped.
	if got := NewName("日.bmp", TextureNameSize).String(); got != "?.bmp" {
		t.Fatalf("unsupported rune: %q", got)
	}
}

func TestParseNameForcesTerminator(t *testing.T) {
	field := bytes.Repeat([]byte{'x'}, ModelNameSize)
	n := parseName(field)
	if len(n.String()) != ModelNameSize-1 {
		t.Fatalf("text length = %d", len(n.String()))
	}
	if field[ModelNameSize-1] != 'x' {
		t.Fatal("parseName modified its input")
	}
}

func TestParseNameKeepsTrailingBytes(t *testing.T) {
	field := make([]byte, TextureNameSize)
	copy(field, "eye.pvr\x00garbage")
	n := parseName(field)
	if n.String() != "eye.pvr" {
		t.Fatalf("text = %q", n.String())
	}
	if !bytes.Equal(n.Bytes(), field) {
		t.Fatal("bytes after the terminator were not preserved")
	}
}
