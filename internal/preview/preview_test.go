package preview

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"

	"pvr2mdl/internal/texture"
)

func checker() *texture.Indexed {
	t := &texture.Indexed{Name: "checker.bmp", Width: 4, Height: 4, Pix: make([]byte, 16), Palette: make([]byte, texture.PaletteSize)}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			t.Pix[y*4+x] = byte((x + y) & 1)
		}
	}
	copy(t.Palette, []byte{0xF8, 0x00, 0x00, 0x00, 0x00, 0xF8})
	return t
}

func TestEncodeTGA(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, checker(), TGA, 2); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := tga.Decode(&buf)
	if err != nil {
		t.Fatalf("tga.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds = %v", b)
	}
	want := color.NRGBA{R: 0xF8, A: 0xFF}
	if got := color.NRGBAModel.Convert(img.At(1, 1)); got != want {
		t.Fatalf("(1,1) = %v, want %v", got, want)
	}
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, checker(), WebP, 1); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := webp.Decode(&buf)
	if err != nil {
		t.Fatalf("webp.Decode: %v", err)
	}
	want := color.NRGBA{B: 0xF8, A: 0xFF}
	if got := color.NRGBAModel.Convert(img.At(1, 0)); got != want {
		t.Fatalf("(1,0) = %v, want %v", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, checker(), "WEBP", 1)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if path != filepath.Join(dir, "checker.webp") {
		t.Fatalf("path = %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestUnknownFormat(t *testing.T) {
	if Valid("png") {
		t.Fatal("png reported valid")
	}
	var buf bytes.Buffer
	if err := Encode(&buf, checker(), "png", 1); err == nil {
		t.Fatal("expected an error")
	}
}
