package postprocess

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestFlipVertical(t *testing.T) {
	pix := []byte{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
		10, 11, 12,
	}
	got := FlipVertical(pix, 3, 4)
	want := []byte{
		10, 11, 12,
		7, 8, 9,
		4, 5, 6,
		1, 2, 3,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("FlipVertical = %v, want %v", got, want)
	}
	if pix[0] != 1 {
		t.Fatal("FlipVertical modified its input")
	}
	if back := FlipVertical(got, 3, 4); !bytes.Equal(back, pix) {
		t.Fatal("flipping twice must restore the bitmap")
	}
}

func TestSwapChannels(t *testing.T) {
	pal := []byte{1, 2, 3, 4, 5, 6}
	got := SwapChannels(pal, 3)
	if want := []byte{3, 2, 1, 6, 5, 4}; !bytes.Equal(got, want) {
		t.Fatalf("stride 3: %v, want %v", got, want)
	}

	padded := []byte{1, 2, 3, 0, 4, 5, 6, 0}
	got = SwapChannels(padded, 4)
	if want := []byte{3, 2, 1, 0, 6, 5, 4, 0}; !bytes.Equal(got, want) {
		t.Fatalf("stride 4: %v, want %v", got, want)
	}
	if pal[0] != 1 {
		t.Fatal("SwapChannels modified its input")
	}
}

func TestPadPalette(t *testing.T) {
	pal := make([]byte, 768)
	for i := range pal {
		pal[i] = byte(i)
	}
	got := PadPalette(pal, 0xAA)
	if len(got) != 1024 {
		t.Fatalf("len = %d, want 1024", len(got))
	}
	for i := 0; i < 256; i++ {
		e := got[i*4 : i*4+4]
		if !bytes.Equal(e[:3], pal[i*3:i*3+3]) || e[3] != 0xAA {
			t.Fatalf("entry %d = %v", i, e)
		}
	}

	odd := []byte{1, 2, 3, 4}
	if got := PadPalette(odd, 0); !bytes.Equal(got, odd) {
		t.Fatalf("non-768 palette changed: %v", got)
	}
}

func TestUpscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})

	got := Upscale(src, 3)
	if got.Bounds().Dx() != 6 || got.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := got.NRGBAAt(2, 2); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Fatalf("(2,2) = %v", c)
	}
	if c := got.NRGBAAt(3, 0); c != (color.NRGBA{0, 0, 255, 255}) {
		t.Fatalf("(3,0) = %v", c)
	}

	same := Upscale(src, 0)
	if same.Bounds() != src.Bounds() || same.NRGBAAt(1, 0) != src.NRGBAAt(1, 0) {
		t.Fatal("factor 0 must keep the image unchanged")
	}
}
