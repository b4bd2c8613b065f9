// Package bitmap writes and reads the 8-bit palettized Windows bitmaps used
// for extracted textures.
package bitmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/bmp"

	"pvr2mdl/internal/texture"
)

const (
	HeaderSize     = 54
	InfoHeaderSize = 40
	PaletteColors  = 256
	PaletteSize    = PaletteColors * 4

	// PixelOffset is where index data starts: header plus full palette.
	PixelOffset = HeaderSize + PaletteSize
)

var ErrNotPaletted = errors.New("bitmap: not an 8-bit palettized image")

// Header is a version 3 (BITMAPINFOHEADER) file header.
type Header struct {
	Signature       [2]byte
	FileSize        uint32
	Reserved        uint32
	Offset          uint32
	InfoSize        uint32
	Width           uint32
	Height          uint32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPelsPerMeter   uint32
	YPelsPerMeter   uint32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Stride is the padded byte length of one bitmap row.
func Stride(w int) int {
	return (w + 3) &^ 3
}

// NewHeader returns the header of an uncompressed, bottom-up, 8-bit w×h
// bitmap with a full 256-color table.
func NewHeader(w, h int) Header {
	size := uint32(Stride(w) * h)
	return Header{
		Signature:       [2]byte{'B', 'M'},
		FileSize:        PixelOffset + size,
		Offset:          PixelOffset,
		InfoSize:        InfoHeaderSize,
		Width:           uint32(w),
		Height:          uint32(h),
		Planes:          1,
		BitsPerPixel:    8,
		ImageSize:       size,
		ColorsUsed:      PaletteColors,
		ColorsImportant: PaletteColors,
	}
}

// Encode writes t as a bitmap file. t must already be in bitmap order (see
// texture.Indexed.PrepareForBitmap): bottom-up rows and a 1024-byte BGRx
// palette.
func Encode(w io.Writer, t *texture.Indexed) error {
	if len(t.Palette) != PaletteSize {
		return fmt.Errorf("bitmap: %s: palette is %d bytes, want %d", t.Name, len(t.Palette), PaletteSize)
	}
	if len(t.Pix) != t.Width*t.Height {
		return fmt.Errorf("bitmap: %s: %d index bytes for %dx%d", t.Name, len(t.Pix), t.Width, t.Height)
	}

	hdr := NewHeader(t.Width, t.Height)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("bitmap: write header: %w", err)
	}
	if _, err := w.Write(t.Palette); err != nil {
		return fmt.Errorf("bitmap: write palette: %w", err)
	}

	stride := Stride(t.Width)
	if stride == t.Width {
		if _, err := w.Write(t.Pix); err != nil {
			return fmt.Errorf("bitmap: write pixels: %w", err)
		}
		return nil
	}
	row := make([]byte, stride)
	for y := 0; y < t.Height; y++ {
		copy(row, t.Pix[y*t.Width:(y+1)*t.Width])
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("bitmap: write row %d: %w", y, err)
		}
	}
	return nil
}

// Decode reads an 8-bit palettized bitmap and returns it in model-file order:
// top-down rows and a 768-byte RGB palette.
func Decode(r io.Reader, name string) (*texture.Indexed, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: decode %s: %w", name, err)
	}
	p, ok := img.(*image.Paletted)
	if !ok || len(p.Palette) > PaletteColors {
		return nil, fmt.Errorf("%w: %s is %T", ErrNotPaletted, name, img)
	}
	return texture.FromImage(name, p), nil
}
