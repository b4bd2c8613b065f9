// Package texture holds the 8-bit palettized texture exchanged between the
// decoder, the model writer and the bitmap writer.
package texture

import (
	"errors"
	"fmt"
	"io"

	"pvr2mdl/internal/postprocess"
	"pvr2mdl/internal/pvr"
	"pvr2mdl/internal/quantize"
)

// PaletteSize is the size of a model-file palette (256 RGB entries).
const PaletteSize = quantize.PaletteSize

var (
	ErrTruncated = errors.New("texture: truncated data")
	// ErrInvalidSize means a width or height is zero or over pvr.MaxDimension.
	ErrInvalidSize = errors.New("texture: invalid size")
)

// Indexed is an 8-bit palettized texture. Pix holds one palette index per
// pixel, rows top to bottom unless it was prepared for a bitmap file.
type Indexed struct {
	Name    string
	Width   int
	Height  int
	Palette []byte
	Pix     []byte
}

// FromQuantized wraps a quantizer result. The result's buffers are taken
// over, not copied.
func FromQuantized(name string, w, h int, res *quantize.Result) *Indexed {
	return &Indexed{
		Name:    name,
		Width:   w,
		Height:  h,
		Palette: res.Palette,
		Pix:     res.Pix,
	}
}

// LoadPalettized reads a texture already stored as w·h index bytes followed
// by a 256-entry RGB palette at off.
func LoadPalettized(r io.ReaderAt, name string, w, h int, off int64) (*Indexed, error) {
	if w <= 0 || h <= 0 || w > pvr.MaxDimension || h > pvr.MaxDimension {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrInvalidSize, name, w, h)
	}
	buf := make([]byte, w*h+PaletteSize)
	n, err := r.ReadAt(buf, off)
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			err = ErrTruncated
		}
		return nil, fmt.Errorf("texture: %s at 0x%X: %w", name, off, err)
	}
	return &Indexed{
		Name:    name,
		Width:   w,
		Height:  h,
		Pix:     buf[:w*h:w*h],
		Palette: buf[w*h:],
	}, nil
}

// PayloadSize is the number of bytes the texture occupies in a model file.
func (t *Indexed) PayloadSize() int {
	return len(t.Pix) + len(t.Palette)
}

// Validate checks that the buffers match the declared size.
func (t *Indexed) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("texture: %s: invalid size %dx%d", t.Name, t.Width, t.Height)
	}
	if len(t.Pix) != t.Width*t.Height {
		return fmt.Errorf("texture: %s: %d index bytes for %dx%d", t.Name, len(t.Pix), t.Width, t.Height)
	}
	if len(t.Palette) != PaletteSize {
		return fmt.Errorf("texture: %s: palette is %d bytes, want %d", t.Name, len(t.Palette), PaletteSize)
	}
	return nil
}

// PrepareForBitmap converts the texture in place to bitmap-file order:
// bottom-up rows and a BGR palette padded to 4 bytes per entry.
func (t *Indexed) PrepareForBitmap(spacer byte) {
	t.Pix = postprocess.FlipVertical(t.Pix, t.Width, t.Height)
	t.Palette = postprocess.SwapChannels(t.Palette, quantize.EntrySize)
	t.Palette = postprocess.PadPalette(t.Palette, spacer)
}
