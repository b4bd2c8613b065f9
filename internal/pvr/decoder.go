// Package pvr decodes the Dreamcast PVR texture payloads embedded in model
// files into linear RGB565 bitmaps.
package pvr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"pvr2mdl/internal/twiddle"
)

// ReadHeaders reads and validates the GBIX and PVRT records starting at off.
// It returns the image header and the absolute offset of the pixel payload.
func ReadHeaders(r io.ReaderAt, off int64) (ImageHeader, int64, error) {
	var gbuf [GlobalHeaderSize]byte
	if err := readAt(r, gbuf[:], off); err != nil {
		return ImageHeader{}, 0, fmt.Errorf("pvr: global header at 0x%X: %w", off, err)
	}
	g := GlobalHeader{
		Signature:         binary.LittleEndian.Uint32(gbuf[0:]),
		ImageHeaderOffset: binary.LittleEndian.Uint32(gbuf[4:]),
		GlobalIndex:       binary.LittleEndian.Uint64(gbuf[8:]),
	}
	if g.Signature != GlobalMagic {
		return ImageHeader{}, 0, fmt.Errorf("%w: global header 0x%08X at 0x%X", ErrBadSignature, g.Signature, off)
	}

	off += 8 + int64(g.ImageHeaderOffset)
	var ibuf [ImageHeaderSize]byte
	if err := readAt(r, ibuf[:], off); err != nil {
		return ImageHeader{}, 0, fmt.Errorf("pvr: image header at 0x%X: %w", off, err)
	}
	h := ImageHeader{
		Signature:   binary.LittleEndian.Uint32(ibuf[0:]),
		Size:        binary.LittleEndian.Uint32(ibuf[4:]),
		ColorFormat: ibuf[8],
		ImageFormat: ibuf[9],
		Reserved:    binary.LittleEndian.Uint16(ibuf[10:]),
		Width:       binary.LittleEndian.Uint16(ibuf[12:]),
		Height:      binary.LittleEndian.Uint16(ibuf[14:]),
	}
	if h.Signature != ImageMagic {
		return h, 0, fmt.Errorf("%w: image header 0x%08X at 0x%X", ErrBadSignature, h.Signature, off)
	}
	if err := h.validate(); err != nil {
		return h, 0, err
	}
	return h, off + ImageHeaderSize, nil
}

func (h ImageHeader) validate() error {
	if h.ColorFormat != ColorRGB565 {
		return fmt.Errorf("%w: color format 0x%X", ErrUnsupportedFormat, h.ColorFormat)
	}
	w, ht := int(h.Width), int(h.Height)
	if w == 0 || ht == 0 || w > MaxDimension || ht > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, w, ht)
	}
	switch h.ImageFormat {
	case FormatRectangular:
		return nil
	case FormatTwiddled, FormatVQ:
		// Morton addressing only covers a power-of-two square.
		if w != ht || w&(w-1) != 0 {
			return fmt.Errorf("%w: %s image must be a power-of-two square, got %dx%d",
				ErrUnsupportedFormat, FormatName(h.ImageFormat), w, ht)
		}
		if h.ImageFormat == FormatVQ && w < 2 {
			return fmt.Errorf("%w: vq image %dx%d smaller than one block", ErrUnsupportedFormat, w, ht)
		}
		return nil
	default:
		return fmt.Errorf("%w: image format 0x%X", ErrUnsupportedFormat, h.ImageFormat)
	}
}

// Decode reads the PVR texture at off and returns it as a linear RGB565 image
// together with its image header.
func Decode(r io.ReaderAt, off int64) (*Image, ImageHeader, error) {
	h, dataOff, err := ReadHeaders(r, off)
	if err != nil {
		return nil, h, err
	}

	w, ht := int(h.Width), int(h.Height)
	var img *Image
	switch h.ImageFormat {
	case FormatRectangular:
		img, err = decodeRect(r, dataOff, w, ht)
	case FormatTwiddled:
		img, err = decodeTwiddled(r, dataOff, w, ht)
	case FormatVQ:
		img, err = decodeVQ(r, dataOff, w, ht)
	}
	if err != nil {
		return nil, h, fmt.Errorf("pvr: %s %dx%d: %w", FormatName(h.ImageFormat), w, ht, err)
	}
	return img, h, nil
}

func decodeRect(r io.ReaderAt, off int64, w, h int) (*Image, error) {
	img := NewImage(w, h)
	if err := readSamples(r, off, img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

func decodeTwiddled(r io.ReaderAt, off int64, w, h int) (*Image, error) {
	src := make([]uint16, w*h)
	if err := readSamples(r, off, src); err != nil {
		return nil, err
	}
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*w+x] = src[twiddle.Interleave(uint32(x), uint32(y))]
		}
	}
	return img, nil
}

func readSamples(r io.ReaderAt, off int64, dst []uint16) error {
	raw := make([]byte, len(dst)*2)
	if err := readAt(r, raw, off); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return nil
}

func readAt(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: got %d of %d bytes at 0x%X", ErrTruncated, n, len(buf), off)
	}
	return err
}
