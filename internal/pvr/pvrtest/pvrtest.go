// Package pvrtest builds synthetic PVR payloads for tests.
package pvrtest

import (
	"encoding/binary"

	"pvr2mdl/internal/pvr"
	"pvr2mdl/internal/twiddle"
)

// Build wraps payload in a GBIX + PVRT header pair.
func Build(colorFormat, imageFormat uint8, w, h int, payload []byte) []byte {
	out := make([]byte, pvr.GlobalHeaderSize+pvr.ImageHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:], pvr.GlobalMagic)
	// Image header follows the 8-byte global index.
	binary.LittleEndian.PutUint32(out[4:], 8)
	binary.LittleEndian.PutUint64(out[8:], 0x1234)

	ih := out[pvr.GlobalHeaderSize:]
	binary.LittleEndian.PutUint32(ih[0:], pvr.ImageMagic)
	binary.LittleEndian.PutUint32(ih[4:], uint32(8+len(payload)))
	ih[8] = colorFormat
	ih[9] = imageFormat
	binary.LittleEndian.PutUint16(ih[12:], uint16(w))
	binary.LittleEndian.PutUint16(ih[14:], uint16(h))
	copy(ih[pvr.ImageHeaderSize:], payload)
	return out
}

// Rect encodes a linear RGB565 image as a rectangular PVR texture.
func Rect(w, h int, pix []uint16) []byte {
	return Build(pvr.ColorRGB565, pvr.FormatRectangular, w, h, samples(pix))
}

// Twiddled encodes a square linear RGB565 image in Morton order.
func Twiddled(n int, pix []uint16) []byte {
	tw := make([]uint16, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			tw[twiddle.Interleave(uint32(x), uint32(y))] = pix[y*n+x]
		}
	}
	return Build(pvr.ColorRGB565, pvr.FormatTwiddled, n, n, samples(tw))
}

// VQ encodes an n×n texture from a codebook and a linear half-resolution
// index map.
func VQ(n int, codebook [][4]uint16, indices []byte) []byte {
	payload := make([]byte, pvr.CodebookSize+len(indices))
	for e, block := range codebook {
		for t, c := range block {
			binary.LittleEndian.PutUint16(payload[e*pvr.CodebookEntrySize+t*2:], c)
		}
	}
	half := n / 2
	tw := payload[pvr.CodebookSize:]
	for vy := 0; vy < half; vy++ {
		for vx := 0; vx < half; vx++ {
			tw[twiddle.Interleave(uint32(vx), uint32(vy))] = indices[vy*half+vx]
		}
	}
	return Build(pvr.ColorRGB565, pvr.FormatVQ, n, n, payload)
}

// Gradient returns w×h distinct-ish RGB565 samples derived from position.
func Gradient(w, h int) []uint16 {
	pix := make([]uint16, w*h)
	for i := range pix {
		pix[i] = uint16(i*2654435761>>7) ^ uint16(i)
	}
	return pix
}

func samples(pix []uint16) []byte {
	out := make([]byte, len(pix)*2)
	for i, c := range pix {
		binary.LittleEndian.PutUint16(out[i*2:], c)
	}
	return out
}
