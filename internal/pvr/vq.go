package pvr

import (
	"encoding/binary"
	"io"

	"pvr2mdl/internal/twiddle"
)

// vqCorners places codebook texel i at block offset vqCorners[i] (dx, dy).
// Order: top-left, bottom-left, top-right, bottom-right.
var vqCorners = [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// decodeVQ expands a vector-quantized payload: a 256-entry codebook of 2×2
// blocks followed by a twiddled half-resolution index map.
func decodeVQ(r io.ReaderAt, off int64, w, h int) (*Image, error) {
	raw := make([]byte, CodebookSize)
	if err := readAt(r, raw, off); err != nil {
		return nil, err
	}
	var codebook [CodebookEntries][4]uint16
	for e := range codebook {
		for t := 0; t < 4; t++ {
			codebook[e][t] = binary.LittleEndian.Uint16(raw[e*CodebookEntrySize+t*2:])
		}
	}

	vw, vh := w>>1, h>>1
	indices := make([]byte, vw*vh)
	if err := readAt(r, indices, off+CodebookSize); err != nil {
		return nil, err
	}

	img := NewImage(w, h)
	for vy := 0; vy < vh; vy++ {
		for vx := 0; vx < vw; vx++ {
			block := codebook[indices[twiddle.Interleave(uint32(vx), uint32(vy))]]
			for t, c := range vqCorners {
				img.Set(vx<<1+c[0], vy<<1+c[1], block[t])
			}
		}
	}
	return img, nil
}
