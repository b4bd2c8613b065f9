package postprocess

// FlipVertical returns a copy of an 8-bit w×h bitmap with the row order
// reversed. Model files store rows top-down, bitmap files bottom-up.
func FlipVertical(pix []byte, w, h int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < h; y++ {
		copy(out[y*w:(y+1)*w], pix[(h-1-y)*w:(h-y)*w])
	}
	return out
}
