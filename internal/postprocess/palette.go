package postprocess

const (
	paletteColors   = 256
	rgbEntrySize    = 3
	paddedEntrySize = 4
)

// SwapChannels returns a copy of pal with bytes 0 and 2 of every entry
// exchanged (RGB <-> BGR).
func SwapChannels(pal []byte, stride int) []byte {
	out := make([]byte, len(pal))
	copy(out, pal)
	if stride < 3 {
		return out
	}
	for i := 0; i+2 < len(out); i += stride {
		out[i], out[i+2] = out[i+2], out[i]
	}
	return out
}

// PadPalette expands a 256-entry, 3-byte-stride palette to a 4-byte stride,
// writing spacer after every entry. Palettes of any other size are returned
// as an unmodified copy.
func PadPalette(pal []byte, spacer byte) []byte {
	if len(pal) != paletteColors*rgbEntrySize {
		out := make([]byte, len(pal))
		copy(out, pal)
		return out
	}
	out := make([]byte, paletteColors*paddedEntrySize)
	for i := 0; i < paletteColors; i++ {
		copy(out[i*paddedEntrySize:], pal[i*rgbEntrySize:(i+1)*rgbEntrySize])
		out[i*paddedEntrySize+3] = spacer
	}
	return out
}
