// Package quantize reduces RGB565 images to 8-bit palettized textures.
//
// Colors are collected exactly, in scan order. When an image holds more than
// 256 distinct colors the low bits of each channel are progressively masked
// off (one "shrink tier" at a time) and the scan restarts from the first
// pixel. The last tier leaves at most 3-3-2 significant bits, which always
// fits the palette.
package quantize

import (
	"errors"
	"fmt"

	"pvr2mdl/internal/pvr"
)

const (
	// PaletteColors is the fixed palette length written to model files.
	PaletteColors = 256
	// EntrySize is the byte stride of one RGB palette entry.
	EntrySize   = 3
	PaletteSize = PaletteColors * EntrySize
)

// tiers is the shrink ladder, indexed by tier. Comments give the remaining
// significant bits per channel.
var tiers = [...]uint16{
	0xFFFF, // 565
	0xFFDF, // 555
	0xFFDE, // 554
	0xF7DE, // 454
	0xF79E, // 444
	0xF79C, // 443
	0xE79C, // 343
	0xE71C, // 333
	0xE718, // 332
}

// TierCount is the number of shrink tiers.
const TierCount = len(tiers)

// Mask returns the color mask of a tier.
func Mask(tier int) uint16 {
	return tiers[tier]
}

var ErrEmptyImage = errors.New("quantize: empty image")

// Result is a palettized image.
type Result struct {
	Palette []byte // PaletteSize bytes, RGB, unused entries zero
	Pix     []byte // one palette index per pixel, same layout as the source
	Tier    int    // shrink tier that fit
	Colors  int    // palette entries in use
}

// Quantize converts img to at most 256 colors. It never fails on a non-empty
// image: the final tier always fits.
func Quantize(img *pvr.Image) (*Result, error) {
	return QuantizeFunc(img, nil)
}

// QuantizeFunc is Quantize with a callback fired every time the ladder moves
// to a coarser tier.
func QuantizeFunc(img *pvr.Image, onShrink func(tier int)) (*Result, error) {
	if img == nil || len(img.Pix) == 0 {
		return nil, ErrEmptyImage
	}
	if len(img.Pix) != img.Width*img.Height {
		return nil, fmt.Errorf("quantize: %dx%d image has %d samples", img.Width, img.Height, len(img.Pix))
	}

	pix := make([]byte, len(img.Pix))
	for tier := 0; tier < TierCount; tier++ {
		palette, colors, ok := scan(img.Pix, tiers[tier], pix)
		if ok {
			return &Result{Palette: palette, Pix: pix, Tier: tier, Colors: colors}, nil
		}
		if onShrink != nil && tier+1 < TierCount {
			onShrink(tier + 1)
		}
	}
	// 0xE718 leaves 8 significant bits, so the last tier cannot overflow.
	return nil, fmt.Errorf("quantize: %dx%d image overflowed every tier", img.Width, img.Height)
}

// scan performs one attempt at a single tier. It reports ok=false as soon as
// a 257th distinct color shows up.
func scan(src []uint16, mask uint16, dst []byte) ([]byte, int, bool) {
	var seen [PaletteColors]uint16
	palette := make([]byte, PaletteSize)
	count := 0

	for i, c := range src {
		c &= mask
		idx := -1
		for j := 0; j < count; j++ {
			if seen[j] == c {
				idx = j
				break
			}
		}
		if idx < 0 {
			if count == PaletteColors {
				return nil, 0, false
			}
			seen[count] = c
			rgb := Expand565(c)
			copy(palette[count*EntrySize:], rgb[:])
			idx = count
			count++
		}
		dst[i] = byte(idx)
	}
	return palette, count, true
}

// Expand565 converts an RGB565 sample to 8-bit channels by left-shifting each
// channel; the low bits are left zero.
func Expand565(c uint16) [3]byte {
	r := byte(c>>11) << 3
	g := byte(c>>5&0x3F) << 2
	b := byte(c&0x1F) << 3
	return [3]byte{r, g, b}
}

// Reduce888 is the inverse of Expand565 for values it produced.
func Reduce888(r, g, b byte) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
