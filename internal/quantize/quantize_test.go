package quantize

import (
	"errors"
	"testing"

	"pvr2mdl/internal/pvr"
)

func TestExpandReduceIdentity(t *testing.T) {
	for c := 0; c <= 0xFFFF; c++ {
		rgb := Expand565(uint16(c))
		if got := Reduce888(rgb[0], rgb[1], rgb[2]); got != uint16(c) {
			t.Fatalf("Reduce888(Expand565(%#04x)) = %#04x", c, got)
		}
	}
}

func TestExpand565(t *testing.T) {
	cases := []struct {
		in   uint16
		want [3]byte
	}{
		{0x0000, [3]byte{0, 0, 0}},
		{0xFFFF, [3]byte{0xF8, 0xFC, 0xF8}},
		{0xF800, [3]byte{0xF8, 0, 0}},
		{0x07E0, [3]byte{0, 0xFC, 0}},
		{0x001F, [3]byte{0, 0, 0xF8}},
	}
	for _, c := range cases {
		if got := Expand565(c.in); got != c.want {
			t.Errorf("Expand565(%#04x) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestQuantizeLosslessUnderBudget(t *testing.T) {
	const w, h = 32, 16
	img := pvr.NewImage(w, h)
	// 256 distinct colors spread over the whole 16-bit range.
	for i := range img.Pix {
		img.Pix[i] = uint16((i%256)*257 ^ 0x5A5A)
	}

	res, err := Quantize(img)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if res.Tier != 0 {
		t.Fatalf("tier = %d, want 0", res.Tier)
	}
	if res.Colors != 256 {
		t.Fatalf("colors = %d, want 256", res.Colors)
	}
	for i, src := range img.Pix {
		e := res.Palette[int(res.Pix[i])*EntrySize:]
		if got := Reduce888(e[0], e[1], e[2]); got != src {
			t.Fatalf("pixel %d: palette color %#04x, want %#04x", i, got, src)
		}
	}
}

func TestQuantizeFirstSeenOrder(t *testing.T) {
	img := &pvr.Image{Width: 4, Height: 1, Pix: []uint16{0x1234, 0xFFFF, 0x1234, 0x0000}}
	res, err := Quantize(img)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	want := []byte{0, 1, 0, 2}
	for i := range want {
		if res.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", res.Pix, want)
		}
	}
	if len(res.Palette) != PaletteSize {
		t.Fatalf("palette length = %d, want %d", len(res.Palette), PaletteSize)
	}
	for _, b := range res.Palette[3*EntrySize:] {
		if b != 0 {
			t.Fatal("unused palette entries must be zero")
		}
	}
}

func TestQuantizeWorstCaseTerminates(t *testing.T) {
	const w, h = 256, 256
	img := pvr.NewImage(w, h)
	for i := range img.Pix {
		img.Pix[i] = uint16(i)
	}

	var shrinks []int
	res, err := QuantizeFunc(img, func(tier int) { shrinks = append(shrinks, tier) })
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if res.Tier != TierCount-1 {
		t.Fatalf("tier = %d, want %d", res.Tier, TierCount-1)
	}
	if res.Colors > PaletteColors {
		t.Fatalf("colors = %d", res.Colors)
	}
	if len(shrinks) != TierCount-1 {
		t.Fatalf("shrink callbacks = %v", shrinks)
	}
	mask := Mask(res.Tier)
	for i, src := range img.Pix {
		e := res.Palette[int(res.Pix[i])*EntrySize:]
		if got := Reduce888(e[0], e[1], e[2]); got != src&mask {
			t.Fatalf("pixel %d: palette color %#04x, want %#04x", i, got, src&mask)
		}
	}
}

func TestQuantizeStopsAtFirstFittingTier(t *testing.T) {
	img := pvr.NewImage(257, 1)
	// Bit 11 is the first bit any tier clears that these colors use, so
	// tiers 0-2 overflow and tier 3 (0xF7DE) merges them down to 129.
	for i := range img.Pix {
		img.Pix[i] = uint16(i) << 6
	}
	res, err := Quantize(img)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if res.Tier != 3 {
		t.Fatalf("tier = %d, want 3", res.Tier)
	}
	if res.Colors != 129 {
		t.Fatalf("colors = %d, want 129", res.Colors)
	}
}

func TestQuantizeEmpty(t *testing.T) {
	if _, err := Quantize(&pvr.Image{}); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("err = %v, want ErrEmptyImage", err)
	}
}
