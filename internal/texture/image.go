package texture

import (
	"image"
	"image/color"

	"pvr2mdl/internal/quantize"
)

// Image returns the texture as an image.Paletted. The texture must be in
// model-file order (top-down rows, 3-byte RGB palette).
func (t *Indexed) Image() *image.Paletted {
	pal := make(color.Palette, len(t.Palette)/quantize.EntrySize)
	for i := range pal {
		e := t.Palette[i*quantize.EntrySize:]
		pal[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xFF}
	}
	img := image.NewPaletted(image.Rect(0, 0, t.Width, t.Height), pal)
	copy(img.Pix, t.Pix)
	return img
}

// FromImage builds a texture from a paletted image with at most 256 colors.
// Missing palette entries are zero-filled.
func FromImage(name string, img *image.Paletted) *Indexed {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := &Indexed{
		Name:    name,
		Width:   w,
		Height:  h,
		Palette: make([]byte, PaletteSize),
		Pix:     make([]byte, w*h),
	}
	for i, c := range img.Palette {
		if i == quantize.PaletteColors {
			break
		}
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		t.Palette[i*quantize.EntrySize+0] = rgba.R
		t.Palette[i*quantize.EntrySize+1] = rgba.G
		t.Palette[i*quantize.EntrySize+2] = rgba.B
	}
	for y := 0; y < h; y++ {
		copy(t.Pix[y*w:(y+1)*w], img.Pix[y*img.Stride:y*img.Stride+w])
	}
	return t
}
