package convert

import (
	"bufio"
	"fmt"
	"os"

	"pvr2mdl/internal/mdl"
	"pvr2mdl/internal/pvr"
	"pvr2mdl/internal/quantize"
	"pvr2mdl/internal/texture"
)

// Repack converts every PVR texture of the model at path to an 8-bit
// palettized texture and rewrites the file in place. The original is kept as
// a backup; on any error it is restored and no output is left behind.
//
// A model whose first texture already has a bitmap name returns
// ErrAlreadyConverted and is left unchanged.
func Repack(path string, opts Options) ([]TextureReport, error) {
	var reports []TextureReport
	err := transact(path, opts, func(src, dst string) error {
		var err error
		reports, err = repack(src, dst, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func repack(src, dst string, opts Options) ([]TextureReport, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	defer in.Close()

	h, table, err := checkNormal(in)
	if err != nil {
		return nil, err
	}
	opts.Log.Info().
		Str("model", h.Name.String()).
		Uint32("textures", h.TextureCount).
		Str("table", fmt.Sprintf("0x%X", h.TextureTableOffset)).
		Msg("Repacking textures")

	textures := make([]*texture.Indexed, len(table))
	reports := make([]TextureReport, len(table))
	for i, e := range table {
		name := e.Name.String()
		if hasExt(name, bitmapExt) {
			return nil, fmt.Errorf("%w: texture %q", ErrAlreadyConverted, name)
		}
		newName := textureStem(name) + bitmapExt

		img, ih, err := pvr.Decode(in, int64(e.Offset))
		if err != nil {
			return nil, fmt.Errorf("texture #%d %q: %w", i, name, err)
		}
		opts.Log.Info().
			Int("index", i).
			Str("name", name).
			Str("offset", fmt.Sprintf("0x%X", e.Offset)).
			Str("format", pvr.FormatName(ih.ImageFormat)).
			Uint16("width", ih.Width).
			Uint16("height", ih.Height).
			Msg("Decoded texture")

		res, err := quantize.QuantizeFunc(img, func(tier int) {
			opts.Log.Info().Str("name", name).Int("tier", tier).Msg("Shrinking colors")
		})
		if err != nil {
			return nil, fmt.Errorf("texture #%d %q: %w", i, name, err)
		}

		textures[i] = texture.FromQuantized(newName, img.Width, img.Height, res)
		reports[i] = TextureReport{
			Name:   newName,
			Source: name,
			Width:  img.Width,
			Height: img.Height,
			Format: pvr.FormatName(ih.ImageFormat),
			Tier:   res.Tier,
			Colors: res.Colors,
		}
		opts.Log.Info().
			Str("name", newName).
			Int("colors", res.Colors).
			Msg("Converted texture")
	}

	// Nothing is created until every texture converted.
	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	bw := bufio.NewWriter(out)
	layout, err := mdl.Rewrite(in, h, table, textures, bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", ErrFilesystem, cerr)
	}
	if err != nil {
		return nil, err
	}
	opts.Log.Info().Int64("size", layout.Size).Str("path", dst).Msg("Wrote model")
	return reports, nil
}
