package convert

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"pvr2mdl/internal/bitmap"
	"pvr2mdl/internal/mdl"
	"pvr2mdl/internal/preview"
	"pvr2mdl/internal/pvr"
	"pvr2mdl/internal/quantize"
	"pvr2mdl/internal/texture"
)

// Extract writes every texture of the model at path as an 8-bit bitmap into
// the model's textures directory. The model itself is not modified.
//
// PVR textures are decoded and quantized first. Once a texture with a PVR
// name is seen, all following textures are read as PVR too. A PVR texture
// that fails to decode is skipped with a warning.
func Extract(path string, opts Options) ([]TextureReport, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	defer in.Close()

	h, table, err := checkNormal(in)
	if err != nil {
		return nil, err
	}

	dir := TexturesDir(path, opts.Config.TexturesSuffix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	opts.Log.Info().
		Str("model", h.Name.String()).
		Uint32("textures", h.TextureCount).
		Str("dir", dir).
		Msg("Extracting textures")

	files := bitmapNames(table, opts.Log)
	reports := make([]TextureReport, 0, len(table))
	pvrMode := false
	for i, e := range table {
		name := e.Name.String()
		if hasExt(name, pvrExt) {
			pvrMode = true
		}

		var (
			tex    *texture.Indexed
			report = TextureReport{Name: files[i], Source: name}
		)
		if pvrMode {
			tex, report, err = loadPVR(in, e, report, opts)
			if err != nil {
				opts.Log.Warn().Err(err).Int("index", i).Str("name", name).Msg("Skipping texture")
				report.Skipped = err.Error()
				reports = append(reports, report)
				continue
			}
		} else {
			tex, err = loadPalettized(in, report.Name, e)
			if err != nil {
				return nil, fmt.Errorf("texture #%d: %w", i, err)
			}
			report.Width, report.Height = tex.Width, tex.Height
			report.Format = "palettized"
		}

		if f := opts.Config.PreviewFormat; f != "" {
			p, err := preview.WriteFile(dir, tex, f, opts.Config.PreviewScale)
			if err != nil {
				return nil, err
			}
			report.Preview = filepath.Base(p)
		}

		tex.PrepareForBitmap(opts.Config.Spacer())
		file := filepath.Join(dir, report.Name)
		if err := writeBitmap(file, tex); err != nil {
			return nil, err
		}
		report.File = report.Name
		reports = append(reports, report)
		opts.Log.Info().Str("file", file).Msg("Wrote texture")
	}

	if opts.Config.Manifest() {
		if err := WriteManifest(filepath.Join(dir, ManifestName), reports); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func loadPVR(in *os.File, e mdl.TextureEntry, report TextureReport, opts Options) (*texture.Indexed, TextureReport, error) {
	img, ih, err := pvr.Decode(in, int64(e.Offset))
	if err != nil {
		return nil, report, err
	}
	res, err := quantize.QuantizeFunc(img, func(tier int) {
		opts.Log.Info().Str("name", report.Source).Int("tier", tier).Msg("Shrinking colors")
	})
	if err != nil {
		return nil, report, err
	}
	report.Width, report.Height = img.Width, img.Height
	report.Format = pvr.FormatName(ih.ImageFormat)
	report.Tier = res.Tier
	report.Colors = res.Colors
	return texture.FromQuantized(report.Name, img.Width, img.Height, res), report, nil
}

func writeBitmap(path string, tex *texture.Indexed) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	bw := bufio.NewWriter(f)
	err = bitmap.Encode(bw, tex)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", ErrFilesystem, cerr)
	}
	return err
}
