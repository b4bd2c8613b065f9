package convert

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pvr2mdl/internal/bitmap"
	"pvr2mdl/internal/mdl"
	"pvr2mdl/internal/texture"
)

// Inject replaces the textures of an already converted model with the
// bitmaps found in its textures directory, named as Extract names them.
// Textures with no matching bitmap are kept. The model is rewritten in place
// with the same backup and restore rules as Repack.
func Inject(path string, opts Options) ([]TextureReport, error) {
	dir := TexturesDir(path, opts.Config.TexturesSuffix)
	var reports []TextureReport
	err := transact(path, opts, func(src, dst string) error {
		var err error
		reports, err = inject(src, dst, dir, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func inject(src, dst, dir string, opts Options) ([]TextureReport, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	defer in.Close()

	h, table, err := checkNormal(in)
	if err != nil {
		return nil, err
	}

	files := bitmapNames(table, opts.Log)
	textures := make([]*texture.Indexed, len(table))
	var reports []TextureReport
	for i, e := range table {
		name := e.Name.String()
		if hasExt(name, pvrExt) {
			return nil, fmt.Errorf("%w: texture %q", ErrNotPalettized, name)
		}

		file := filepath.Join(dir, files[i])
		tex, err := readBitmap(file, name)
		switch {
		case err == nil:
			textures[i] = tex
			reports = append(reports, TextureReport{
				Name:   name,
				Width:  tex.Width,
				Height: tex.Height,
				Format: "bitmap",
				File:   filepath.Base(file),
			})
			opts.Log.Info().Str("name", name).Str("file", file).Msg("Injecting texture")
			continue
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}

		tex, err = loadPalettized(in, name, e)
		if err != nil {
			return nil, fmt.Errorf("texture #%d: %w", i, err)
		}
		textures[i] = tex
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("%w: no bitmaps in %s", ErrNoChanges, dir)
	}

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	bw := bufio.NewWriter(out)
	_, err = mdl.Rewrite(in, h, table, textures, bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", ErrFilesystem, cerr)
	}
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// readBitmap decodes the bitmap at path. A missing file is reported with an
// error matching os.ErrNotExist.
func readBitmap(path, name string) (*texture.Indexed, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	defer f.Close()
	return bitmap.Decode(bufio.NewReader(f), name)
}
