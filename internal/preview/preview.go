// Package preview writes true-color previews of extracted textures.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"pvr2mdl/internal/postprocess"
	"pvr2mdl/internal/texture"
)

// Supported preview formats.
const (
	WebP = "webp"
	TGA  = "tga"
)

// Valid reports whether format names a supported preview format.
func Valid(format string) bool {
	switch strings.ToLower(format) {
	case WebP, TGA:
		return true
	}
	return false
}

// Encode writes t, in model-file order, as a preview image upscaled by scale.
func Encode(w io.Writer, t *texture.Indexed, format string, scale int) error {
	img := postprocess.Upscale(t.Image(), scale)
	switch strings.ToLower(format) {
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("preview: webp encode %s: %w", t.Name, err)
		}
	case TGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("preview: tga encode %s: %w", t.Name, err)
		}
	default:
		return fmt.Errorf("preview: unknown format %q", format)
	}
	return nil
}

// WriteFile writes the preview of t into dir as <stem>.<format> and returns
// the file path.
func WriteFile(dir string, t *texture.Indexed, format string, scale int) (string, error) {
	stem := strings.TrimSuffix(t.Name, filepath.Ext(t.Name))
	path := filepath.Join(dir, stem+"."+strings.ToLower(format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("preview: create %s: %w", path, err)
	}
	if err := Encode(f, t, format, scale); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("preview: close %s: %w", path, err)
	}
	return path, nil
}
