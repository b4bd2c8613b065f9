// Package convert runs whole operations on model files: repacking PVR
// textures in place, extracting textures to bitmaps and injecting edited
// bitmaps back. Every in-place operation works on a backup copy and restores
// it when anything fails.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"pvr2mdl/internal/config"
	"pvr2mdl/internal/mdl"
	"pvr2mdl/internal/texture"
)

var (
	// ErrAlreadyConverted means the model already holds bitmap textures.
	// It aborts a repack without being a failure.
	ErrAlreadyConverted = errors.New("convert: model already converted")
	// ErrNoChanges means an inject found no bitmap to put back.
	ErrNoChanges = errors.New("convert: nothing to inject")
	// ErrNotPalettized means an inject hit a PVR texture.
	ErrNotPalettized = errors.New("convert: model still holds PVR textures")
	// ErrFilesystem wraps failures to open, create or rename files.
	ErrFilesystem = errors.New("convert: filesystem error")
)

const (
	bitmapExt = ".bmp"
	pvrExt    = ".pvr"
)

// Options carries the settings and logger shared by all operations.
type Options struct {
	Config config.Config
	Log    zerolog.Logger
}

// NewOptions resolves cfg and returns Options. A zero logger discards output.
func NewOptions(cfg config.Config, log zerolog.Logger) (Options, error) {
	if err := cfg.Resolve(); err != nil {
		return Options{}, err
	}
	return Options{Config: cfg, Log: log}, nil
}

// Identify classifies the model file at path.
func Identify(path string) (mdl.Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return mdl.Unknown, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	defer f.Close()
	return mdl.IdentifyReader(f)
}

// BackupPath returns the backup name for a model: the path without its
// extension, plus suffix.
func BackupPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// TexturesDir returns the extraction directory for a model.
func TexturesDir(path, suffix string) string {
	return path + suffix
}

// transact renames path to its backup, runs fn(backup, path) and restores the
// backup if fn fails or panics. Partial output at path is removed before
// restoring. A panic is re-raised once the backup is back in place.
func transact(path string, opts Options, fn func(src, dst string) error) error {
	backup := BackupPath(path, opts.Config.BackupSuffix)
	if err := safeRename(path, backup); err != nil {
		return err
	}
	opts.Log.Debug().Str("backup", backup).Msg("Backed up model")

	defer func() {
		if p := recover(); p != nil {
			if err := restore(backup, path); err != nil {
				opts.Log.Error().Err(err).Str("backup", backup).Msg("Can't restore model")
			}
			panic(p)
		}
	}()

	runErr := fn(backup, path)
	if runErr == nil {
		return nil
	}
	if err := restore(backup, path); err != nil {
		return errors.Join(runErr, err)
	}
	opts.Log.Debug().Str("path", path).Msg("Restored original model")
	return runErr
}

// restore removes any partial output at path and moves backup back over it.
func restore(backup, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove partial %s: %w", ErrFilesystem, path, err)
	}
	return safeRename(backup, path)
}

// safeRename renames oldPath to newPath, replacing newPath if it exists.
func safeRename(oldPath, newPath string) error {
	if _, err := os.Stat(oldPath); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	if err := os.Remove(newPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: replace %s: %w", ErrFilesystem, newPath, err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	return nil
}

// textureStem returns the base name of a stored texture name without its
// extension. Stored names may use either slash.
func textureStem(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		return "texture"
	}
	return stem
}

// bitmapNames returns the bitmap file name of every table entry. Entries whose
// stems collide, ignoring case, get a numeric suffix in table order.
func bitmapNames(table []mdl.TextureEntry, log zerolog.Logger) []string {
	names := make([]string, len(table))
	used := make(map[string]bool, len(table))
	for i, e := range table {
		stem := textureStem(e.Name.String())
		name := stem + bitmapExt
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = stem + "_" + strconv.Itoa(n) + bitmapExt
		}
		if name != stem+bitmapExt {
			log.Warn().Int("index", i).Str("name", e.Name.String()).Str("file", name).Msg("Duplicate texture name")
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

// loadPalettized reads an 8-bit table entry. Bad sizes and short data are
// reported as mdl.ErrMalformed.
func loadPalettized(r io.ReaderAt, name string, e mdl.TextureEntry) (*texture.Indexed, error) {
	tex, err := texture.LoadPalettized(r, name, int(e.Width), int(e.Height), int64(e.Offset))
	if errors.Is(err, texture.ErrInvalidSize) || errors.Is(err, texture.ErrTruncated) {
		return nil, fmt.Errorf("%w: %w", mdl.ErrMalformed, err)
	}
	return tex, err
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// checkNormal reads the header and table of a model that must hold textures.
func checkNormal(f *os.File) (mdl.Header, []mdl.TextureEntry, error) {
	h, err := mdl.ReadHeader(f)
	if err != nil {
		return h, nil, err
	}
	if v := h.Variant(); v != mdl.Normal {
		return h, nil, fmt.Errorf("%w: %s model", mdl.ErrMalformed, v)
	}
	table, err := mdl.ReadTextureTable(f, h)
	if err != nil {
		return h, nil, err
	}
	return h, table, nil
}
