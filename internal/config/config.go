package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pvr2mdl/internal/preview"
)

// FileName is the config file looked up next to the executable and in the
// working directory.
const FileName = "pvr2mdl.json"

// Config holds conversion settings. Every field is optional.
type Config struct {
	// Paths
	BackupSuffix   string `json:"backup_suffix"`
	TexturesSuffix string `json:"textures_suffix"`

	// Extraction settings
	PaletteSpacer *uint8 `json:"palette_spacer"`
	WriteManifest *bool  `json:"write_manifest"`
	PreviewFormat string `json:"preview_format"`
	PreviewScale  int    `json:"preview_scale"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Discover loads the first config file found by Locate, or returns an empty
// Config when there is none.
func Discover() (Config, string, error) {
	path := Locate()
	if path == "" {
		return Config{}, "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Locate returns the path of the config file, or "" if none exists.
func Locate() string {
	var candidates []string
	if exe, _ := os.Executable(); exe != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), FileName))
	}
	if cwd, _ := os.Getwd(); cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, FileName))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Resolve fills in defaults and validates the settings.
func (c *Config) Resolve() error {
	if c.BackupSuffix == "" {
		c.BackupSuffix = "-backup.mdl"
	}
	if c.TexturesSuffix == "" {
		c.TexturesSuffix = "-textures"
	}
	if c.PaletteSpacer == nil {
		var zero uint8
		c.PaletteSpacer = &zero
	}
	if c.WriteManifest == nil {
		on := true
		c.WriteManifest = &on
	}
	if c.PreviewScale <= 0 {
		c.PreviewScale = 1
	}

	if strings.ContainsAny(c.BackupSuffix, `/\`) || strings.ContainsAny(c.TexturesSuffix, `/\`) {
		return errors.New("config: suffixes must not contain path separators")
	}
	if c.PreviewFormat != "" && !preview.Valid(c.PreviewFormat) {
		return fmt.Errorf("config: unknown preview_format %q", c.PreviewFormat)
	}
	if c.PreviewScale > 16 {
		return fmt.Errorf("config: preview_scale %d is over 16", c.PreviewScale)
	}
	return nil
}

// Spacer returns the palette padding byte.
func (c *Config) Spacer() uint8 {
	if c.PaletteSpacer == nil {
		return 0
	}
	return *c.PaletteSpacer
}

// Manifest reports whether extraction writes manifest.json.
func (c *Config) Manifest() bool {
	return c.WriteManifest == nil || *c.WriteManifest
}
