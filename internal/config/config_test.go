package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.BackupSuffix != "-backup.mdl" || cfg.TexturesSuffix != "-textures" {
		t.Fatalf("suffixes = %q %q", cfg.BackupSuffix, cfg.TexturesSuffix)
	}
	if cfg.Spacer() != 0 || !cfg.Manifest() || cfg.PreviewScale != 1 || cfg.PreviewFormat != "" {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `{"preview_format":"tga","preview_scale":4,"palette_spacer":255,"write_manifest":false}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.PreviewFormat != "tga" || cfg.PreviewScale != 4 || cfg.Spacer() != 255 || cfg.Manifest() {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}
	path := filepath.Join(t.TempDir(), FileName)
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("broken JSON accepted")
	}
}

func TestResolveRejects(t *testing.T) {
	cases := []Config{
		{PreviewFormat: "gif"},
		{PreviewScale: 100},
		{BackupSuffix: "/x.mdl"},
	}
	for _, c := range cases {
		if err := c.Resolve(); err == nil {
			t.Errorf("%+v accepted", c)
		}
	}
}
