package convert

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestName is the file extraction writes next to the bitmaps.
const ManifestName = "manifest.json"

// TextureReport describes one texture handled by an operation.
type TextureReport struct {
	Name    string `json:"name"`
	Source  string `json:"source,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"format"`
	Tier    int    `json:"tier,omitempty"`
	Colors  int    `json:"colors,omitempty"`
	File    string `json:"file,omitempty"`
	Preview string `json:"preview,omitempty"`
	Skipped string `json:"skipped,omitempty"`
}

// WriteManifest writes reports as indented JSON to path.
func WriteManifest(path string, reports []TextureReport) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	return nil
}
