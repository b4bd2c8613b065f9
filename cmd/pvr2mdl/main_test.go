package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"pvr2mdl/internal/mdl"
	"pvr2mdl/internal/mdl/mdltest"
	"pvr2mdl/internal/pvr/pvrtest"
)

func TestRunArguments(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "model.txt")
	os.WriteFile(txt, []byte("x"), 0644)

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"help", nil, 0},
		{"unknown mode", []string{"dump", "a.mdl"}, 0},
		{"too many", []string{"extract", "a.mdl", "b.mdl"}, 0},
		{"wrong extension", []string{txt}, 0},
		{"missing file", []string{filepath.Join(dir, "none.mdl")}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := run(c.args, zerolog.Nop()); got != c.want {
				t.Fatalf("run(%q) = %d, want %d", c.args, got, c.want)
			}
		})
	}
}

func TestRunRepack(t *testing.T) {
	m := mdltest.Model{
		Name: "eyeball.mdl",
		Textures: []mdltest.Texture{
			{Name: "eyeball.pvr", Width: 8, Height: 8, Payload: pvrtest.Rect(8, 8, pvrtest.Gradient(8, 8))},
		},
	}
	path := filepath.Join(t.TempDir(), "eyeball.mdl")
	if err := os.WriteFile(path, m.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	if got := run([]string{path}, zerolog.Nop()); got != 0 {
		t.Fatalf("repack exit = %d", got)
	}
	// Second run finds bitmap names and leaves the file alone.
	first, _ := os.ReadFile(path)
	if got := run([]string{path}, zerolog.Nop()); got != 0 {
		t.Fatalf("second repack exit = %d", got)
	}
	second, _ := os.ReadFile(path)
	if !bytes.Equal(first, second) {
		t.Fatal("second repack changed the model")
	}
	if v := mdl.Identify(second); v != mdl.Normal {
		t.Fatalf("Identify = %v", v)
	}
}

func TestRunNoTextures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim01.mdl")
	os.WriteFile(path, mdltest.Model{Signature: "IDSQ"}.Bytes(), 0644)
	if got := run([]string{"extract", path}, zerolog.Nop()); got != 0 {
		t.Fatalf("exit = %d", got)
	}
}
