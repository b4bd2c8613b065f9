package mdl

import (
	"fmt"
	"io"
	"math"

	"pvr2mdl/internal/texture"
)

// Layout describes a rewritten model.
type Layout struct {
	Header Header
	Table  []TextureEntry
	Size   int64
}

// Plan computes the header and texture table that Rewrite would write for
// textures, without touching any data.
//
// Texture payloads (index bytes, then the palette) are laid out in table
// order directly after the skin table, which itself directly follows the
// texture table. Everything before the texture table is kept as is.
func Plan(h Header, table []TextureEntry, textures []*texture.Indexed) (Layout, error) {
	if int(h.TextureCount) != len(table) || len(table) != len(textures) {
		return Layout{}, fmt.Errorf("mdl: %d textures in header, %d table entries, %d textures",
			h.TextureCount, len(table), len(textures))
	}
	if h.TextureTableOffset < HeaderSize {
		return Layout{}, fmt.Errorf("%w: texture table at 0x%X overlaps header", ErrMalformed, h.TextureTableOffset)
	}

	out := h
	out.SkinTableOffset = h.TextureTableOffset + uint32(h.TextureTableSize())
	dataOff := int64(out.SkinTableOffset) + h.SkinTableSize()

	newTable := make([]TextureEntry, len(table))
	off := dataOff
	for i, tex := range textures {
		if err := tex.Validate(); err != nil {
			return Layout{}, fmt.Errorf("mdl: texture #%d: %w", i, err)
		}
		e := table[i]
		if e.Name.String() != tex.Name {
			e.Name = NewName(tex.Name, TextureNameSize)
		}
		e.Width = uint32(tex.Width)
		e.Height = uint32(tex.Height)
		e.Offset = uint32(off)
		newTable[i] = e
		off += int64(tex.PayloadSize())
	}
	if off > math.MaxUint32 {
		return Layout{}, fmt.Errorf("mdl: rewritten model is %d bytes, over the 4 GiB limit", off)
	}

	out.TextureDataOffset = uint32(dataOff)
	out.FileSize = uint32(off)
	return Layout{Header: out, Table: newTable, Size: off}, nil
}

// Rewrite writes the model read from src with its texture data replaced by
// textures. The header's file size field is set to the exact number of
// bytes written; a mismatch is reported as an error.
func Rewrite(src io.ReaderAt, h Header, table []TextureEntry, textures []*texture.Indexed, w io.Writer) (Layout, error) {
	layout, err := Plan(h, table, textures)
	if err != nil {
		return Layout{}, err
	}
	cw := &countingWriter{w: w}

	hdr, err := layout.Header.MarshalBinary()
	if err != nil {
		return Layout{}, err
	}
	if _, err := cw.Write(hdr); err != nil {
		return Layout{}, fmt.Errorf("mdl: write header: %w", err)
	}

	// Submodels, bones, sequences and anything else before the texture table.
	if err := copySection(cw, src, HeaderSize, int64(h.TextureTableOffset)-HeaderSize); err != nil {
		return Layout{}, fmt.Errorf("mdl: copy model data: %w", err)
	}

	for i := range layout.Table {
		b, _ := layout.Table[i].MarshalBinary()
		if _, err := cw.Write(b); err != nil {
			return Layout{}, fmt.Errorf("mdl: write texture entry #%d: %w", i, err)
		}
	}

	if err := copySection(cw, src, int64(h.SkinTableOffset), h.SkinTableSize()); err != nil {
		return Layout{}, fmt.Errorf("mdl: copy skin table: %w", err)
	}

	for i, tex := range textures {
		if _, err := cw.Write(tex.Pix); err != nil {
			return Layout{}, fmt.Errorf("mdl: write texture #%d: %w", i, err)
		}
		if _, err := cw.Write(tex.Palette); err != nil {
			return Layout{}, fmt.Errorf("mdl: write palette #%d: %w", i, err)
		}
	}

	if cw.n != layout.Size {
		return Layout{}, fmt.Errorf("mdl: wrote %d bytes, header says %d", cw.n, layout.Size)
	}
	return layout, nil
}

func copySection(w io.Writer, src io.ReaderAt, off, n int64) error {
	if n <= 0 {
		return nil
	}
	copied, err := io.Copy(w, io.NewSectionReader(src, off, n))
	if err != nil {
		return err
	}
	if copied != n {
		return fmt.Errorf("%w: %d of %d bytes at 0x%X", ErrMalformed, copied, n, off)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
