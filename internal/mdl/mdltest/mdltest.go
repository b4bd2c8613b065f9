// Package mdltest builds synthetic model files for tests.
package mdltest

import (
	"pvr2mdl/internal/mdl"
)

// Texture is one table entry and its raw payload.
type Texture struct {
	Name    string
	Width   uint32
	Height  uint32
	Payload []byte
}

// Model describes a file laid out as header, body, texture table, skin table,
// texture payloads.
type Model struct {
	Signature     string // default "IDST"
	Version       uint32 // default mdl.Version
	Name          string
	Body          []byte // bytes between the header and the texture table
	SkinEntrySize uint32 // in 2-byte units; default 1
	Skin          []byte // length must be a multiple of 2*SkinEntrySize
	Textures      []Texture

	// SkinInBody places the skin table right after Body, before the texture
	// table, instead of after it.
	SkinInBody bool
}

// Header returns the header Bytes would write.
func (m Model) Header() mdl.Header {
	var h mdl.Header
	sig := m.Signature
	if sig == "" {
		sig = "IDST"
	}
	copy(h.Signature[:], sig)
	h.Version = m.Version
	if h.Version == 0 {
		h.Version = mdl.Version
	}
	h.Name = mdl.NewName(m.Name, mdl.ModelNameSize)
	for i := range h.Reserved1 {
		h.Reserved1[i] = byte(i)
	}
	for i := range h.Reserved2 {
		h.Reserved2[i] = byte(0xC0 + i)
	}
	h.SubmodelCount = 1
	h.SubmodelTableOffset = mdl.HeaderSize

	entry := m.SkinEntrySize
	if entry == 0 {
		entry = 1
	}
	h.SkinEntrySize = entry
	h.SkinCount = uint32(len(m.Skin)) / (entry * 2)

	h.TextureCount = uint32(len(m.Textures))
	body := mdl.HeaderSize + uint32(len(m.Body))
	tableSize := uint32(len(m.Textures)) * mdl.TextureEntrySize
	if m.SkinInBody {
		h.SkinTableOffset = body
		h.TextureTableOffset = body + uint32(len(m.Skin))
		h.TextureDataOffset = h.TextureTableOffset + tableSize
	} else {
		h.TextureTableOffset = body
		h.SkinTableOffset = h.TextureTableOffset + tableSize
		h.TextureDataOffset = h.SkinTableOffset + uint32(len(m.Skin))
	}

	size := h.TextureDataOffset
	for _, t := range m.Textures {
		size += uint32(len(t.Payload))
	}
	h.FileSize = size
	return h
}

// Bytes serializes the model.
func (m Model) Bytes() []byte {
	h := m.Header()
	out, err := h.MarshalBinary()
	if err != nil {
		panic(err)
	}
	out = append(out, m.Body...)
	if m.SkinInBody {
		out = append(out, m.Skin...)
	}

	off := h.TextureDataOffset
	for _, t := range m.Textures {
		e := mdl.TextureEntry{
			Name:   mdl.NewName(t.Name, mdl.TextureNameSize),
			Width:  t.Width,
			Height: t.Height,
			Offset: off,
		}
		b, _ := e.MarshalBinary()
		out = append(out, b...)
		off += uint32(len(t.Payload))
	}
	if !m.SkinInBody {
		out = append(out, m.Skin...)
	}
	for _, t := range m.Textures {
		out = append(out, t.Payload...)
	}
	return out
}

// Palettized returns a w×h index payload followed by a 768-byte palette,
// filled with a position-derived pattern.
func Palettized(w, h int) []byte {
	out := make([]byte, w*h+768)
	for i := range out {
		out[i] = byte(i*31 + 7)
	}
	return out
}
