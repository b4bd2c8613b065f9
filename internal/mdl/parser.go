// Package mdl reads and rewrites the header and texture table of GoldSrc
// models converted from the Dreamcast port.
package mdl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Identify classifies raw model bytes. Only the first HeaderSize bytes are
// inspected.
func Identify(data []byte) Variant {
	if len(data) < HeaderSize {
		return Dummy
	}
	h, err := ParseHeader(data)
	if err != nil {
		return Unknown
	}
	return h.Variant()
}

// IdentifyReader is Identify over the start of r.
func IdentifyReader(r io.ReaderAt) (Variant, error) {
	buf := make([]byte, HeaderSize)
	n, err := r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return Unknown, fmt.Errorf("mdl: read header: %w", err)
	}
	return Identify(buf[:n]), nil
}

// ReadHeader reads and parses the header at the start of r.
func ReadHeader(r io.ReaderAt) (Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := r.ReadAt(buf, 0)
	if n < HeaderSize {
		if err == nil || errors.Is(err, io.EOF) {
			return Header{}, fmt.Errorf("%w: header is %d bytes, want %d", ErrMalformed, n, HeaderSize)
		}
		return Header{}, fmt.Errorf("mdl: read header: %w", err)
	}
	return ParseHeader(buf)
}

// ParseHeader decodes the first HeaderSize bytes of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header is %d bytes, want %d", ErrMalformed, len(data), HeaderSize)
	}
	r := &reader{data: data[:HeaderSize]}

	var h Header
	copy(h.Signature[:], r.bytes(4))
	h.Version = r.u32()
	h.Name = parseName(r.bytes(ModelNameSize))
	h.FileSize = r.u32()
	copy(h.Reserved1[:], r.bytes(len(h.Reserved1)))
	h.SubmodelCount = r.u32()
	h.SubmodelTableOffset = r.u32()
	h.TextureCount = r.u32()
	h.TextureTableOffset = r.u32()
	h.TextureDataOffset = r.u32()
	h.SkinCount = r.u32()
	h.SkinEntrySize = r.u32()
	h.SkinTableOffset = r.u32()
	h.SubmeshCount = r.u32()
	h.SubmeshTableOffset = r.u32()
	copy(h.Reserved2[:], r.bytes(len(h.Reserved2)))
	return h, nil
}

// MarshalBinary encodes the header into HeaderSize bytes.
func (h *Header) MarshalBinary() ([]byte, error) {
	w := &writer{data: make([]byte, 0, HeaderSize)}
	w.bytes(h.Signature[:])
	w.u32(h.Version)
	w.name(h.Name, ModelNameSize)
	w.u32(h.FileSize)
	w.bytes(h.Reserved1[:])
	w.u32(h.SubmodelCount)
	w.u32(h.SubmodelTableOffset)
	w.u32(h.TextureCount)
	w.u32(h.TextureTableOffset)
	w.u32(h.TextureDataOffset)
	w.u32(h.SkinCount)
	w.u32(h.SkinEntrySize)
	w.u32(h.SkinTableOffset)
	w.u32(h.SubmeshCount)
	w.u32(h.SubmeshTableOffset)
	w.bytes(h.Reserved2[:])
	if len(w.data) != HeaderSize {
		return nil, fmt.Errorf("mdl: header encoded to %d bytes", len(w.data))
	}
	return w.data, nil
}

// ReadTextureTable reads h.TextureCount entries starting at
// h.TextureTableOffset.
func ReadTextureTable(r io.ReaderAt, h Header) ([]TextureEntry, error) {
	if h.TextureCount > MaxTextures {
		return nil, fmt.Errorf("%w: %d textures", ErrMalformed, h.TextureCount)
	}
	if h.TextureTableOffset < HeaderSize {
		return nil, fmt.Errorf("%w: texture table at 0x%X overlaps header", ErrMalformed, h.TextureTableOffset)
	}
	buf := make([]byte, h.TextureTableSize())
	n, err := r.ReadAt(buf, int64(h.TextureTableOffset))
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			err = ErrMalformed
		}
		return nil, fmt.Errorf("mdl: texture table at 0x%X: %w", h.TextureTableOffset, err)
	}

	table := make([]TextureEntry, h.TextureCount)
	for i := range table {
		table[i] = parseTextureEntry(buf[i*TextureEntrySize : (i+1)*TextureEntrySize])
	}
	return table, nil
}

func parseTextureEntry(b []byte) TextureEntry {
	r := &reader{data: b}
	return TextureEntry{
		Name:   parseName(r.bytes(TextureNameSize)),
		Width:  r.u32(),
		Height: r.u32(),
		Offset: r.u32(),
	}
}

// MarshalBinary encodes the entry into TextureEntrySize bytes.
func (e *TextureEntry) MarshalBinary() ([]byte, error) {
	w := &writer{data: make([]byte, 0, TextureEntrySize)}
	w.name(e.Name, TextureNameSize)
	w.u32(e.Width)
	w.u32(e.Height)
	w.u32(e.Offset)
	return w.data, nil
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) bytes(n int) []byte {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return make([]byte, n)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u32() uint32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

type writer struct {
	data []byte
}

func (w *writer) bytes(b []byte) {
	w.data = append(w.data, b...)
}

func (w *writer) u32(v uint32) {
	w.data = binary.LittleEndian.AppendUint32(w.data, v)
}

// name writes n padded or cut to exactly size bytes. A zero Name writes
// size NUL bytes.
func (w *writer) name(n Name, size int) {
	field := make([]byte, size)
	copy(field, n.raw)
	w.data = append(w.data, field...)
}
