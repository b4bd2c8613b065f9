package mdl

import "errors"

// On-disk sizes and fixed addresses of the GoldSrc model layout.
const (
	HeaderSize       = 244
	TextureEntrySize = 80
	ModelNameSize    = 64
	TextureNameSize  = 68

	// FileSizeOffset is the byte address of Header.FileSize.
	FileSizeOffset = 0x48

	// Version is the only model version the converter accepts.
	Version = 10

	// MaxTextures bounds the texture count before the table is allocated.
	MaxTextures = 4096
)

var ErrMalformed = errors.New("mdl: malformed model")

// Variant classifies a model file.
type Variant int

const (
	Unknown Variant = iota
	Normal
	NoTextures
	SequenceOnly
	// Dummy files are shorter than a header: signature, name and size only.
	Dummy
)

func (v Variant) String() string {
	switch v {
	case Normal:
		return "normal"
	case NoTextures:
		return "no-textures"
	case SequenceOnly:
		return "sequence-only"
	case Dummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// Header is the fixed-size model header. Reserved fields hold geometry data
// the converter never interprets; they are written back unchanged.
type Header struct {
	Signature           [4]byte
	Version             uint32
	Name                Name
	FileSize            uint32
	Reserved1           [96]byte
	SubmodelCount       uint32
	SubmodelTableOffset uint32
	TextureCount        uint32
	TextureTableOffset  uint32
	TextureDataOffset   uint32
	SkinCount           uint32
	SkinEntrySize       uint32 // in 2-byte units
	SkinTableOffset     uint32
	SubmeshCount        uint32
	SubmeshTableOffset  uint32
	Reserved2           [32]byte
}

// TextureEntry is one record of the texture table.
type TextureEntry struct {
	Name   Name
	Width  uint32
	Height uint32
	Offset uint32
}

// Variant classifies the header.
func (h *Header) Variant() Variant {
	s := h.Signature
	if s[0] != 'I' || s[1] != 'D' || s[2] != 'S' || h.Version != Version {
		return Unknown
	}
	switch s[3] {
	case 'T':
		if h.TextureCount > 0 {
			return Normal
		}
		return NoTextures
	case 'Q':
		return SequenceOnly
	}
	return Unknown
}

// SkinTableSize is the byte length of the skin table.
func (h *Header) SkinTableSize() int64 {
	return int64(h.SkinCount) * int64(h.SkinEntrySize) * 2
}

// TextureTableSize is the byte length of the texture table.
func (h *Header) TextureTableSize() int64 {
	return int64(h.TextureCount) * TextureEntrySize
}
