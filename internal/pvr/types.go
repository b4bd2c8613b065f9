package pvr

import "errors"

// Header magics, little-endian.
const (
	GlobalMagic = 0x58494247 // "GBIX"
	ImageMagic  = 0x54525650 // "PVRT"
)

const (
	GlobalHeaderSize = 16
	ImageHeaderSize  = 16
)

// ColorRGB565 is the only color format found in the Dreamcast models.
const ColorRGB565 = 0x01

// Image formats (addressing modes).
const (
	FormatTwiddled    = 0x01
	FormatVQ          = 0x03
	FormatRectangular = 0x09
)

// MaxDimension bounds width and height before any buffer is allocated.
const MaxDimension = 4096

// VQ codebook: 256 entries of four RGB565 texels.
const (
	CodebookEntries   = 256
	CodebookEntrySize = 8
	CodebookSize      = CodebookEntries * CodebookEntrySize
)

var (
	ErrBadSignature      = errors.New("pvr: bad header signature")
	ErrUnsupportedFormat = errors.New("pvr: unsupported format")
	ErrTruncated         = errors.New("pvr: truncated data")
	ErrTooLarge          = errors.New("pvr: image dimensions out of range")
)

// GlobalHeader is the leading GBIX record.
type GlobalHeader struct {
	Signature uint32
	// ImageHeaderOffset counts bytes after the Signature and
	// ImageHeaderOffset fields themselves.
	ImageHeaderOffset uint32
	GlobalIndex       uint64
}

// ImageHeader is the PVRT record that follows the global header.
type ImageHeader struct {
	Signature   uint32
	Size        uint32
	ColorFormat uint8
	ImageFormat uint8
	Reserved    uint16
	Width       uint16
	Height      uint16
}

// Image is a linear RGB565 bitmap, row-major, top row first.
type Image struct {
	Width  int
	Height int
	Pix    []uint16
}

// NewImage allocates a zeroed w×h image.
func NewImage(w, h int) *Image {
	return &Image{Width: w, Height: h, Pix: make([]uint16, w*h)}
}

// At returns the RGB565 sample at (x, y).
func (m *Image) At(x, y int) uint16 {
	return m.Pix[y*m.Width+x]
}

// Set stores an RGB565 sample at (x, y).
func (m *Image) Set(x, y int, c uint16) {
	m.Pix[y*m.Width+x] = c
}

// FormatName returns a short label for an image format tag.
func FormatName(f uint8) string {
	switch f {
	case FormatTwiddled:
		return "twiddled"
	case FormatVQ:
		return "vq"
	case FormatRectangular:
		return "rectangular"
	default:
		return "unknown"
	}
}
