package mdl

import "golang.org/x/text/encoding/charmap"

// Name is a fixed-width, NUL-terminated Windows-1252 string field. The last
// byte of the field is always a terminator, so at most size-1 bytes of text
// survive. Truncation happens once, when the Name is parsed or constructed.
type Name struct {
	text string
	raw  []byte // exactly size bytes, as written back to disk
}

// NewName encodes s into a zero-padded field of size bytes, truncating the
// encoded text to size-1 bytes. Characters outside Windows-1252 become '?'.
func NewName(s string, size int) Name {
	if size < 1 {
		return Name{}
	}
	enc := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		enc = append(enc, b)
	}
	if len(enc) > size-1 {
		enc = enc[:size-1]
	}
	raw := make([]byte, size)
	copy(raw, enc)
	return Name{text: decodeText(enc), raw: raw}
}

// parseName reads a field verbatim, forcing its last byte to NUL. Bytes after
// the first terminator are kept so unchanged names round-trip exactly.
func parseName(field []byte) Name {
	raw := make([]byte, len(field))
	copy(raw, field)
	if len(raw) > 0 {
		raw[len(raw)-1] = 0
	}
	end := 0
	for end < len(raw) && raw[end] != 0 {
		end++
	}
	return Name{text: decodeText(raw[:end]), raw: raw}
}

func decodeText(b []byte) string {
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// String returns the decoded text.
func (n Name) String() string { return n.text }

// Size returns the on-disk width of the field.
func (n Name) Size() int { return len(n.raw) }

// Bytes returns a copy of the on-disk field.
func (n Name) Bytes() []byte {
	out := make([]byte, len(n.raw))
	copy(out, n.raw)
	return out
}
