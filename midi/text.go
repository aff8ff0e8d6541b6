package midi

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Text encodings for meta event payloads
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift-jis"
	EncodingLatin1   = "latin1"
)

// TextDecoder turns meta text payloads into Go strings. SMF does not say
// which character set text events use; Japanese files are usually
// Shift-JIS and older western files Latin-1.
type TextDecoder struct {
	name string
	enc  encoding.Encoding // nil for UTF-8
}

// NewTextDecoder returns a decoder for one of the Encoding constants. An
// empty name selects UTF-8.
func NewTextDecoder(name string) (*TextDecoder, error) {
	switch strings.ToLower(name) {
	case "", EncodingUTF8, "utf8":
		return &TextDecoder{name: EncodingUTF8}, nil
	case EncodingShiftJIS, "sjis", "shift_jis":
		return &TextDecoder{name: EncodingShiftJIS, enc: japanese.ShiftJIS}, nil
	case EncodingLatin1, "iso-8859-1":
		return &TextDecoder{name: EncodingLatin1, enc: charmap.ISO8859_1}, nil
	}
	return nil, fmt.Errorf("unknown text encoding %q", name)
}

// Name returns the canonical encoding name.
func (d *TextDecoder) Name() string {
	if d == nil {
		return EncodingUTF8
	}
	return d.name
}

// Decode converts b to a string. Invalid sequences are replaced rather
// than reported. A nil decoder treats b as UTF-8.
func (d *TextDecoder) Decode(b []byte) string {
	if d == nil || d.enc == nil {
		if utf8.Valid(b) {
			return string(b)
		}
		return strings.ToValidUTF8(string(b), "�")
	}

	out, _, err := transform.Bytes(d.enc.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
