// Package encoding handles the single-byte character encoding that gzip
// header strings are restricted to: ISO 8859-1, one byte per character.
package encoding

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// EncodeLatin1 converts s to ISO 8859-1 bytes. Runes outside the Latin-1
// repertoire become '?'. A NUL byte would terminate the field early on the
// wire, so embedded NULs are replaced with filler instead of failing.
func EncodeLatin1(s string, filler byte) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		if b == 0x00 {
			b = filler
		}
		out = append(out, b)
	}
	return out
}

// DecodeLatin1 converts ISO 8859-1 bytes back to a string. Every byte value
// maps to a rune, so decoding is total and never fails.
func DecodeLatin1(p []byte) string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, b := range p {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}
	return sb.String()
}
