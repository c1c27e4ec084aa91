// Package encoding provides text helpers for fixed-width string fields in
// engine binary formats.
package encoding

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// FixedStringToUTF8 reads a null-terminated string from a fixed-size field.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func FixedStringToUTF8(data []byte) string {
	if nullIdx := bytes.IndexByte(data, 0); nullIdx >= 0 {
		data = data[:nullIdx]
	}
	return string(bytes.ToValidUTF8(data, []byte("\uFFFD")))
}

// UTF8ToFixedString encodes s into a zero-padded field of the given size.
// The string is NFC normalized first; if it does not fit it is cut at the
// last rune boundary so the field never holds a partial character.
// The second result reports whether truncation happened.
func UTF8ToFixedString(s string, size int) ([]byte, bool) {
	result := make([]byte, size)
	encoded := norm.NFC.Bytes([]byte(s))

	truncated := false
	if len(encoded) > size {
		truncated = true
		cut := size
		for cut > 0 && !utf8.RuneStart(encoded[cut]) {
			cut--
		}
		encoded = encoded[:cut]
	}
	copy(result, encoded)
	return result, truncated
}
