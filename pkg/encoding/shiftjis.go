// Package encoding provides text encoding utilities for MMD motion data.
//
// VMD stores bone and morph names as fixed-size, null-padded Shift-JIS
// fields. Decoders that do not convert text hand those fields over as raw
// bytes; the helpers here turn them into the UTF-8 names used by the
// mapping tables.
package encoding

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Field widths of the name fields in a VMD file.
const (
	MotionNameSize = 15
	MorphNameSize  = 15
	ModelNameSize  = 20
)

// ShiftJISToUTF8 converts Shift-JIS encoded bytes to a UTF-8 string.
// Returns the original bytes as a string if conversion fails.
func ShiftJISToUTF8(data []byte) string {
	decoder := japanese.ShiftJIS.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// UTF8ToShiftJIS converts a UTF-8 string to Shift-JIS encoded bytes.
// Returns the original bytes if conversion fails.
func UTF8ToShiftJIS(s string) []byte {
	encoder := japanese.ShiftJIS.NewEncoder()
	result, _, err := transform.Bytes(encoder, []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// FixedStringToUTF8 converts a fixed-size Shift-JIS field to a UTF-8 string.
// Everything after the first null byte is padding and is discarded.
//
// Names truncated at the field boundary can end in half of a double-byte
// character; the dangling lead byte is dropped rather than decoded.
func FixedStringToUTF8(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	if n := len(data); n > 0 && isLeadByte(data[n-1]) && !completesPair(data) {
		data = data[:n-1]
	}
	return ShiftJISToUTF8(data)
}

// UTF8ToFixedString converts a UTF-8 string to a fixed-size Shift-JIS field.
// Pads with null bytes to fill the specified size; longer names are cut.
func UTF8ToFixedString(s string, size int) []byte {
	result := make([]byte, size)
	copy(result, UTF8ToShiftJIS(s))
	return result
}

// NormalizeName decodes a name that may have arrived either as UTF-8 or as
// raw Shift-JIS bytes smuggled through a Go string.
func NormalizeName(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return FixedStringToUTF8([]byte(s))
}

// isLeadByte reports whether b starts a double-byte Shift-JIS character.
func isLeadByte(b byte) bool {
	return (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC)
}

// completesPair reports whether the final byte of data is the trail byte of
// a double-byte character that starts earlier in the slice.
func completesPair(data []byte) bool {
	i := 0
	for i < len(data) {
		if isLeadByte(data[i]) {
			if i+1 == len(data) {
				return false
			}
			i += 2
			continue
		}
		i++
	}
	return true
}
