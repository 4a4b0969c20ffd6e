package dataprocessing

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeToUTF8 strips any byte order mark and converts the input to UTF-8.
// BOM-marked UTF-16 is decoded; unmarked input that is not valid UTF-8 is
// treated as Windows-1252, the usual encoding of spreadsheet CSV exports.
// The detected encoding name is returned alongside the decoded bytes.
func DecodeToUTF8(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], "utf-8-bom", nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		name := "utf-16le"
		if bytes.HasPrefix(data, bomUTF16BE) {
			name = "utf-16be"
		}
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return nil, "", fmt.Errorf("%s decode failed: %w", name, err)
		}
		return decoded, name, nil
	case utf8.Valid(data):
		return data, "utf-8", nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("windows-1252 decode failed: %w", err)
	}
	return decoded, "windows-1252", nil
}
