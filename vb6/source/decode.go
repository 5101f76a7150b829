package source

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode turns raw file bytes into UTF-8 text. VB6 saved files in the
// system ANSI code page, so anything that is not already valid UTF-8 is
// decoded as Windows-1252. Bytes undefined in that code page become U+FFFD.
//
// The returned flag reports whether a Windows-1252 conversion took place.
func Decode(data []byte) ([]byte, bool, error) {
	if utf8.Valid(data) {
		return data, false, nil
	}
	text, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode windows-1252: %w", err)
	}
	return text, true, nil
}

// Encode converts UTF-8 text back to Windows-1252. Runes outside the code
// page are an error.
func Encode(text []byte) ([]byte, error) {
	data, err := charmap.Windows1252.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("encode windows-1252: %w", err)
	}
	return data, nil
}
