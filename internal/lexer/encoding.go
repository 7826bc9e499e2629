package lexer

import (
	"bytes"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeSource detects a translation unit's encoding from its BOM (UTF-8,
// UTF-16 LE, UTF-16 BE) and returns its content as a UTF-8 string with the
// BOM stripped. Files without a BOM are assumed to already be UTF-8 (or, for
// legacy C sources written against the host's narrow character set, treated
// byte-for-byte as Latin-1 and promoted to runes) -- the same fallback order
// internal/interp/encoding.go uses for DWScript source files, relocated here
// since C/C++ translation units are the ones commonly saved with a BOM.
func DecodeSource(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()

	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", errors.Wrap(err, "lexer: decoding UTF-16 source")
	}

	if len(utf8Data) >= 3 && utf8Data[0] == 0xEF && utf8Data[1] == 0xBB && utf8Data[2] == 0xBF {
		utf8Data = utf8Data[3:]
	}

	result := bytes.TrimPrefix(utf8Data, []byte{0xEF, 0xBB, 0xBF})
	return string(result), nil
}
