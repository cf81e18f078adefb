package source

import (
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Decode converts text content to UTF-8. The encoding is taken from a byte
// order mark, then from the charset parameter of contentType, and otherwise
// guessed from the bytes: valid UTF-8 is kept, anything else is read as
// windows-1252.
func Decode(data []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(data, contentType)
	if name == "utf-8" || enc == encoding.Nop {
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}

	// The decoders strip a matching BOM themselves.
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
