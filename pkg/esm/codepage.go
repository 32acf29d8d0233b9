package esm

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// TextCodec converts between the format's single-byte text encoding and Go
// strings. Implementations must be safe for concurrent use.
type TextCodec interface {
	Decode(b []byte) (string, error)
	Encode(s string) ([]byte, error)
}

// Windows1252 is the codec for the western-release game data. Decoding
// cannot fail and is reversible for all 256 byte values; encoding fails for
// runes the code page cannot express.
var Windows1252 TextCodec = windows1252{}

type windows1252 struct{}

func (windows1252) Decode(b []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("esm: decode text: %w", err)
	}
	return string(out), nil
}

func (windows1252) Encode(s string) ([]byte, error) {
	out, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("esm: encode text %q: %w", s, err)
	}
	return out, nil
}
