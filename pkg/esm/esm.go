// Package esm reads and writes the TES3 plugin file format (.esp/.esm/.ess).
//
// A plugin file is a flat sequence of length-framed records, each holding a
// flat sequence of length-framed fields, all little-endian:
//
//	[tag(4)][size(4)][flags(8)][fields...]          record
//	[tag(4)][size(4)][body...]                      field
//
// The first record is always TES3 and carries the file header (version, file
// type, author, description, master-file references). Every declared size is
// checked against the bytes actually consumed; any disagreement aborts the
// whole decode with an offset-carrying error. Encoding mirrors decoding and
// always computes size prefixes from the bytes actually emitted, so a stale
// size can never be written.
//
// Decode and Encode are pure transformations over in-memory byte slices. All
// package-level lookup tables are built once and never mutated, so any number
// of codecs may run concurrently.
package esm

// Codec holds the conventions a decode/encode pass runs under. The zero
// value is a working codec: Windows-1252 text, DOS line endings, no
// tail trimming.
type Codec struct {
	// Text converts between the format's single-byte text encoding and Go
	// strings. Nil means Windows-1252.
	Text TextCodec

	// TrimTails selects the older text convention in which certain string
	// and multiline fields carry a trailing NUL that is not part of the
	// value. When set, decode strips those tails.
	TrimTails bool

	// UnixNewlines splits and joins multiline fields on LF instead of CRLF.
	UnixNewlines bool
}

// headerFixedSize is the byte length of the HEDR field body.
const headerFixedSize = 300

// fieldFrameSize is the smallest possible field: tag plus size prefix.
const fieldFrameSize = 8

func (c *Codec) textCodec() TextCodec {
	if c.Text != nil {
		return c.Text
	}
	return Windows1252
}

func (c *Codec) newline() string {
	if c.UnixNewlines {
		return "\n"
	}
	return "\r\n"
}

// Decode parses a complete plugin file with the default conventions.
func Decode(data []byte) (*File, error) {
	var c Codec
	return c.Decode(data)
}

// Encode serializes a complete plugin file with the default conventions.
func Encode(f *File) ([]byte, error) {
	var c Codec
	return c.Encode(f)
}
