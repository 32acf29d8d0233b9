package esm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// deflate gzips b. inflate(deflate(b)) == b for every b, which is what
// makes the compressed field kind round-trip exact.
func deflate(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, fmt.Errorf("esm: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("esm: compress: %w", err)
	}
	return buf.Bytes(), nil
}

func inflate(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("esm: decompress: %w", err)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("esm: decompress: %w", err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("esm: decompress: %w", err)
	}
	return out, nil
}
