package esm

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Open reads and decodes a plugin file. The file is mapped read-only where
// mmap is available and copied otherwise; either way the returned File owns
// its memory and the mapping is released before Open returns.
func (c *Codec) Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := stat.Size()
	if size > int64(int(^uint(0)>>1)) {
		return nil, ErrFormatNotRecognized
	}

	data, mmapErr := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if mmapErr == nil {
		file, err := c.Decode(data)
		_ = unix.Munmap(data)
		return file, err
	}

	data, err = readAllAt(f, int(size))
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// Open reads and decodes a plugin file with the default conventions.
func Open(path string) (*File, error) {
	var c Codec
	return c.Open(path)
}

// WriteFile encodes f and writes it to path.
func (c *Codec) WriteFile(path string, f *File) error {
	data, err := c.Encode(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
