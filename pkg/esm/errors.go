package esm

import (
	"errors"
	"fmt"
)

// ErrFormatNotRecognized means the input does not begin with the TES3 file
// signature. It is deliberately not an offset-carrying structural error:
// nothing about the file's framing can be trusted at that point.
var ErrFormatNotRecognized = errors.New("esm: file format not recognized")

// UnexpectedEndError means a primitive read needed more bytes than remained
// in its window. Context names the value being read.
type UnexpectedEndError struct {
	Offset  int
	Context string
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("esm: unexpected end of input at offset %d while reading %s", e.Offset, e.Context)
}

// SizeMismatchError means a length-framed window declared one size but its
// contents consumed another. Offset is the absolute position of the window's
// first byte.
type SizeMismatchError struct {
	Offset   int
	Declared uint32
	Consumed uint32
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("esm: offset %d: declared size %d but consumed %d bytes", e.Offset, e.Declared, e.Consumed)
}

// SignatureMismatchError means a byte position that must hold a fixed tag,
// size or flag value held something else.
type SignatureMismatchError struct {
	Offset   int
	Expected string
	Actual   string
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("esm: offset %d: expected %s, found %s", e.Offset, e.Expected, e.Actual)
}

// UnrecognizedFileTypeError means the header's file-type word is outside the
// defined enumeration.
type UnrecognizedFileTypeError struct {
	Value uint32
}

func (e *UnrecognizedFileTypeError) Error() string {
	return fmt.Sprintf("esm: unrecognized file type %d", e.Value)
}
