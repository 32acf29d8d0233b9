package esm

import "fmt"

// FileType is the file-type word of the header. Unknown values are carried
// as-is and serialize back to the same word, but the decoder refuses them
// when they appear in an actual header (see decodeHeader).
type FileType uint32

const (
	Plugin FileType = 0
	Master FileType = 1
	Save   FileType = 32
)

// Known reports whether the value is one of the three defined file types.
func (t FileType) Known() bool {
	switch t {
	case Plugin, Master, Save:
		return true
	}
	return false
}

func (t FileType) String() string {
	switch t {
	case Plugin:
		return "plugin"
	case Master:
		return "master"
	case Save:
		return "save"
	default:
		return fmt.Sprintf("type(%d)", uint32(t))
	}
}

// FileRef records a dependency on a master file: its name and its byte size
// at the time the dependent file was written.
type FileRef struct {
	Name string
	Size uint64
}

// FileHeader is the decoded TES3 header record.
//
// NumRecords is the record count the writing tool claimed; it is carried
// through untouched and never checked against the actual record sequence.
type FileHeader struct {
	Version     uint32
	Type        FileType
	Author      string
	Description []string
	NumRecords  uint32
	Refs        []FileRef
}

// Record is a tagged, length-framed sequence of fields plus a 64-bit flag
// word. Field order is significant and preserved verbatim.
type Record struct {
	Tag    Tag
	Flags  uint64
	Fields []Field
}

// File is one whole plugin: the header and every following record, in file
// order.
type File struct {
	Header  FileHeader
	Records []Record
}
