package esm

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// reader is a bounded cursor over a byte window. base is the absolute
// offset of the window's first byte in the original input, so errors report
// positions in the file rather than in the current window.
type reader struct {
	buf  []byte
	pos  int
	base int
}

func (r *reader) offset() int    { return r.base + r.pos }
func (r *reader) remaining() int { return len(r.buf) - r.pos }

func (r *reader) take(n int, what string) ([]byte, error) {
	if r.remaining() < n {
		return nil, &UnexpectedEndError{Offset: r.offset(), Context: what}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// rest consumes and returns everything left in the window.
func (r *reader) rest() []byte {
	b := r.buf[r.pos:]
	r.pos = len(r.buf)
	return b
}

func (r *reader) u8(what string) (uint8, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16(what string) (uint16, error) {
	b, err := r.take(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32(what string) (uint32, error) {
	b, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) u64(what string) (uint64, error) {
	b, err := r.take(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) tag(what string) (Tag, error) {
	v, err := r.u32(what)
	return Tag(v), err
}

// isolate runs fn over a window of exactly n bytes starting at the cursor
// and then checks that fn consumed the whole window. A short input is an
// UnexpectedEnd; a partly consumed window is a SizeMismatch carrying both
// byte counts. This is the one place the declared-vs-actual discipline is
// enforced, and it nests: fields isolate inside records, records inside the
// file.
func (r *reader) isolate(n uint32, what string, fn func(*reader) error) error {
	start := r.offset()
	if uint64(n) > uint64(r.remaining()) {
		return &UnexpectedEndError{Offset: start, Context: what}
	}
	sub := &reader{buf: r.buf[r.pos : r.pos+int(n)], base: start}
	if err := fn(sub); err != nil {
		return err
	}
	if sub.pos != int(n) {
		return &SizeMismatchError{Offset: start, Declared: n, Consumed: uint32(sub.pos)}
	}
	r.pos += int(n)
	return nil
}

// Decode parses one whole plugin file. It either returns a fully built File
// or the first error encountered; there is no partial result.
func (c *Codec) Decode(data []byte) (*File, error) {
	if len(data) < 4 || Tag(binary.LittleEndian.Uint32(data[:4])) != TES3 {
		return nil, ErrFormatNotRecognized
	}
	r := &reader{buf: data, pos: 4}

	header, err := c.decodeHeader(r)
	if err != nil {
		return nil, err
	}

	var records []Record
	for r.remaining() > 0 {
		rec, err := c.decodeRecord(r)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return &File{Header: header, Records: records}, nil
}

// decodeHeader parses the body of the TES3 record: the HEDR fixed block
// followed by MAST/DATA reference pairs until the record window empties.
// The record's flag word must be zero here, unlike ordinary records.
func (c *Codec) decodeHeader(r *reader) (FileHeader, error) {
	var h FileHeader

	size, err := r.u32("header size")
	if err != nil {
		return h, err
	}
	flagsOff := r.offset()
	flags, err := r.u64("header flags")
	if err != nil {
		return h, err
	}
	if flags != 0 {
		return h, &SignatureMismatchError{
			Offset:   flagsOff,
			Expected: "header flags 0",
			Actual:   fmt.Sprintf("0x%X", flags),
		}
	}

	err = r.isolate(size, "header record", func(w *reader) error {
		tagOff := w.offset()
		tag, err := w.tag("header field tag")
		if err != nil {
			return err
		}
		if tag != HEDR {
			return &SignatureMismatchError{Offset: tagOff, Expected: HEDR.String(), Actual: tag.String()}
		}
		sizeOff := w.offset()
		hsize, err := w.u32("header field size")
		if err != nil {
			return err
		}
		if hsize != headerFixedSize {
			return &SignatureMismatchError{
				Offset:   sizeOff,
				Expected: fmt.Sprintf("HEDR size %d", headerFixedSize),
				Actual:   fmt.Sprintf("%d", hsize),
			}
		}
		if err := w.isolate(hsize, "header data", func(hw *reader) error {
			return c.decodeHeaderData(hw, &h)
		}); err != nil {
			return err
		}
		for w.remaining() >= fieldFrameSize {
			ref, err := c.decodeFileRef(w)
			if err != nil {
				return err
			}
			h.Refs = append(h.Refs, ref)
		}
		return nil
	})
	return h, err
}

// decodeHeaderData parses the 300-byte HEDR body.
func (c *Codec) decodeHeaderData(r *reader, h *FileHeader) error {
	version, err := r.u32("header version")
	if err != nil {
		return err
	}
	h.Version = version

	typeWord, err := r.u32("file type")
	if err != nil {
		return err
	}
	// The model tolerates unknown FileType values, the header does not:
	// a file claiming an undefined type is rejected outright.
	if !FileType(typeWord).Known() {
		return &UnrecognizedFileTypeError{Value: typeWord}
	}
	h.Type = FileType(typeWord)

	author, err := r.take(32, "author")
	if err != nil {
		return err
	}
	h.Author, err = c.textCodec().Decode(trimNulTail(author))
	if err != nil {
		return err
	}

	desc, err := r.take(256, "description")
	if err != nil {
		return err
	}
	text, err := c.textCodec().Decode(trimNulTail(desc))
	if err != nil {
		return err
	}
	// The header description is always CRLF-separated, whatever newline
	// convention the body fields run under.
	h.Description = strings.Split(text, "\r\n")

	h.NumRecords, err = r.u32("record count")
	return err
}

// decodeFileRef parses one master-file dependency: a MAST field holding the
// NUL-terminated name, then a DATA field whose size must be 8, holding the
// master's byte size.
func (c *Codec) decodeFileRef(r *reader) (FileRef, error) {
	var ref FileRef

	tagOff := r.offset()
	tag, err := r.tag("master name tag")
	if err != nil {
		return ref, err
	}
	if tag != MAST {
		return ref, &SignatureMismatchError{Offset: tagOff, Expected: MAST.String(), Actual: tag.String()}
	}
	nameSize, err := r.u32("master name size")
	if err != nil {
		return ref, err
	}
	err = r.isolate(nameSize, "master name", func(w *reader) error {
		// Exactly one terminator comes off, mirroring the single NUL the
		// encoder appends; extra trailing NULs belong to the name.
		name := w.rest()
		if n := len(name); n > 0 && name[n-1] == 0 {
			name = name[:n-1]
		}
		var err error
		ref.Name, err = c.textCodec().Decode(name)
		return err
	})
	if err != nil {
		return ref, err
	}

	tagOff = r.offset()
	tag, err = r.tag("master size tag")
	if err != nil {
		return ref, err
	}
	if tag != DATA {
		return ref, &SignatureMismatchError{Offset: tagOff, Expected: DATA.String(), Actual: tag.String()}
	}
	sizeOff := r.offset()
	dataSize, err := r.u32("master size size")
	if err != nil {
		return ref, err
	}
	if dataSize != 8 {
		return ref, &SignatureMismatchError{
			Offset:   sizeOff,
			Expected: "DATA size 8",
			Actual:   fmt.Sprintf("%d", dataSize),
		}
	}
	ref.Size, err = r.u64("master size")
	return ref, err
}

// decodeRecord parses one record frame and every field inside it.
func (c *Codec) decodeRecord(r *reader) (Record, error) {
	var rec Record

	tag, err := r.tag("record tag")
	if err != nil {
		return rec, err
	}
	rec.Tag = tag

	size, err := r.u32("record size")
	if err != nil {
		return rec, err
	}
	rec.Flags, err = r.u64("record flags")
	if err != nil {
		return rec, err
	}

	err = r.isolate(size, "record body", func(w *reader) error {
		// Stop as soon as a whole field frame no longer fits; isolate
		// reports any leftover bytes as a size mismatch.
		for w.remaining() >= fieldFrameSize {
			f, err := c.decodeField(w, tag)
			if err != nil {
				return err
			}
			rec.Fields = append(rec.Fields, f)
		}
		return nil
	})
	return rec, err
}

func (c *Codec) decodeField(r *reader, record Tag) (Field, error) {
	var f Field

	tag, err := r.tag("field tag")
	if err != nil {
		return f, err
	}
	f.Tag = tag

	size, err := r.u32("field size")
	if err != nil {
		return f, err
	}
	err = r.isolate(size, "field body", func(w *reader) error {
		var err error
		f.Data, err = c.decodeFieldData(w, record, tag)
		return err
	})
	return f, err
}

// decodeFieldData parses a field body according to the dispatch table.
func (c *Codec) decodeFieldData(w *reader, record, tag Tag) (FieldData, error) {
	kind := FieldKind(record, tag)
	switch kind.Code {
	case KindBinary:
		return BytesData{Bytes: append([]byte(nil), w.rest()...)}, nil

	case KindString:
		s, err := c.textCodec().Decode(w.rest())
		return StringData{Value: s}, err

	case KindTailString:
		b := w.rest()
		if c.TrimTails {
			b = trimNulTail(b)
		}
		s, err := c.textCodec().Decode(b)
		return StringData{Value: s}, err

	case KindFixedString:
		b, err := w.take(kind.Width, "fixed string")
		if err != nil {
			return nil, err
		}
		s, err := c.textCodec().Decode(trimNulTail(b))
		return StringData{Value: s}, err

	case KindMultiline:
		s, err := c.textCodec().Decode(w.rest())
		if err != nil {
			return nil, err
		}
		return MultilineData{Lines: strings.Split(s, c.newline())}, nil

	case KindTailMultiline:
		b := w.rest()
		if c.TrimTails {
			b = trimNulTail(b)
		}
		s, err := c.textCodec().Decode(b)
		if err != nil {
			return nil, err
		}
		return MultilineData{Lines: strings.Split(s, c.newline())}, nil

	case KindMultiString:
		s, err := c.textCodec().Decode(w.rest())
		if err != nil {
			return nil, err
		}
		return MultiStringData{Values: strings.Split(s, "\x00")}, nil

	case KindRef:
		idx, err := w.u32("reference index")
		if err != nil {
			return nil, err
		}
		name, err := w.take(idWidth, "reference name")
		if err != nil {
			return nil, err
		}
		s, err := c.textCodec().Decode(trimNulTail(name))
		return RefData{Index: int32(idx), Name: s}, err

	case KindFloat:
		bits, err := w.u32("float value")
		return FloatData{Value: math.Float32frombits(bits)}, err

	case KindInt:
		v, err := w.u32("int value")
		return IntData{Value: int32(v)}, err

	case KindShort:
		v, err := w.u16("short value")
		return ShortData{Value: int16(v)}, err

	case KindLong:
		v, err := w.u64("long value")
		return LongData{Value: int64(v)}, err

	case KindByte:
		v, err := w.u8("byte value")
		return ByteData{Value: v}, err

	case KindCompressed:
		// The disk bytes are the literal field body; compression happens
		// here, on the way into memory, to keep large fields small.
		return NewCompressedData(w.rest())

	case KindIngredient:
		return decodeIngredient(w)

	case KindScript:
		return c.decodeScriptHeader(w)
	}
	panic(fmt.Sprintf("esm: no parser for kind %v", kind.Code))
}

func decodeIngredient(w *reader) (FieldData, error) {
	var d IngredientData

	bits, err := w.u32("ingredient weight")
	if err != nil {
		return nil, err
	}
	d.Weight = math.Float32frombits(bits)
	if d.Value, err = w.u32("ingredient value"); err != nil {
		return nil, err
	}
	for i := range d.Effects {
		v, err := w.u32("ingredient effect")
		if err != nil {
			return nil, err
		}
		d.Effects[i] = int32(v)
	}
	for i := range d.Skills {
		v, err := w.u32("ingredient skill")
		if err != nil {
			return nil, err
		}
		d.Skills[i] = int32(v)
	}
	for i := range d.Attributes {
		v, err := w.u32("ingredient attribute")
		if err != nil {
			return nil, err
		}
		d.Attributes[i] = int32(v)
	}
	return d, nil
}

func (c *Codec) decodeScriptHeader(w *reader) (FieldData, error) {
	var d ScriptHeaderData

	name, err := w.take(idWidth, "script name")
	if err != nil {
		return nil, err
	}
	if d.Name, err = c.textCodec().Decode(trimNulTail(name)); err != nil {
		return nil, err
	}
	if d.Shorts, err = w.u32("script short count"); err != nil {
		return nil, err
	}
	if d.Longs, err = w.u32("script long count"); err != nil {
		return nil, err
	}
	if d.Floats, err = w.u32("script float count"); err != nil {
		return nil, err
	}
	if d.DataSize, err = w.u32("script data size"); err != nil {
		return nil, err
	}
	d.VarTableSize, err = w.u32("script var table size")
	return d, err
}

// trimNulTail strips trailing NUL padding.
func trimNulTail(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}
