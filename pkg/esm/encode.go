package esm

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// nanBits is the one bit pattern NaN floats are written as.
const nanBits = 0x7FC00000

type writer struct {
	buf []byte
}

func (w *writer) bytes(b []byte) { w.buf = append(w.buf, b...) }
func (w *writer) u8(v uint8)     { w.buf = append(w.buf, v) }
func (w *writer) u16(v uint16)   { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *writer) u32(v uint32)   { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *writer) u64(v uint64)   { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }
func (w *writer) tag(t Tag)      { w.u32(uint32(t)) }

func (w *writer) pad(n int) {
	for range n {
		w.buf = append(w.buf, 0)
	}
}

// reserveSize writes a placeholder size prefix and returns its position.
func (w *writer) reserveSize() int {
	at := len(w.buf)
	w.u32(0)
	return at
}

// patchSize fills a reserved size prefix with the number of bytes emitted
// since start. Sizes are always measured this way, never copied from a
// decoded value, so they cannot go stale.
func (w *writer) patchSize(at, start int) {
	binary.LittleEndian.PutUint32(w.buf[at:], uint32(len(w.buf)-start))
}

// Encode serializes a complete plugin file. It fails only when a value
// cannot be expressed on disk: text outside the code page, strings longer
// than their fixed width, or a corrupted compressed blob. A field whose
// payload variant disagrees with the dispatch table is a programming error
// and panics.
func (c *Codec) Encode(f *File) ([]byte, error) {
	w := &writer{}
	if err := c.encodeHeader(w, &f.Header); err != nil {
		return nil, err
	}
	for i := range f.Records {
		if err := c.encodeRecord(w, &f.Records[i]); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

func (c *Codec) encodeHeader(w *writer, h *FileHeader) error {
	w.tag(TES3)
	sizeAt := w.reserveSize()
	w.u64(0) // header flags are always zero
	start := len(w.buf)

	w.tag(HEDR)
	w.u32(headerFixedSize)
	w.u32(h.Version)
	w.u32(uint32(h.Type))
	if err := c.fixedString(w, h.Author, 32, "author"); err != nil {
		return err
	}
	if err := c.fixedString(w, strings.Join(h.Description, "\r\n"), 256, "description"); err != nil {
		return err
	}
	w.u32(h.NumRecords)

	for _, ref := range h.Refs {
		w.tag(MAST)
		nameAt := w.reserveSize()
		nameStart := len(w.buf)
		name, err := c.textCodec().Encode(ref.Name)
		if err != nil {
			return err
		}
		w.bytes(name)
		w.u8(0) // name terminator
		w.patchSize(nameAt, nameStart)

		w.tag(DATA)
		w.u32(8)
		w.u64(ref.Size)
	}

	w.patchSize(sizeAt, start)
	return nil
}

func (c *Codec) encodeRecord(w *writer, rec *Record) error {
	w.tag(rec.Tag)
	sizeAt := w.reserveSize()
	w.u64(rec.Flags)
	start := len(w.buf)
	for _, f := range rec.Fields {
		if err := c.encodeField(w, rec.Tag, f); err != nil {
			return err
		}
	}
	w.patchSize(sizeAt, start)
	return nil
}

func (c *Codec) encodeField(w *writer, record Tag, f Field) error {
	w.tag(f.Tag)
	sizeAt := w.reserveSize()
	start := len(w.buf)
	if err := c.encodeFieldData(w, record, f); err != nil {
		return err
	}
	w.patchSize(sizeAt, start)
	return nil
}

func (c *Codec) encodeFieldData(w *writer, record Tag, f Field) error {
	kind := FieldKind(record, f.Tag)
	switch kind.Code {
	case KindBinary:
		w.bytes(fieldAs[BytesData](record, f, kind).Bytes)
		return nil

	case KindString, KindTailString:
		b, err := c.textCodec().Encode(fieldAs[StringData](record, f, kind).Value)
		if err != nil {
			return err
		}
		w.bytes(b)
		return nil

	case KindFixedString:
		return c.fixedString(w, fieldAs[StringData](record, f, kind).Value, kind.Width, f.Tag.String())

	case KindMultiline, KindTailMultiline:
		d := fieldAs[MultilineData](record, f, kind)
		b, err := c.textCodec().Encode(strings.Join(d.Lines, c.newline()))
		if err != nil {
			return err
		}
		w.bytes(b)
		return nil

	case KindMultiString:
		d := fieldAs[MultiStringData](record, f, kind)
		b, err := c.textCodec().Encode(strings.Join(d.Values, "\x00"))
		if err != nil {
			return err
		}
		w.bytes(b)
		return nil

	case KindRef:
		d := fieldAs[RefData](record, f, kind)
		w.u32(uint32(d.Index))
		return c.fixedString(w, d.Name, idWidth, f.Tag.String())

	case KindFloat:
		v := fieldAs[FloatData](record, f, kind).Value
		bits := math.Float32bits(v)
		if v != v {
			bits = nanBits
		}
		w.u32(bits)
		return nil

	case KindInt:
		w.u32(uint32(fieldAs[IntData](record, f, kind).Value))
		return nil

	case KindShort:
		w.u16(uint16(fieldAs[ShortData](record, f, kind).Value))
		return nil

	case KindLong:
		w.u64(uint64(fieldAs[LongData](record, f, kind).Value))
		return nil

	case KindByte:
		w.u8(fieldAs[ByteData](record, f, kind).Value)
		return nil

	case KindCompressed:
		// The in-memory blob is gzipped; the disk wants the original bytes.
		raw, err := fieldAs[CompressedData](record, f, kind).Raw()
		if err != nil {
			return fmt.Errorf("esm: field %v in %v: %w", f.Tag, record, err)
		}
		w.bytes(raw)
		return nil

	case KindIngredient:
		d := fieldAs[IngredientData](record, f, kind)
		w.u32(math.Float32bits(d.Weight))
		w.u32(d.Value)
		for _, v := range d.Effects {
			w.u32(uint32(v))
		}
		for _, v := range d.Skills {
			w.u32(uint32(v))
		}
		for _, v := range d.Attributes {
			w.u32(uint32(v))
		}
		return nil

	case KindScript:
		d := fieldAs[ScriptHeaderData](record, f, kind)
		if err := c.fixedString(w, d.Name, idWidth, f.Tag.String()); err != nil {
			return err
		}
		w.u32(d.Shorts)
		w.u32(d.Longs)
		w.u32(d.Floats)
		w.u32(d.DataSize)
		w.u32(d.VarTableSize)
		return nil
	}
	panic(fmt.Sprintf("esm: no serializer for kind %v", kind.Code))
}

// fixedString emits s NUL-padded to exactly width bytes.
func (c *Codec) fixedString(w *writer, s string, width int, what string) error {
	b, err := c.textCodec().Encode(s)
	if err != nil {
		return err
	}
	if len(b) > width {
		return fmt.Errorf("esm: %s %q does not fit in %d bytes", what, s, width)
	}
	w.bytes(b)
	w.pad(width - len(b))
	return nil
}

// fieldAs asserts the payload variant the dispatch table demands for this
// field. A mismatch is a defect in the caller's construction of the value,
// not a recoverable condition.
func fieldAs[T FieldData](record Tag, f Field, kind Kind) T {
	d, ok := f.Data.(T)
	if !ok {
		panic(fmt.Sprintf("esm: field %v in record %v: kind %v requires %T, have %T",
			f.Tag, record, kind.Code, d, f.Data))
	}
	return d
}
