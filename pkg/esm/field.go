package esm

// Field is one tagged, length-framed value inside a record. The concrete
// type of Data must agree with what FieldKind names for the (record, field)
// pair; decode guarantees this and encode enforces it.
type Field struct {
	Tag  Tag
	Data FieldData
}

// FieldData is the payload side of the field sum type. Exactly one
// implementation exists per binary sub-format; consumers dispatch with a
// type switch.
type FieldData interface {
	fieldData()
}

// StringData backs the string, tail-string and fixed-string kinds.
type StringData struct {
	Value string
}

// MultilineData is an ordered list of text lines.
type MultilineData struct {
	Lines []string
}

// MultiStringData is an ordered list of NUL-separated strings.
type MultiStringData struct {
	Values []string
}

// RefData is a signed count or index paired with a fixed-width identifier,
// used for inventory entries.
type RefData struct {
	Index int32
	Name  string
}

// BytesData is an uninterpreted byte body.
type BytesData struct {
	Bytes []byte
}

// FloatData is a 4-byte IEEE-754 value.
type FloatData struct {
	Value float32
}

// IntData is a 4-byte signed integer.
type IntData struct {
	Value int32
}

// ShortData is a 2-byte signed integer.
type ShortData struct {
	Value int16
}

// LongData is an 8-byte signed integer.
type LongData struct {
	Value int64
}

// ByteData is a single unsigned byte.
type ByteData struct {
	Value uint8
}

// CompressedData holds a gzip blob of a field body that is stored raw on
// disk. Large fields (landscape meshes and the like) are kept compressed in
// memory on purpose; the on-disk format never sees the gzip bytes.
type CompressedData struct {
	Gzipped []byte
}

// NewCompressedData compresses raw field-body bytes for in-memory storage.
func NewCompressedData(raw []byte) (CompressedData, error) {
	gz, err := deflate(raw)
	if err != nil {
		return CompressedData{}, err
	}
	return CompressedData{Gzipped: gz}, nil
}

// Raw recovers the field body exactly as it sits on disk.
func (d CompressedData) Raw() ([]byte, error) {
	return inflate(d.Gzipped)
}

// IngredientData is the fixed 56-byte alchemy ingredient block.
type IngredientData struct {
	Weight     float32
	Value      uint32
	Effects    [4]int32
	Skills     [4]int32
	Attributes [4]int32
}

// ScriptHeaderData is the fixed 52-byte script header block.
type ScriptHeaderData struct {
	Name         string
	Shorts       uint32
	Longs        uint32
	Floats       uint32
	DataSize     uint32
	VarTableSize uint32
}

func (StringData) fieldData()       {}
func (MultilineData) fieldData()    {}
func (MultiStringData) fieldData()  {}
func (RefData) fieldData()          {}
func (BytesData) fieldData()        {}
func (FloatData) fieldData()        {}
func (IntData) fieldData()          {}
func (ShortData) fieldData()        {}
func (LongData) fieldData()         {}
func (ByteData) fieldData()         {}
func (CompressedData) fieldData()   {}
func (IngredientData) fieldData()   {}
func (ScriptHeaderData) fieldData() {}
