// Package esmjson converts decoded plugin files to and from an editable
// JSON document form.
//
// The document is lossless with respect to the esm data model: exporting a
// file and importing the document yields an identical model, and field
// variants are reconstructed through the same dispatch table the binary
// codec uses, so an imported file always satisfies the encoder's variant
// invariant. Compressed fields appear in the document as their raw
// (uncompressed) bytes to keep them inspectable.
package esmjson

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/skelsey/tes3io/pkg/esm"
)

// Document is the JSON form of one plugin file.
type Document struct {
	Header  Header   `json:"header"`
	Records []Record `json:"records"`
}

// Header mirrors esm.FileHeader.
type Header struct {
	Version     uint32   `json:"version"`
	Type        string   `json:"type"`
	Author      string   `json:"author"`
	Description []string `json:"description"`
	NumRecords  uint32   `json:"num_records"`
	Masters     []Master `json:"masters,omitempty"`
}

// Master is one master-file dependency.
type Master struct {
	Name string `json:"name"`
	Size uint64 `json:"size"`
}

// Record mirrors esm.Record. Tags are written as their mnemonic, or a
// 0x-prefixed word for unrecognized marks.
type Record struct {
	Tag    string  `json:"tag"`
	Flags  uint64  `json:"flags,omitempty"`
	Fields []Field `json:"fields"`
}

// Field holds exactly one payload member, matching the field's kind.
type Field struct {
	Tag        string      `json:"tag"`
	String     *string     `json:"string,omitempty"`
	Lines      []string    `json:"lines,omitempty"`
	Strings    []string    `json:"strings,omitempty"`
	Ref        *Ref        `json:"ref,omitempty"`
	Bytes      []byte      `json:"bytes,omitempty"`
	Float      *float32    `json:"float,omitempty"`
	Int        *int32      `json:"int,omitempty"`
	Short      *int16      `json:"short,omitempty"`
	Long       *int64      `json:"long,omitempty"`
	Byte       *uint8      `json:"byte,omitempty"`
	Ingredient *Ingredient `json:"ingredient,omitempty"`
	Script     *Script     `json:"script,omitempty"`
}

// Ref mirrors esm.RefData.
type Ref struct {
	Index int32  `json:"index"`
	Name  string `json:"name"`
}

// Ingredient mirrors esm.IngredientData.
type Ingredient struct {
	Weight     float32  `json:"weight"`
	Value      uint32   `json:"value"`
	Effects    [4]int32 `json:"effects"`
	Skills     [4]int32 `json:"skills"`
	Attributes [4]int32 `json:"attributes"`
}

// Script mirrors esm.ScriptHeaderData.
type Script struct {
	Name         string `json:"name"`
	Shorts       uint32 `json:"shorts"`
	Longs        uint32 `json:"longs"`
	Floats       uint32 `json:"floats"`
	DataSize     uint32 `json:"data_size"`
	VarTableSize uint32 `json:"var_table_size"`
}

// Marshal renders a plugin file as an indented JSON document.
func Marshal(f *esm.File) ([]byte, error) {
	doc, err := fromFile(f)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal parses a JSON document back into a plugin file.
func Unmarshal(data []byte) (*esm.File, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("esmjson: %w", err)
	}
	return toFile(&doc)
}

func fromFile(f *esm.File) (*Document, error) {
	doc := &Document{
		Header: Header{
			Version:     f.Header.Version,
			Type:        fileTypeString(f.Header.Type),
			Author:      f.Header.Author,
			Description: f.Header.Description,
			NumRecords:  f.Header.NumRecords,
		},
	}
	for _, ref := range f.Header.Refs {
		doc.Header.Masters = append(doc.Header.Masters, Master{Name: ref.Name, Size: ref.Size})
	}
	for _, rec := range f.Records {
		r := Record{Tag: rec.Tag.String(), Flags: rec.Flags}
		for _, fld := range rec.Fields {
			jf, err := fromField(fld)
			if err != nil {
				return nil, fmt.Errorf("esmjson: record %v: %w", rec.Tag, err)
			}
			r.Fields = append(r.Fields, jf)
		}
		doc.Records = append(doc.Records, r)
	}
	return doc, nil
}

func fromField(f esm.Field) (Field, error) {
	out := Field{Tag: f.Tag.String()}
	switch d := f.Data.(type) {
	case esm.StringData:
		out.String = &d.Value
	case esm.MultilineData:
		out.Lines = d.Lines
	case esm.MultiStringData:
		out.Strings = d.Values
	case esm.RefData:
		out.Ref = &Ref{Index: d.Index, Name: d.Name}
	case esm.BytesData:
		out.Bytes = d.Bytes
	case esm.FloatData:
		out.Float = &d.Value
	case esm.IntData:
		out.Int = &d.Value
	case esm.ShortData:
		out.Short = &d.Value
	case esm.LongData:
		out.Long = &d.Value
	case esm.ByteData:
		out.Byte = &d.Value
	case esm.CompressedData:
		raw, err := d.Raw()
		if err != nil {
			return out, fmt.Errorf("field %v: %w", f.Tag, err)
		}
		out.Bytes = raw
	case esm.IngredientData:
		out.Ingredient = &Ingredient{
			Weight:     d.Weight,
			Value:      d.Value,
			Effects:    d.Effects,
			Skills:     d.Skills,
			Attributes: d.Attributes,
		}
	case esm.ScriptHeaderData:
		out.Script = &Script{
			Name:         d.Name,
			Shorts:       d.Shorts,
			Longs:        d.Longs,
			Floats:       d.Floats,
			DataSize:     d.DataSize,
			VarTableSize: d.VarTableSize,
		}
	default:
		return out, fmt.Errorf("field %v: unhandled payload %T", f.Tag, f.Data)
	}
	return out, nil
}

func toFile(doc *Document) (*esm.File, error) {
	fileType, err := parseFileType(doc.Header.Type)
	if err != nil {
		return nil, err
	}
	f := &esm.File{
		Header: esm.FileHeader{
			Version:     doc.Header.Version,
			Type:        fileType,
			Author:      doc.Header.Author,
			Description: doc.Header.Description,
			NumRecords:  doc.Header.NumRecords,
		},
	}
	for _, m := range doc.Header.Masters {
		f.Header.Refs = append(f.Header.Refs, esm.FileRef{Name: m.Name, Size: m.Size})
	}
	for i, r := range doc.Records {
		recTag, err := esm.ParseTag(r.Tag)
		if err != nil {
			return nil, fmt.Errorf("esmjson: record %d: %w", i, err)
		}
		rec := esm.Record{Tag: recTag, Flags: r.Flags}
		for _, jf := range r.Fields {
			fld, err := toField(recTag, jf)
			if err != nil {
				return nil, fmt.Errorf("esmjson: record %v: %w", recTag, err)
			}
			rec.Fields = append(rec.Fields, fld)
		}
		f.Records = append(f.Records, rec)
	}
	return f, nil
}

// toField rebuilds the payload variant the dispatch table demands, so the
// result can always be handed to the binary encoder.
func toField(record esm.Tag, jf Field) (esm.Field, error) {
	tag, err := esm.ParseTag(jf.Tag)
	if err != nil {
		return esm.Field{}, err
	}
	f := esm.Field{Tag: tag}

	kind := esm.FieldKind(record, tag)
	switch kind.Code {
	case esm.KindBinary:
		f.Data = esm.BytesData{Bytes: jf.Bytes}
	case esm.KindString, esm.KindTailString, esm.KindFixedString:
		if jf.String == nil {
			return f, fmt.Errorf("field %v: missing string member", tag)
		}
		f.Data = esm.StringData{Value: *jf.String}
	case esm.KindMultiline, esm.KindTailMultiline:
		if jf.Lines == nil {
			return f, fmt.Errorf("field %v: missing lines member", tag)
		}
		f.Data = esm.MultilineData{Lines: jf.Lines}
	case esm.KindMultiString:
		if jf.Strings == nil {
			return f, fmt.Errorf("field %v: missing strings member", tag)
		}
		f.Data = esm.MultiStringData{Values: jf.Strings}
	case esm.KindRef:
		if jf.Ref == nil {
			return f, fmt.Errorf("field %v: missing ref member", tag)
		}
		f.Data = esm.RefData{Index: jf.Ref.Index, Name: jf.Ref.Name}
	case esm.KindFloat:
		if jf.Float == nil {
			return f, fmt.Errorf("field %v: missing float member", tag)
		}
		f.Data = esm.FloatData{Value: *jf.Float}
	case esm.KindInt:
		if jf.Int == nil {
			return f, fmt.Errorf("field %v: missing int member", tag)
		}
		f.Data = esm.IntData{Value: *jf.Int}
	case esm.KindShort:
		if jf.Short == nil {
			return f, fmt.Errorf("field %v: missing short member", tag)
		}
		f.Data = esm.ShortData{Value: *jf.Short}
	case esm.KindLong:
		if jf.Long == nil {
			return f, fmt.Errorf("field %v: missing long member", tag)
		}
		f.Data = esm.LongData{Value: *jf.Long}
	case esm.KindByte:
		if jf.Byte == nil {
			return f, fmt.Errorf("field %v: missing byte member", tag)
		}
		f.Data = esm.ByteData{Value: *jf.Byte}
	case esm.KindCompressed:
		data, err := esm.NewCompressedData(jf.Bytes)
		if err != nil {
			return f, fmt.Errorf("field %v: %w", tag, err)
		}
		f.Data = data
	case esm.KindIngredient:
		if jf.Ingredient == nil {
			return f, fmt.Errorf("field %v: missing ingredient member", tag)
		}
		f.Data = esm.IngredientData{
			Weight:     jf.Ingredient.Weight,
			Value:      jf.Ingredient.Value,
			Effects:    jf.Ingredient.Effects,
			Skills:     jf.Ingredient.Skills,
			Attributes: jf.Ingredient.Attributes,
		}
	case esm.KindScript:
		if jf.Script == nil {
			return f, fmt.Errorf("field %v: missing script member", tag)
		}
		f.Data = esm.ScriptHeaderData{
			Name:         jf.Script.Name,
			Shorts:       jf.Script.Shorts,
			Longs:        jf.Script.Longs,
			Floats:       jf.Script.Floats,
			DataSize:     jf.Script.DataSize,
			VarTableSize: jf.Script.VarTableSize,
		}
	default:
		return f, fmt.Errorf("field %v: unhandled kind %v", tag, kind.Code)
	}
	return f, nil
}

func fileTypeString(t esm.FileType) string {
	if t.Known() {
		return t.String()
	}
	return fmt.Sprintf("%d", uint32(t))
}

func parseFileType(s string) (esm.FileType, error) {
	switch s {
	case "plugin":
		return esm.Plugin, nil
	case "master":
		return esm.Master, nil
	case "save":
		return esm.Save, nil
	}
	var v uint32
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("esmjson: bad file type %q", s)
	}
	return esm.FileType(v), nil
}
