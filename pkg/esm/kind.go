package esm

import "strconv"

// KindCode identifies a field's binary sub-format.
type KindCode uint8

const (
	// KindBinary is a raw byte body, kept verbatim.
	KindBinary KindCode = iota
	// KindString is a size-framed string with no trimming.
	KindString
	// KindFixedString is a fixed-width NUL-padded string.
	KindFixedString
	// KindTailString is a string whose trailing NUL is stripped when the
	// codec's TrimTails convention is on.
	KindTailString
	// KindMultiline is newline-separated text.
	KindMultiline
	// KindTailMultiline is multiline text subject to the TrimTails
	// convention before splitting.
	KindTailMultiline
	// KindMultiString is NUL-separated strings.
	KindMultiString
	// KindRef is a 4-byte signed index plus a 32-byte fixed string.
	KindRef
	// KindFloat is a 4-byte IEEE-754 value.
	KindFloat
	// KindInt is a 4-byte signed integer.
	KindInt
	// KindShort is a 2-byte signed integer.
	KindShort
	// KindLong is an 8-byte signed integer.
	KindLong
	// KindByte is a single unsigned byte.
	KindByte
	// KindCompressed is stored raw on disk but gzipped in memory.
	KindCompressed
	// KindIngredient is the fixed 56-byte alchemy ingredient block.
	KindIngredient
	// KindScript is the fixed 52-byte script header block.
	KindScript
)

var kindCodeNames = [...]string{
	KindBinary:        "binary",
	KindString:        "string",
	KindFixedString:   "fixed string",
	KindTailString:    "tail string",
	KindMultiline:     "multiline",
	KindTailMultiline: "tail multiline",
	KindMultiString:   "multi string",
	KindRef:           "ref",
	KindFloat:         "float",
	KindInt:           "int",
	KindShort:         "short",
	KindLong:          "long",
	KindByte:          "byte",
	KindCompressed:    "compressed",
	KindIngredient:    "ingredient",
	KindScript:        "script",
}

func (k KindCode) String() string {
	if int(k) < len(kindCodeNames) {
		return kindCodeNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Kind is a field's binary sub-format. Width is the byte width of fixed
// strings and zero for every other code.
type Kind struct {
	Code  KindCode
	Width int
}

// idWidth is the byte width of fixed identifier strings (spell lists,
// faction rank names, reference names inside item entries).
const idWidth = 32

// FieldKind names the binary sub-format of a field, given the mark of the
// record enclosing it. Pairs this table does not know decode as raw bytes,
// which keeps unknown fields round-trippable.
//
// Both the decoder and the encoder consult this one table, so the two sides
// cannot drift apart.
func FieldKind(record, field Tag) Kind {
	switch field {
	case MAST:
		return Kind{Code: KindString}
	case DATA:
		switch record {
		case TES3:
			return Kind{Code: KindLong}
		case DIAL:
			return Kind{Code: KindByte}
		case LAND, LEVC, LEVI:
			return Kind{Code: KindInt}
		case LTEX:
			return Kind{Code: KindTailString}
		case SSCR:
			return Kind{Code: KindString}
		}
		return Kind{Code: KindCompressed}
	case INTV:
		switch record {
		case LEVI, LEVC:
			return Kind{Code: KindShort}
		case LAND:
			return Kind{Code: KindLong}
		case CELL:
			return Kind{Code: KindFloat}
		}
		return Kind{Code: KindInt}
	case FNAM:
		if record == GLOB {
			return Kind{Code: KindByte}
		}
		return Kind{Code: KindTailString}
	case BNAM:
		switch record {
		case INFO:
			return Kind{Code: KindTailMultiline}
		case ARMO, BODY, CLOT:
			return Kind{Code: KindString}
		}
		return Kind{Code: KindTailString}
	case RNAM:
		switch record {
		case FACT:
			return Kind{Code: KindFixedString, Width: idWidth}
		case SCPT:
			return Kind{Code: KindInt}
		}
		return Kind{Code: KindTailString}
	case ENAM:
		// Enchantment effect blocks ride under the same mark as the
		// name strings other records use.
		switch record {
		case ALCH, ENCH, SPEL:
			return Kind{Code: KindBinary}
		}
		return Kind{Code: KindTailString}
	case CNAM:
		switch record {
		case ARMO, CLOT:
			return Kind{Code: KindString}
		case REGN:
			return Kind{Code: KindBinary}
		}
		return Kind{Code: KindTailString}
	case NNAM:
		switch record {
		case LEVC, LEVI:
			return Kind{Code: KindByte}
		}
		return Kind{Code: KindTailString}
	case SNAM:
		if record == REGN {
			return Kind{Code: KindBinary}
		}
		return Kind{Code: KindTailString}
	case SCVR:
		if record == SCPT {
			return Kind{Code: KindMultiString}
		}
		return Kind{Code: KindString}
	case SCHD:
		if record == SCPT {
			return Kind{Code: KindScript}
		}
	case IRDT:
		if record == INGR {
			return Kind{Code: KindIngredient}
		}
	case TEXT:
		if record == BOOK {
			return Kind{Code: KindMultiline}
		}
		return Kind{Code: KindTailString}
	case SCTX:
		return Kind{Code: KindTailMultiline}
	case NPCO:
		return Kind{Code: KindRef}
	case NPCS:
		return Kind{Code: KindFixedString, Width: idWidth}
	case NAME:
		switch record {
		case GMST, INFO, SSCR:
			return Kind{Code: KindString}
		}
		return Kind{Code: KindTailString}
	case ANAM:
		if record == FACT {
			return Kind{Code: KindString}
		}
		return Kind{Code: KindTailString}
	case DESC:
		if record == BSGN {
			return Kind{Code: KindTailString}
		}
		return Kind{Code: KindString}
	case STRV:
		return Kind{Code: KindString}
	case MODL, SCRI, ITEX, PTEX,
		DNAM, INAM, KNAM, ONAM, PNAM, TNAM,
		ASND, AVFX, BSND, BVFX, CSND, CVFX, HSND, HVFX:
		return Kind{Code: KindTailString}
	case VNML, VHGT, VCLR, VTEX, WNAM:
		return Kind{Code: KindCompressed}
	case FLTV, XSCL, WHGT:
		return Kind{Code: KindFloat}
	case INDX:
		// Armor and clothing index their biped slot with a single byte.
		switch record {
		case ARMO, CLOT:
			return Kind{Code: KindByte}
		}
		return Kind{Code: KindInt}
	case DELE, FLAG:
		return Kind{Code: KindInt}
	case FRMR:
		if record == CELL {
			return Kind{Code: KindInt}
		}
		return Kind{Code: KindBinary}
	}
	return Kind{Code: KindBinary}
}
