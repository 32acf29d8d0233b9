package esm

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Tag is a four-character record or field mark, held as the little-endian
// 32-bit word it occupies on disk. Any 32-bit value is a valid Tag; the
// named constants below are merely the marks this package knows by name.
// Converting a word to a Tag and back never loses information.
type Tag uint32

// mustTag interprets a four-character mnemonic as its on-disk word and
// registers the name for Tag.String and ParseTag.
func mustTag(s string) Tag {
	if len(s) != 4 {
		panic("esm: tag mnemonic must be exactly 4 bytes: " + strconv.Quote(s))
	}
	t := Tag(binary.LittleEndian.Uint32([]byte(s)))
	tagNames[t] = s
	return t
}

var tagNames = map[Tag]string{}

// Record marks.
var (
	TES3 = mustTag("TES3")
	GMST = mustTag("GMST")
	GLOB = mustTag("GLOB")
	CLAS = mustTag("CLAS")
	FACT = mustTag("FACT")
	RACE = mustTag("RACE")
	SOUN = mustTag("SOUN")
	SKIL = mustTag("SKIL")
	MGEF = mustTag("MGEF")
	SCPT = mustTag("SCPT")
	REGN = mustTag("REGN")
	BSGN = mustTag("BSGN")
	LTEX = mustTag("LTEX")
	STAT = mustTag("STAT")
	DOOR = mustTag("DOOR")
	MISC = mustTag("MISC")
	WEAP = mustTag("WEAP")
	CONT = mustTag("CONT")
	SPEL = mustTag("SPEL")
	CREA = mustTag("CREA")
	BODY = mustTag("BODY")
	LIGH = mustTag("LIGH")
	ENCH = mustTag("ENCH")
	NPC_ = mustTag("NPC_")
	ARMO = mustTag("ARMO")
	CLOT = mustTag("CLOT")
	REPA = mustTag("REPA")
	ACTI = mustTag("ACTI")
	APPA = mustTag("APPA")
	LOCK = mustTag("LOCK")
	PROB = mustTag("PROB")
	INGR = mustTag("INGR")
	BOOK = mustTag("BOOK")
	ALCH = mustTag("ALCH")
	LEVI = mustTag("LEVI")
	LEVC = mustTag("LEVC")
	CELL = mustTag("CELL")
	LAND = mustTag("LAND")
	PGRD = mustTag("PGRD")
	SNDG = mustTag("SNDG")
	DIAL = mustTag("DIAL")
	INFO = mustTag("INFO")
	SSCR = mustTag("SSCR")
)

// Field marks.
var (
	HEDR = mustTag("HEDR")
	MAST = mustTag("MAST")
	DATA = mustTag("DATA")
	DELE = mustTag("DELE")
	NAME = mustTag("NAME")
	MODL = mustTag("MODL")
	FNAM = mustTag("FNAM")
	SCRI = mustTag("SCRI")
	DESC = mustTag("DESC")
	TEXT = mustTag("TEXT")
	INDX = mustTag("INDX")
	INTV = mustTag("INTV")
	FLTV = mustTag("FLTV")
	STRV = mustTag("STRV")
	FLAG = mustTag("FLAG")
	FRMR = mustTag("FRMR")
	SCHD = mustTag("SCHD")
	SCVR = mustTag("SCVR")
	SCDT = mustTag("SCDT")
	SCTX = mustTag("SCTX")
	IRDT = mustTag("IRDT")
	NPCO = mustTag("NPCO")
	NPCS = mustTag("NPCS")
	NPDT = mustTag("NPDT")
	AADT = mustTag("AADT")
	ALDT = mustTag("ALDT")
	ANAM = mustTag("ANAM")
	AODT = mustTag("AODT")
	ASND = mustTag("ASND")
	AVFX = mustTag("AVFX")
	BNAM = mustTag("BNAM")
	BSND = mustTag("BSND")
	BVFX = mustTag("BVFX")
	CNAM = mustTag("CNAM")
	CSND = mustTag("CSND")
	CVFX = mustTag("CVFX")
	DNAM = mustTag("DNAM")
	ENAM = mustTag("ENAM")
	HSND = mustTag("HSND")
	HVFX = mustTag("HVFX")
	INAM = mustTag("INAM")
	ITEX = mustTag("ITEX")
	KNAM = mustTag("KNAM")
	MEDT = mustTag("MEDT")
	NNAM = mustTag("NNAM")
	ONAM = mustTag("ONAM")
	PNAM = mustTag("PNAM")
	PTEX = mustTag("PTEX")
	RADT = mustTag("RADT")
	RNAM = mustTag("RNAM")
	SNAM = mustTag("SNAM")
	TNAM = mustTag("TNAM")
	VCLR = mustTag("VCLR")
	VHGT = mustTag("VHGT")
	VNML = mustTag("VNML")
	VTEX = mustTag("VTEX")
	WEAT = mustTag("WEAT")
	WHGT = mustTag("WHGT")
	WNAM = mustTag("WNAM")
	XSCL = mustTag("XSCL")
)

// Known reports whether the tag is one of the named marks.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

// String returns the tag's mnemonic, or its hex word for unnamed values.
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("0x%08X", uint32(t))
}

// ParseTag is the inverse of Tag.String: it accepts a four-character
// mnemonic or a 0x-prefixed hex word.
func ParseTag(s string) (Tag, error) {
	if len(s) == 4 {
		return Tag(binary.LittleEndian.Uint32([]byte(s))), nil
	}
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("esm: bad tag %q: %w", s, err)
		}
		return Tag(v), nil
	}
	return 0, fmt.Errorf("esm: bad tag %q: want 4 characters or 0x-prefixed word", s)
}
