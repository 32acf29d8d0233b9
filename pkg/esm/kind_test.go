package esm

import "testing"

func TestFieldKindDispatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		record Tag
		field  Tag
		want   Kind
	}{
		{TES3, MAST, Kind{Code: KindString}},
		{TES3, DATA, Kind{Code: KindLong}},
		{DIAL, DATA, Kind{Code: KindByte}},
		{LAND, DATA, Kind{Code: KindInt}},
		{LEVC, DATA, Kind{Code: KindInt}},
		{LEVI, DATA, Kind{Code: KindInt}},
		{LTEX, DATA, Kind{Code: KindTailString}},
		{SSCR, DATA, Kind{Code: KindString}},
		{SOUN, DATA, Kind{Code: KindCompressed}},
		{LEVI, INTV, Kind{Code: KindShort}},
		{LEVC, INTV, Kind{Code: KindShort}},
		{LAND, INTV, Kind{Code: KindLong}},
		{CELL, INTV, Kind{Code: KindFloat}},
		{GMST, INTV, Kind{Code: KindInt}},
		{GLOB, FNAM, Kind{Code: KindByte}},
		{BOOK, FNAM, Kind{Code: KindTailString}},
		{INFO, BNAM, Kind{Code: KindTailMultiline}},
		{ARMO, BNAM, Kind{Code: KindString}},
		{CELL, BNAM, Kind{Code: KindTailString}},
		{FACT, RNAM, Kind{Code: KindFixedString, Width: 32}},
		{SCPT, RNAM, Kind{Code: KindInt}},
		{REGN, RNAM, Kind{Code: KindTailString}},
		{ALCH, ENAM, Kind{Code: KindBinary}},
		{ENCH, ENAM, Kind{Code: KindBinary}},
		{SPEL, ENAM, Kind{Code: KindBinary}},
		{BOOK, ENAM, Kind{Code: KindTailString}},
		{ARMO, CNAM, Kind{Code: KindString}},
		{REGN, CNAM, Kind{Code: KindBinary}},
		{DOOR, CNAM, Kind{Code: KindTailString}},
		{LEVC, NNAM, Kind{Code: KindByte}},
		{LEVI, NNAM, Kind{Code: KindByte}},
		{DIAL, NNAM, Kind{Code: KindTailString}},
		{REGN, SNAM, Kind{Code: KindBinary}},
		{DOOR, SNAM, Kind{Code: KindTailString}},
		{SCPT, SCVR, Kind{Code: KindMultiString}},
		{INFO, SCVR, Kind{Code: KindString}},
		{SCPT, SCHD, Kind{Code: KindScript}},
		{INGR, IRDT, Kind{Code: KindIngredient}},
		{BOOK, TEXT, Kind{Code: KindMultiline}},
		{DIAL, TEXT, Kind{Code: KindTailString}},
		{GMST, STRV, Kind{Code: KindString}},
		{ARMO, INDX, Kind{Code: KindByte}},
		{CLOT, INDX, Kind{Code: KindByte}},
		{CELL, FRMR, Kind{Code: KindInt}},
		{CREA, FRMR, Kind{Code: KindBinary}},
		{SCPT, SCTX, Kind{Code: KindTailMultiline}},
		{NPC_, NPCO, Kind{Code: KindRef}},
		{BSGN, NPCS, Kind{Code: KindFixedString, Width: 32}},
		{LAND, VNML, Kind{Code: KindCompressed}},
		{GMST, FLTV, Kind{Code: KindFloat}},
		{STAT, XSCL, Kind{Code: KindFloat}},
		{SKIL, INDX, Kind{Code: KindInt}},
		{GMST, NAME, Kind{Code: KindString}},
		{INFO, NAME, Kind{Code: KindString}},
		{SSCR, NAME, Kind{Code: KindString}},
		{STAT, NAME, Kind{Code: KindTailString}},
		{FACT, ANAM, Kind{Code: KindString}},
		{CELL, ANAM, Kind{Code: KindTailString}},
		{BSGN, DESC, Kind{Code: KindTailString}},
		{RACE, DESC, Kind{Code: KindString}},
		// Pairs outside the table fall back to raw bytes.
		{SCPT, SCDT, Kind{Code: KindBinary}},
		{CREA, NPDT, Kind{Code: KindBinary}},
		{Tag(0x12345678), Tag(0x87654321), Kind{Code: KindBinary}},
	}
	for _, tc := range cases {
		if got := FieldKind(tc.record, tc.field); got != tc.want {
			t.Errorf("FieldKind(%v, %v) = %+v, want %+v", tc.record, tc.field, got, tc.want)
		}
	}
}

func TestKindCodeString(t *testing.T) {
	t.Parallel()

	if got := KindCompressed.String(); got != "compressed" {
		t.Fatalf("KindCompressed string: got %q", got)
	}
	if got := KindCode(200).String(); got != "kind(200)" {
		t.Fatalf("out-of-range kind string: got %q", got)
	}
}
