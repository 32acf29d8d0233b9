package esm

import (
	"testing"
)

func TestTagWordRoundTrip(t *testing.T) {
	t.Parallel()

	words := []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF, uint32(TES3), uint32(NPC_), 0x5F435049}
	for _, w := range words {
		if got := uint32(Tag(w)); got != w {
			t.Fatalf("tag word round trip: got %#x want %#x", got, w)
		}
	}
}

func TestTagString(t *testing.T) {
	t.Parallel()

	if got := TES3.String(); got != "TES3" {
		t.Fatalf("TES3 string: got %q", got)
	}
	if got := NPC_.String(); got != "NPC_" {
		t.Fatalf("NPC_ string: got %q", got)
	}
	if got := Tag(0xDEADBEEF).String(); got != "0xDEADBEEF" {
		t.Fatalf("unknown tag string: got %q", got)
	}
	if !SCPT.Known() {
		t.Fatalf("SCPT should be known")
	}
	if Tag(0xDEADBEEF).Known() {
		t.Fatalf("0xDEADBEEF should not be known")
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	for _, tag := range []Tag{TES3, HEDR, MAST, NPC_, Tag(0x01020304)} {
		parsed, err := ParseTag(tag.String())
		if err != nil {
			t.Fatalf("parse %q: %v", tag.String(), err)
		}
		if parsed != tag {
			t.Fatalf("parse %q: got %v want %v", tag.String(), parsed, tag)
		}
	}

	if _, err := ParseTag("TOOLONG"); err == nil {
		t.Fatalf("expected error for bad mnemonic length")
	}
	if _, err := ParseTag("0xZZZZZZZZ"); err == nil {
		t.Fatalf("expected error for bad hex word")
	}
}

func TestTagEncodingIsLittleEndian(t *testing.T) {
	t.Parallel()

	// 'T' 'E' 'S' '3' in file order means 'T' is the low byte.
	want := Tag(uint32('T') | uint32('E')<<8 | uint32('S')<<16 | uint32('3')<<24)
	if TES3 != want {
		t.Fatalf("TES3 word: got %#x want %#x", uint32(TES3), uint32(want))
	}
}
