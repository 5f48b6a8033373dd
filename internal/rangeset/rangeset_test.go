package rangeset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSingle(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"65", 65},
		{"0x41", 65},
		{"0X41", 65},
		{"U+0041", 65},
		{"u+41", 65},
		{"U+10FFFF", 0x10FFFF},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.input, err)
			continue
		}
		want := Set{{Lo: tt.want, Hi: tt.want}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseRange(t *testing.T) {
	for _, input := range []string{"U+0000..U+00FF", "0-255", "0x0..0xFF", "0..U+00FF"} {
		got, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", input, err)
			continue
		}
		if diff := cmp.Diff(Set{{Lo: 0, Hi: 255}}, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestParseList(t *testing.T) {
	got, err := Parse(" U+0300 , U+0041 .. U+005A , 700 ")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Set{{Lo: 65, Hi: 90}, {Lo: 700, Hi: 700}, {Lo: 768, Hi: 768}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMergesOverlaps(t *testing.T) {
	tests := []struct {
		input string
		want  Set
	}{
		{"U+0000..U+00FF,U+0080..U+017F", Set{{Lo: 0, Hi: 383}}},
		{"0..255,256..511", Set{{Lo: 0, Hi: 511}}},
		{"65,65,65", Set{{Lo: 65, Hi: 65}}},
		{"10..20,15..18", Set{{Lo: 10, Hi: 20}}},
		{"30..40,10..20", Set{{Lo: 10, Hi: 20}, {Lo: 30, Hi: 40}}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.input, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseReversed(t *testing.T) {
	_, err := Parse("U+00FF..U+0000")
	if err == nil {
		t.Fatal("Parse() accepted a reversed range")
	}
	if !strings.Contains(err.Error(), "reversed") {
		t.Errorf("Parse() error = %v, want mention of reversed range", err)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{
		"", "U+", "0x", "65..", "..65", "hello", "65,,70", "U+0041-", "U+110000",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) did not fail", input)
		}
	}
}

func TestDefault(t *testing.T) {
	got := Default()
	if diff := cmp.Diff(Set{{Lo: 0, Hi: 0xFFFF}}, got); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
	blocks := got.Blocks(256)
	if len(blocks) != 256 {
		t.Fatalf("Default().Blocks(256) has %d blocks, want 256", len(blocks))
	}
	if blocks[0] != (Range{Lo: 0, Hi: 255}) {
		t.Errorf("first block = %v, want 0..255", blocks[0])
	}
	if blocks[255] != (Range{Lo: 65280, Hi: 65535}) {
		t.Errorf("last block = %v, want 65280..65535", blocks[255])
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		input string
		want  []Range
	}{
		{"U+0041..U+005A", []Range{{Lo: 0, Hi: 255}}},
		{"200..300", []Range{{Lo: 0, Hi: 255}, {Lo: 256, Hi: 511}}},
		{"0x300", []Range{{Lo: 768, Hi: 1023}}},
		{"10..20,30..40", []Range{{Lo: 0, Hi: 255}}},
		{"U+0000..U+04FF", []Range{
			{Lo: 0, Hi: 255}, {Lo: 256, Hi: 511}, {Lo: 512, Hi: 767},
			{Lo: 768, Hi: 1023}, {Lo: 1024, Hi: 1279},
		}},
	}
	for _, tt := range tests {
		set, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.input, err)
		}
		if diff := cmp.Diff(tt.want, set.Blocks(256)); diff != "" {
			t.Errorf("Blocks(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestString(t *testing.T) {
	set, err := Parse("65,0x300..0x301")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := set.String(); got != "U+0041,U+0300..U+0301" {
		t.Errorf("String() = %q, want %q", got, "U+0041,U+0300..U+0301")
	}
}
