package pbf

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protowire"
)

func testGlyphs() *Glyphs {
	return &Glyphs{Stacks: []*Fontstack{
		{
			Name:  "Alpha Regular",
			Range: "0-255",
			Glyphs: []*Glyph{
				{ID: 65, Bitmap: []byte{0, 1, 2, 3}, Width: 10, Height: 12, Left: 1, Top: -4, Advance: 11},
				{ID: 66, Bitmap: []byte{9, 8, 7}, Width: 9, Height: 13, Left: -2, Top: -3, Advance: 10},
			},
		},
		{
			Name:  "Beta Bold",
			Range: "256-511",
			Glyphs: []*Glyph{
				{ID: 300, Width: 4, Height: 5, Left: 0, Top: 0, Advance: 6},
			},
		},
	}}
}

func TestRoundTrip(t *testing.T) {
	want := testGlyphs()
	got, err := Unmarshal(Marshal(want))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip failed (-want +got):\n%s", diff)
	}
}

// TestWireFormat pins the encoding against hand-assembled bytes so the
// files stay readable by other fontstack tooling.
func TestWireFormat(t *testing.T) {
	msg := &Glyphs{Stacks: []*Fontstack{{
		Name:  "A",
		Range: "0-255",
		Glyphs: []*Glyph{
			{ID: 65, Width: 0, Height: 0, Left: -3, Top: -25, Advance: 10},
		},
	}}}
	raw := []byte{
		0x0a, 0x18, // stacks[0], 24 bytes
		0x0a, 0x01, 'A', // name
		0x12, 0x05, '0', '-', '2', '5', '5', // range
		0x1a, 0x0c, // glyphs[0], 12 bytes
		0x08, 0x41, // id = 65
		0x18, 0x00, // width
		0x20, 0x00, // height
		0x28, 0x05, // left = -3, zigzag
		0x30, 0x31, // top = -25, zigzag
		0x38, 0x0a, // advance = 10
	}

	if got := Marshal(msg); !bytes.Equal(got, raw) {
		t.Errorf("Marshal() = % x, want % x", got, raw)
	}
	got, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(msg, got); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalEmpty(t *testing.T) {
	if got := Marshal(&Glyphs{}); len(got) != 0 {
		t.Errorf("Marshal(empty) = % x, want empty", got)
	}
	got, err := Unmarshal(nil)
	if err != nil {
		t.Fatalf("Unmarshal(nil) error = %v", err)
	}
	if len(got.Stacks) != 0 {
		t.Errorf("Unmarshal(nil) has %d stacks, want 0", len(got.Stacks))
	}
}

func TestRoundTripEmptyBitmap(t *testing.T) {
	// A zero-length bitmap is still a present field and must not come
	// back as nil.
	want := &Glyphs{Stacks: []*Fontstack{{
		Name:   "Empty",
		Range:  "0-0",
		Glyphs: []*Glyph{{ID: 0, Bitmap: []byte{}}},
	}}}
	got, err := Unmarshal(Marshal(want))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Stacks[0].Glyphs[0].Bitmap == nil {
		t.Fatal("empty bitmap decoded as nil")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip failed (-want +got):\n%s", diff)
	}
}

func TestUnmarshalBitmapDetached(t *testing.T) {
	data := Marshal(testGlyphs())
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	bm := got.Stacks[0].Glyphs[0].Bitmap
	before := bm[0]
	for i := range data {
		data[i] = 0xFF
	}
	if bm[0] != before {
		t.Error("decoded bitmap aliases the input buffer")
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	var glyph []byte
	glyph = protowire.AppendTag(glyph, fieldGlyphID, protowire.VarintType)
	glyph = protowire.AppendVarint(glyph, 65)
	glyph = protowire.AppendTag(glyph, 9, protowire.BytesType)
	glyph = protowire.AppendBytes(glyph, []byte("future"))
	glyph = protowire.AppendTag(glyph, fieldGlyphAdvance, protowire.VarintType)
	glyph = protowire.AppendVarint(glyph, 7)

	var stack []byte
	stack = protowire.AppendTag(stack, fieldStackName, protowire.BytesType)
	stack = protowire.AppendString(stack, "A")
	stack = protowire.AppendTag(stack, 8, protowire.VarintType)
	stack = protowire.AppendVarint(stack, 12345)
	stack = protowire.AppendTag(stack, fieldStackRange, protowire.BytesType)
	stack = protowire.AppendString(stack, "0-255")
	stack = protowire.AppendTag(stack, fieldStackGlyphs, protowire.BytesType)
	stack = protowire.AppendBytes(stack, glyph)

	var raw []byte
	raw = protowire.AppendTag(raw, 2, protowire.Fixed32Type)
	raw = protowire.AppendFixed32(raw, 0xDEAD)
	raw = protowire.AppendTag(raw, fieldStacks, protowire.BytesType)
	raw = protowire.AppendBytes(raw, stack)

	got, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := &Glyphs{Stacks: []*Fontstack{{
		Name:   "A",
		Range:  "0-255",
		Glyphs: []*Glyph{{ID: 65, Advance: 7}},
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	data := Marshal(testGlyphs())
	for _, n := range []int{1, len(data) / 2, len(data) - 1} {
		if _, err := Unmarshal(data[:n]); err == nil {
			t.Errorf("Unmarshal(%d of %d bytes) did not fail", n, len(data))
		}
	}
	if _, err := Unmarshal([]byte{0x80}); err == nil {
		t.Error("Unmarshal(dangling tag byte) did not fail")
	}
}
