package pbf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// glyphSet builds a one-stack set whose glyphs all carry the given
// advance, so tests can tell which input a combined glyph came from.
func glyphSet(name string, advance uint32, ids ...uint32) *Glyphs {
	s := &Fontstack{Name: name, Range: "0-255"}
	for _, id := range ids {
		s.Glyphs = append(s.Glyphs, &Glyph{ID: id, Advance: advance})
	}
	return &Glyphs{Stacks: []*Fontstack{s}}
}

func TestCombinePrecedence(t *testing.T) {
	got := Combine([]*Glyphs{
		glyphSet("Alpha Regular", 1, 65, 66),
		glyphSet("Beta Regular", 2, 66, 67),
	})
	if got == nil {
		t.Fatal("Combine() = nil")
	}
	if len(got.Stacks) != 1 {
		t.Fatalf("Combine() has %d stacks, want 1", len(got.Stacks))
	}

	s := got.Stacks[0]
	if s.Name != "Alpha Regular, Beta Regular" {
		t.Errorf("Name = %q, want %q", s.Name, "Alpha Regular, Beta Regular")
	}
	if s.Range != "65-67" {
		t.Errorf("Range = %q, want %q", s.Range, "65-67")
	}
	if len(s.Glyphs) != 3 {
		t.Fatalf("Combine() kept %d glyphs, want 3", len(s.Glyphs))
	}
	for _, g := range s.Glyphs {
		if g.ID == 66 && g.Advance != 1 {
			t.Errorf("glyph 66 came from advance %d, want 1 (first set wins)", g.Advance)
		}
	}
}

func TestCombineOrderPreserved(t *testing.T) {
	got := Combine([]*Glyphs{
		glyphSet("Alpha Regular", 1, 70, 65),
		glyphSet("Beta Regular", 2, 66),
	})
	if got == nil {
		t.Fatal("Combine() = nil")
	}
	s := got.Stacks[0]

	var ids []uint32
	for _, g := range s.Glyphs {
		ids = append(ids, g.ID)
	}
	if diff := cmp.Diff([]uint32{70, 65, 66}, ids); diff != "" {
		t.Errorf("glyph order mismatch (-want +got):\n%s", diff)
	}
	if s.Range != "65-70" {
		t.Errorf("Range = %q, want %q", s.Range, "65-70")
	}
}

func TestCombineRecomputesRange(t *testing.T) {
	in := glyphSet("Alpha Regular", 1, 65, 90)
	in.Stacks[0].Range = "0-255"
	got := Combine([]*Glyphs{in})
	if got == nil {
		t.Fatal("Combine() = nil")
	}
	if got.Stacks[0].Range != "65-90" {
		t.Errorf("Range = %q, want %q", got.Stacks[0].Range, "65-90")
	}
}

func TestCombineEmpty(t *testing.T) {
	if got := Combine(nil); got != nil {
		t.Errorf("Combine(nil) = %v, want nil", got)
	}
	if got := Combine([]*Glyphs{nil, nil}); got != nil {
		t.Errorf("Combine(nil sets) = %v, want nil", got)
	}
	// Stacks without glyphs contribute names but no coverage.
	if got := Combine([]*Glyphs{glyphSet("Alpha Regular", 1)}); got != nil {
		t.Errorf("Combine(glyphless) = %v, want nil", got)
	}
}

func TestCombineSkipsNilSets(t *testing.T) {
	got := Combine([]*Glyphs{nil, glyphSet("Beta Regular", 2, 66), nil})
	if got == nil {
		t.Fatal("Combine() = nil")
	}
	if got.Stacks[0].Name != "Beta Regular" {
		t.Errorf("Name = %q, want %q", got.Stacks[0].Name, "Beta Regular")
	}
}

func writeSet(t *testing.T, dir, fontName string, g *Glyphs) {
	t.Helper()
	path := GlyphsPath(dir, fontName, 0, 255)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteGlyphs(path, g); err != nil {
		t.Fatal(err)
	}
}

func TestFontStack(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "FontA", glyphSet("Alpha Regular", 1, 65, 66))
	writeSet(t, dir, "FontB", glyphSet("Beta Regular", 2, 66, 67))

	got, err := FontStack(dir, []string{"FontA", "FontB"}, 0, 255)
	if err != nil {
		t.Fatalf("FontStack() error = %v", err)
	}
	s := got.Stacks[0]
	if s.Name != "Alpha Regular, Beta Regular" {
		t.Errorf("Name = %q, want %q", s.Name, "Alpha Regular, Beta Regular")
	}
	if len(s.Glyphs) != 3 {
		t.Errorf("FontStack() kept %d glyphs, want 3", len(s.Glyphs))
	}
}

func TestFontStackSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "FontB", glyphSet("Beta Regular", 2, 66, 67))

	got, err := FontStack(dir, []string{"FontA", "FontB"}, 0, 255)
	if err != nil {
		t.Fatalf("FontStack() error = %v", err)
	}
	s := got.Stacks[0]
	if s.Name != "Beta Regular" {
		t.Errorf("Name = %q, want %q", s.Name, "Beta Regular")
	}
	if len(s.Glyphs) != 2 {
		t.Errorf("FontStack() kept %d glyphs, want 2", len(s.Glyphs))
	}
}

func TestNamedFontStackFallback(t *testing.T) {
	got, err := NamedFontStack(t.TempDir(), "Composite", []string{"FontA"}, 0, 255)
	if err != nil {
		t.Fatalf("NamedFontStack() error = %v", err)
	}
	want := &Glyphs{Stacks: []*Fontstack{{Name: "Composite", Range: "0-255"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fallback stack mismatch (-want +got):\n%s", diff)
	}
}

func TestNamedFontStackNoFonts(t *testing.T) {
	_, err := NamedFontStack(t.TempDir(), "Composite", nil, 0, 255)
	if !errors.Is(err, ErrNoFonts) {
		t.Errorf("NamedFontStack() error = %v, want ErrNoFonts", err)
	}
}
