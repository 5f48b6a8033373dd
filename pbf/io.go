package pbf

import (
	"fmt"
	"os"
	"path/filepath"
)

// GlyphsPath returns the conventional location of one glyph range,
// <dir>/<fontName>/<lo>-<hi>.pbf.
func GlyphsPath(dir, fontName string, lo, hi uint32) string {
	return filepath.Join(dir, fontName, fmt.Sprintf("%d-%d.pbf", lo, hi))
}

// LoadGlyphs reads and decodes one glyph range from the conventional
// tree layout under dir.
func LoadGlyphs(dir, fontName string, lo, hi uint32) (*Glyphs, error) {
	// #nosec G304 -- Glyph directory path is provided by the user
	data, err := os.ReadFile(GlyphsPath(dir, fontName, lo, hi))
	if err != nil {
		return nil, fmt.Errorf("pbf: failed to read glyphs: %w", err)
	}
	return Unmarshal(data)
}

// WriteGlyphs encodes g and writes it to path.
func WriteGlyphs(path string, g *Glyphs) error {
	if err := os.WriteFile(path, Marshal(g), 0o644); err != nil {
		return fmt.Errorf("pbf: failed to write glyphs: %w", err)
	}
	return nil
}
