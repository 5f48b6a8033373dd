package pbf

import (
	"fmt"

	"github.com/glyphstack/glyphsdf/glyphgen"
)

// RenderStack renders the [lo, hi] code point range of face into a
// fontstack. Code points the font does not cover are left out. The
// stack is named after the face, which must have a family name.
func RenderStack(face *glyphgen.Face, lo, hi uint32, cfg glyphgen.Config) (*Fontstack, error) {
	if face.Name() == "" {
		return nil, ErrMissingFontFamily
	}

	r, err := glyphgen.NewRenderer(face, cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rendered, err := r.Range(rune(lo), rune(hi))
	if err != nil {
		return nil, err
	}

	stack := &Fontstack{
		Name:   face.Name(),
		Range:  fmt.Sprintf("%d-%d", lo, hi),
		Glyphs: make([]*Glyph, 0, len(rendered)),
	}
	for _, g := range rendered {
		stack.Glyphs = append(stack.Glyphs, fromRendered(g))
	}
	return stack, nil
}

// RenderFont parses font data, which may be a collection, and renders
// the range into one message holding one stack per face.
func RenderFont(data []byte, lo, hi uint32, cfg glyphgen.Config) (*Glyphs, error) {
	faces, err := glyphgen.ParseCollection(data)
	if err != nil {
		return nil, err
	}

	g := &Glyphs{Stacks: make([]*Fontstack, 0, len(faces))}
	for _, face := range faces {
		stack, err := RenderStack(face, lo, hi, cfg)
		if err != nil {
			return nil, err
		}
		g.Stacks = append(g.Stacks, stack)
	}
	return g, nil
}

// fromRendered converts a rendered glyph to its wire form. Width and
// height are the tight extent; the bitmap keeps its border. Top is
// rebased from the baseline to the face ascender, the offset renderers
// expect.
func fromRendered(g *glyphgen.Glyph) *Glyph {
	m := g.Metrics
	return &Glyph{
		ID:      uint32(g.Rune),
		Bitmap:  g.Bitmap.Values(),
		Width:   uint32(m.Width),
		Height:  uint32(m.Height),
		Left:    int32(m.LeftBearing),
		Top:     int32(m.TopBearing - m.Ascender),
		Advance: uint32(m.Advance),
	}
}
