package pbf

// BlockSize is the conventional number of code points per glyph file.
// Servers request ranges like 0-255 or 1280-1535, so generators write
// one file per 256-aligned block.
const BlockSize = 256

// Glyph is one rendered glyph in a fontstack.
type Glyph struct {
	// ID is the Unicode code point.
	ID uint32

	// Bitmap is the quantized distance field, row-major, including the
	// border: (Width+2*buffer) by (Height+2*buffer) bytes with the
	// conventional buffer of 3. Nil means the field was not rendered.
	Bitmap []byte

	// Width and Height are the tight glyph extent in pixels, without
	// the border.
	Width  uint32
	Height uint32

	// Left is the horizontal bearing: pen position to leftmost pixel.
	Left int32

	// Top is the vertical offset renderers apply below their line top,
	// the glyph's top bearing minus the face ascender. Almost always
	// negative.
	Top int32

	// Advance is the horizontal pen movement in pixels.
	Advance uint32
}

// Fontstack is a named set of glyphs covering one code point range.
type Fontstack struct {
	// Name identifies the font, conventionally "Family Style", or the
	// comma-joined list of names for combined stacks.
	Name string

	// Range is the covered code point span, "lo-hi".
	Range string

	Glyphs []*Glyph
}

// Glyphs is the top-level message of a fontstack PBF.
type Glyphs struct {
	Stacks []*Fontstack
}
