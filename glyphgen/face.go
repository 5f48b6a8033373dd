package glyphgen

import (
	"bytes"
	"fmt"
	"os"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/glyphstack/glyphsdf"
)

// Face is a parsed font face.
//
// Two backends parse the same bytes: golang.org/x/image/font supplies
// metrics and rasterization, go-text/typesetting supplies character
// map lookups. Both views are read-only, so a Face is safe for
// concurrent use and should be shared; per-goroutine state lives in
// [Renderer].
type Face struct {
	data   []byte
	ot     *opentype.Font
	gtFont *gtfont.Font

	family string
	style  string
	index  int
}

// Parse parses a single font (TTF or OTF) from data. The slice is
// copied internally and can be reused after this call.
func Parse(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	ot, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("glyphgen: failed to parse font: %w", err)
	}

	// go-text keeps views into the reader's bytes, which is why the
	// copy happens before parsing.
	gt, err := gtfont.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("glyphgen: failed to parse font: %w", err)
	}

	return newFace(dataCopy, ot, gt.Font, 0), nil
}

// ParseCollection parses a font collection (TTC or OTC) from data,
// returning one Face per collection member. Plain single-font data is
// accepted and yields a single Face.
func ParseCollection(data []byte) ([]*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	coll, err := opentype.ParseCollection(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("glyphgen: failed to parse collection: %w", err)
	}
	gts, err := gtfont.ParseTTC(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("glyphgen: failed to parse collection: %w", err)
	}
	n := coll.NumFonts()
	if len(gts) != n {
		return nil, fmt.Errorf("glyphgen: collection reports %d fonts, character maps report %d", n, len(gts))
	}

	faces := make([]*Face, 0, n)
	for i := 0; i < n; i++ {
		ot, err := coll.Font(i)
		if err != nil {
			return nil, fmt.Errorf("glyphgen: failed to parse collection font %d: %w", i, err)
		}
		faces = append(faces, newFace(dataCopy, ot, gts[i].Font, i))
	}
	return faces, nil
}

// Load reads and parses a single font file.
func Load(path string) (*Face, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyphgen: failed to read font file: %w", err)
	}
	face, err := Parse(data)
	if err != nil {
		return nil, err
	}
	glyphsdf.Logger().Info("font loaded", "path", path, "name", face.Name())
	return face, nil
}

// LoadCollection reads and parses a font file that may contain several
// faces.
func LoadCollection(path string) ([]*Face, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyphgen: failed to read font file: %w", err)
	}
	faces, err := ParseCollection(data)
	if err != nil {
		return nil, err
	}
	glyphsdf.Logger().Info("font loaded", "path", path, "faces", len(faces))
	return faces, nil
}

func newFace(data []byte, ot *opentype.Font, gt *gtfont.Font, index int) *Face {
	f := &Face{data: data, ot: ot, gtFont: gt, index: index}
	if name, err := ot.Name(nil, sfnt.NameIDFamily); err == nil {
		f.family = name
	}
	if name, err := ot.Name(nil, sfnt.NameIDSubfamily); err == nil {
		f.style = name
	}
	return f
}

// Family returns the font family name, or "" when the name table has
// none.
func (f *Face) Family() string { return f.family }

// Style returns the font style name ("Regular", "Bold Italic", ...),
// or "".
func (f *Face) Style() string { return f.style }

// Name returns the family and style joined with a space, the
// conventional fontstack naming scheme. It is "" when the family name
// is missing.
func (f *Face) Name() string {
	if f.family == "" {
		return ""
	}
	if f.style == "" {
		return f.family
	}
	return f.family + " " + f.style
}

// Index returns the face's position within its source file: 0 for
// single fonts, the member index for collections.
func (f *Face) Index() int { return f.index }

// NumGlyphs returns the number of glyphs in the font.
func (f *Face) NumGlyphs() int { return f.ot.NumGlyphs() }

// UnitsPerEm returns the font's design grid resolution.
func (f *Face) UnitsPerEm() int { return int(f.ot.UnitsPerEm()) }

// HasGlyph reports whether the font maps the code point to a real
// glyph. For bulk queries prefer Coverage, which amortizes the
// character map session.
func (f *Face) HasGlyph(r rune) bool {
	_, ok := gtfont.NewFace(f.gtFont).NominalGlyph(r)
	return ok
}

// Coverage returns the code points in [lo, hi] that the font maps to
// glyphs, in ascending order.
func (f *Face) Coverage(lo, hi rune) []rune {
	// font.Face is not safe for concurrent use; one throwaway instance
	// serves the whole sweep.
	gt := gtfont.NewFace(f.gtFont)
	var present []rune
	for r := lo; r <= hi; r++ {
		if _, ok := gt.NominalGlyph(r); ok {
			present = append(present, r)
		}
	}
	return present
}
