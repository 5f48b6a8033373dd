package glyphgen

import (
	"errors"
	"image"
	"image/draw"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/glyphstack/glyphsdf"
)

// Config holds glyph rendering parameters.
type Config struct {
	// Size is the rasterization size in pixels per em.
	// Default: 24
	Size int

	// Buffer is the transparent border added around each glyph before
	// the distance transform, in pixels. The border gives the field
	// room to fall off outside the outline.
	// Default: 3
	Buffer int

	// Radius is the distance range of the output field in pixels.
	// Default: 8
	Radius int

	// Threshold is the coverage level treated as the glyph edge.
	// Default: 128
	Threshold uint8

	// Mode selects the distance field seeding strategy.
	// Default: glyphsdf.SeedThreshold
	Mode glyphsdf.SeedMode

	// Rounding selects the quantization tie-break rule.
	// Default: glyphsdf.RoundNearest
	Rounding glyphsdf.RoundingMode
}

// DefaultConfig returns the rendering configuration used by the
// fontstack ecosystem.
func DefaultConfig() Config {
	return Config{
		Size:      24,
		Buffer:    3,
		Radius:    8,
		Threshold: 128,
		Mode:      glyphsdf.SeedThreshold,
		Rounding:  glyphsdf.RoundNearest,
	}
}

// Validate checks if the configuration is valid and returns an error
// if not.
func (c *Config) Validate() error {
	if c.Size < 1 {
		return &ConfigError{Field: "Size", Reason: "must be positive"}
	}
	if c.Size > 1024 {
		return &ConfigError{Field: "Size", Reason: "must be at most 1024"}
	}
	if c.Buffer < 0 {
		return &ConfigError{Field: "Buffer", Reason: "must not be negative"}
	}
	if c.Radius < 1 {
		return &ConfigError{Field: "Radius", Reason: "must be positive"}
	}
	if c.Mode != glyphsdf.SeedThreshold && c.Mode != glyphsdf.SeedGradient {
		return &ConfigError{Field: "Mode", Reason: "unknown seed mode"}
	}
	if c.Rounding != glyphsdf.RoundNearest && c.Rounding != glyphsdf.RoundNearestEven {
		return &ConfigError{Field: "Rounding", Reason: "unknown rounding mode"}
	}
	return nil
}

// Metrics describes a rendered glyph's placement, in pixels at the
// configured size. Width and Height are the tight extent without the
// distance field border.
type Metrics struct {
	Width  int
	Height int

	// LeftBearing is the horizontal distance from the pen position to
	// the leftmost pixel.
	LeftBearing int

	// TopBearing is the vertical distance from the baseline up to the
	// topmost pixel.
	TopBearing int

	// Advance is how far the pen moves after this glyph.
	Advance int

	// Ascender is the face's typographic ascender. Fontstack consumers
	// position glyphs by TopBearing-Ascender.
	Ascender int
}

// Glyph is a rendered distance field glyph.
type Glyph struct {
	Rune    rune
	Bitmap  *glyphsdf.Bitmap
	Metrics Metrics
}

// Renderer rasterizes glyphs from one Face at one size and converts
// them to distance fields.
//
// A Renderer wraps mutable rasterizer state and is NOT safe for
// concurrent use. Renderers are cheap: goroutines rendering in
// parallel should create one each from the shared Face.
type Renderer struct {
	face   *Face
	cfg    Config
	opts   glyphsdf.Options
	otFace font.Face
	gtFace *gtfont.Face

	ascender int
}

// NewRenderer creates a Renderer for face with the given
// configuration.
func NewRenderer(face *Face, cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Unhinted on purpose: hinting would snap the outline to this one
	// pixel grid, and the field is meant to be rescaled.
	otFace, err := opentype.NewFace(face.ot, &opentype.FaceOptions{
		Size:    float64(cfg.Size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{
		face: face,
		cfg:  cfg,
		opts: glyphsdf.Options{
			Radius:    cfg.Radius,
			Threshold: cfg.Threshold,
			Mode:      cfg.Mode,
			Rounding:  cfg.Rounding,
		},
		otFace:   otFace,
		gtFace:   gtfont.NewFace(face.gtFont),
		ascender: otFace.Metrics().Ascent.Floor(),
	}, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Face returns the face the renderer draws from.
func (r *Renderer) Face() *Face { return r.face }

// Close releases the rasterizer resources. The Renderer must not be
// used afterwards.
func (r *Renderer) Close() error {
	return r.otFace.Close()
}

// Glyph renders the distance field glyph for a code point. It returns
// ErrMissingGlyph when the font has no mapping for ch; glyphs that map
// to an empty outline (spaces) succeed with a zero-extent bitmap that
// still carries the border.
func (r *Renderer) Glyph(ch rune) (*Glyph, error) {
	if _, ok := r.gtFace.NominalGlyph(ch); !ok {
		return nil, ErrMissingGlyph
	}

	dr, maskImg, maskp, advance, ok := r.otFace.Glyph(fixed.Point26_6{}, ch)
	if !ok {
		return nil, ErrMissingGlyph
	}

	w, h := dr.Dx(), dr.Dy()

	// Detach the coverage from the rasterizer's internal buffer; the
	// next Glyph call reuses it.
	tight := image.NewAlpha(image.Rect(0, 0, w, h))
	if w > 0 && h > 0 {
		draw.Draw(tight, tight.Bounds(), maskImg, maskp, draw.Src)
	}

	bm, err := glyphsdf.NewBitmapUnbuffered(tight.Pix, w, h, r.cfg.Buffer)
	if err != nil {
		return nil, err
	}
	sdf, err := glyphsdf.Render(bm, r.opts)
	if err != nil {
		return nil, err
	}

	return &Glyph{
		Rune:   ch,
		Bitmap: sdf,
		Metrics: Metrics{
			Width:       w,
			Height:      h,
			LeftBearing: dr.Min.X,
			TopBearing:  -dr.Min.Y,
			Advance:     advance.Floor(),
			Ascender:    r.ascender,
		},
	}, nil
}

// Range renders every code point in [lo, hi] the font covers, in
// ascending order. Code points without a glyph are skipped; any other
// failure aborts the range.
func (r *Renderer) Range(lo, hi rune) ([]*Glyph, error) {
	log := glyphsdf.Logger()
	var glyphs []*Glyph
	for ch := lo; ch <= hi; ch++ {
		g, err := r.Glyph(ch)
		if errors.Is(err, ErrMissingGlyph) {
			log.Debug("no glyph for code point", "rune", int(ch), "font", r.face.Name())
			continue
		}
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}
