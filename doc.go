// Package glyphsdf converts rasterized glyph coverage bitmaps into
// signed distance fields.
//
// # Overview
//
// A rasterizer hands back each glyph as an 8-bit alpha bitmap: per
// pixel, how much of it the glyph covers. A signed distance field
// re-encodes the same shape as, per pixel, the distance to the nearest
// glyph edge, with the sign telling inside from outside. Map renderers
// and GPU text stacks prefer SDFs because one small texture scales,
// rotates, halos and outlines cleanly in a shader.
//
// The conversion runs a two-pass squared distance transform
// (Felzenszwalb & Huttenlocher) once against the glyph and once against
// its background, combines both into a signed distance per pixel, and
// quantizes the result back into an 8-bit bitmap centered at 128.
//
// # Quick Start
//
//	bm, err := glyphsdf.NewBitmapUnbuffered(alpha, w, h, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := glyphsdf.Render(bm, glyphsdf.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// out.Values() holds the SDF: 128 on the edge, above 128 inside.
//
// Subpackages build the rest of the pipeline: glyphgen rasterizes
// glyphs from font files, pbf packages rendered glyphs into fontstack
// PBFs, and atlas packs them into texture sheets.
package glyphsdf

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
