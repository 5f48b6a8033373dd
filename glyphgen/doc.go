// Package glyphgen rasterizes glyphs from font files and converts them
// into signed distance field bitmaps.
//
// A [Face] is a parsed font: heavyweight, read-only and safe to share
// across goroutines. A [Renderer] is a cheap per-goroutine session that
// turns code points into rendered [Glyph] values using a Face and a
// [Config]. Workers that render in parallel create one Renderer each.
//
//	face, err := glyphgen.Load("NotoSans-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := glyphgen.NewRenderer(face, glyphgen.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	glyphs, err := r.Range(0, 255)
//
// Glyph rasterization is unhinted: distance fields encode the true
// outline, and hinting distortions would bake one specific pixel grid
// into data meant to be rescaled.
package glyphgen
