// Package pbf reads, writes and assembles fontstack glyph PBFs, the
// protobuf container map renderers fetch distance field glyphs in.
//
// A fontstack file covers one font and one 256-code-point range
// (0-255.pbf, 256-511.pbf, ...). On disk a glyph tree looks like
//
//	glyphs/
//	    Noto Sans Regular/
//	        0-255.pbf
//	        256-511.pbf
//	    Noto Sans Bold/
//	        0-255.pbf
//
// [RenderStack] and [RenderFont] produce stacks straight from a parsed
// font, [LoadGlyphs] and [WriteGlyphs] move them to and from disk, and
// [Combine] merges several fonts into one stack with earlier fonts
// taking precedence, which is how fallback chains are served.
package pbf
