// Package atlas packs rendered distance field bitmaps into fixed-size
// grayscale sheets.
//
// Packing is shelf-based: glyphs fill horizontal shelves left to right,
// a new shelf opens below when the current one runs out of width, and a
// new sheet opens when a bitmap fits on none of the existing ones.
// Entries are keyed by caller-chosen strings, so one atlas can mix
// glyphs from several fonts and sizes.
package atlas
