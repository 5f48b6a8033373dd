package pbf

import "errors"

var (
	// ErrNoFonts is returned when a font stack is requested with an
	// empty font list.
	ErrNoFonts = errors.New("pbf: no font names given")

	// ErrMissingFontFamily is returned when a font carries no family
	// name and therefore cannot name its stack.
	ErrMissingFontFamily = errors.New("pbf: font has no family name")
)
