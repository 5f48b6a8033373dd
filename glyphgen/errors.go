package glyphgen

import "errors"

// Sentinel errors for glyphgen package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("glyphgen: empty font data")

	// ErrMissingGlyph is returned when a font has no glyph for the
	// requested code point. Range generation treats it as a skip, not a
	// failure.
	ErrMissingGlyph = errors.New("glyphgen: no glyph for code point")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyphgen: invalid config." + e.Field + ": " + e.Reason
}
