package glyphsdf

import "fmt"

// DimensionsError reports a pixel buffer whose length cannot fill the
// dimensions it was declared with.
type DimensionsError struct {
	Len    int // length of the supplied slice
	Width  int
	Height int
	Buffer int
}

func (e *DimensionsError) Error() string {
	return fmt.Sprintf("glyphsdf: invalid dimensions: %d values for %dx%d bitmap (buffer %d)",
		e.Len, e.Width, e.Height, e.Buffer)
}

// ConfigError represents an options validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyphsdf: invalid config." + e.Field + ": " + e.Reason
}
