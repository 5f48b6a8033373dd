package atlas

import (
	"errors"
	"fmt"
)

var (
	// ErrTooLarge is returned when a bitmap cannot fit even an empty
	// sheet.
	ErrTooLarge = errors.New("atlas: bitmap does not fit a sheet")

	// ErrAllocationFailed is returned when packing fails on a sheet
	// that reported free space.
	ErrAllocationFailed = errors.New("atlas: allocation failed")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

// FullError is returned when every sheet is full and the sheet budget
// is spent.
type FullError struct {
	MaxSheets int
}

func (e *FullError) Error() string {
	return fmt.Sprintf("atlas: all %d sheets are full", e.MaxSheets)
}
