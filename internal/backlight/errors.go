package backlight

import (
	"errors"
	"fmt"
)

// Sentinel errors for device discovery and selection. Match with errors.Is.
var (
	// ErrDoesNotExist indicates that the graphics card has no directory
	// under the backlight class root.
	ErrDoesNotExist = errors.New("graphics card does not exist")

	// ErrDoesNotSupportAPI indicates that the graphics card directory
	// exists but lacks the required brightness attribute files.
	ErrDoesNotSupportAPI = errors.New("graphics card does not support the backlight API")

	// ErrNoSupportedGraphicsCards indicates that every candidate of a
	// selection pool failed validation.
	ErrNoSupportedGraphicsCards = errors.New("no supported graphics cards found")
)

// RangeError reports a brightness input that is not a base-10 non-negative
// integer or lies outside the device's accepted range. Match with errors.As.
type RangeError struct {
	Value string
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid brightness %q: expected integer in [%d, %d]", e.Value, e.Min, e.Max)
}
