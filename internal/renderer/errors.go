package renderer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLightMode      = errors.New("light mode must be 1, 2 or 3")
	ErrInvalidMaterialParams = errors.New("invalid material parameters")
	ErrTooManyLights         = fmt.Errorf("at most %d non-ambient lights are supported", MaxLights)
)

// InvalidColorError reports a color string that is not six hex digits with an optional '#'
type InvalidColorError struct {
	Input string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid hex color %q", e.Input)
}

// UnknownTextureError reports a texture name the provider does not know
type UnknownTextureError struct {
	Name string
}

func (e *UnknownTextureError) Error() string {
	return fmt.Sprintf("unknown texture name %q", e.Name)
}
