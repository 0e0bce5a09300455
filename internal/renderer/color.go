package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a 24-bit 0xRRGGBB value
type Color uint32

// HexToColor parses "rrggbb" or "#rrggbb" into a Color.
func HexToColor(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return 0, &InvalidColorError{Input: s}
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return 0, &InvalidColorError{Input: s}
		}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, &InvalidColorError{Input: s}
	}
	return Color(v), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Vec3 returns the channels scaled to [0,1]
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.R()) / 255,
		float32(c.G()) / 255,
		float32(c.B()) / 255,
	}
}

// Hex renders the color as "#rrggbb"
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

func (c Color) String() string {
	return c.Hex()
}
