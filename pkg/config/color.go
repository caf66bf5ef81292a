package config

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses "#rrggbb" or "#rrggbbaa" into RGBA components in [0,1].
func ParseColor(s string) (math32.Vector4, error) {
	s = strings.TrimSpace(s)
	alpha := float32(1)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return math32.Vector4{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return math32.Vector4{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return math32.Vec4(float32(c.R), float32(c.G), float32(c.B), alpha), nil
}

// FormatColor renders c as "#rrggbb", or "#rrggbbaa" when not opaque.
func FormatColor(c math32.Vector4) string {
	hex := colorful.Color{R: float64(c.X), G: float64(c.Y), B: float64(c.Z)}.Clamped().Hex()
	if c.W >= 1 {
		return hex
	}
	a := c.W
	if a < 0 {
		a = 0
	}
	return fmt.Sprintf("%s%02x", hex, uint8(a*255+0.5))
}
