// color.go — Color parsing and solid image creation.
package generator

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

// ParseHex parses "#rrggbb" or "rrggbb". Anything else, "random" included, is
// an error: placeholder colors must be reproducible.
func ParseHex(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: expected 6-char hex", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// ParseHexRGBA converts a "#rrggbb" string to an opaque color.RGBA.
// Returns fallback on any parse error.
func ParseHexRGBA(hex string, fallback color.RGBA) color.RGBA {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return fallback
	}
	return toRGBA(r, g, b)
}

// NewSolidImage creates a uniform solid-color image using draw.Draw.
func NewSolidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}
