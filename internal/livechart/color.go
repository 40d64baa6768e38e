package livechart

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is a hex color string, "#rrggbb" or "#rrggbbaa". A few CSS names are accepted too.
type Color string

const (
	Black         Color = "#000000"
	White         Color = "#ffffff"
	Gray          Color = "#808080"
	Green         Color = "#008000"
	Red           Color = "#ff0000"
	Blue          Color = "#0000ff"
	TooltipShadow Color = "#000000b3"
)

var namedColors = map[string]Color{
	"black": Black,
	"white": White,
	"gray":  Gray,
	"grey":  Gray,
	"green": Green,
	"red":   Red,
	"blue":  Blue,
}

// RGBA parses c. Unparseable colors come back as opaque black.
func (c Color) RGBA() color.RGBA {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	if named, ok := namedColors[s]; ok {
		s = string(named)
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// Hex returns the "#rrggbb" form, dropping alpha.
func (c Color) Hex() string {
	rgba := c.RGBA()
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{rgba.R, rgba.G, rgba.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}
