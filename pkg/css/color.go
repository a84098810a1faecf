package css

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// NRGBA converts the color for use with image/color and gg.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

var namedColors = map[string]Color{
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"white":       {255, 255, 255, 255},
	"black":       {0, 0, 0, 255},
	"gray":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"pink":        {255, 192, 203, 255},
	"brown":       {165, 42, 42, 255},
	"lime":        {0, 255, 0, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a color value: a named color, #rgb, #rrggbb, #rrggbbaa,
// rgb(r, g, b) or rgba(r, g, b, a) where a is in [0, 1].
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}
	if strings.HasPrefix(colorStr, "rgb(") || strings.HasPrefix(colorStr, "rgba(") {
		return parseRGBFunction(colorStr)
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

func parseHexColor(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		// #rgb expands each digit: #f80 == #ff8800
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return Color{}, false
	}
	c := Color{A: 255}
	channels := []*uint8{&c.R, &c.G, &c.B, &c.A}
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, false
		}
		*channels[i] = uint8(v)
	}
	return c, true
}

func parseRGBFunction(value string) (Color, bool) {
	open := strings.IndexByte(value, '(')
	if !strings.HasSuffix(value, ")") {
		return Color{}, false
	}
	name := value[:open]
	args := strings.Split(value[open+1:len(value)-1], ",")

	want := 3
	if name == "rgba" {
		want = 4
	}
	if len(args) != want {
		return Color{}, false
	}

	c := Color{A: 255}
	channels := []*uint8{&c.R, &c.G, &c.B}
	for i, ch := range channels {
		v, err := strconv.Atoi(strings.TrimSpace(args[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, false
		}
		*ch = uint8(v)
	}
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, false
		}
		c.A = uint8(math.Round(a * 255))
	}
	return c, true
}
