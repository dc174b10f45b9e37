package netviz

import (
	"image/color"
	"strconv"
	"strings"
)

// namedColors covers the CSS color names the social-domain palette and the
// table loaders are expected to use. Unknown names fall back to black.
var namedColors = map[string]color.RGBA{
	"black":      {0, 0, 0, 255},
	"white":      {255, 255, 255, 255},
	"red":        {255, 0, 0, 255},
	"blue":       {0, 0, 255, 255},
	"green":      {0, 128, 0, 255},
	"magenta":    {255, 0, 255, 255},
	"brown":      {165, 42, 42, 255},
	"orange":     {255, 165, 0, 255},
	"darkviolet": {148, 0, 211, 255},
	"limegreen":  {50, 205, 50, 255},
	"yellow":     {255, 255, 0, 255},
	"cyan":       {0, 255, 255, 255},
	"purple":     {128, 0, 128, 255},
	"pink":       {255, 192, 203, 255},
	"gray":       {128, 128, 128, 255},
	"grey":       {128, 128, 128, 255},
	"lightgray":  {211, 211, 211, 255},
	"lightgrey":  {211, 211, 211, 255},
	"darkgray":   {169, 169, 169, 255},
	"darkblue":   {0, 0, 139, 255},
	"darkred":    {139, 0, 0, 255},
	"darkgreen":  {0, 100, 0, 255},
	"navy":       {0, 0, 128, 255},
	"skyblue":    {135, 206, 235, 255},
	"steelblue":  {70, 130, 180, 255},
}

// ParseColor resolves a CSS-style color: "#RGB", "#RRGGBB" or a named
// color. The boolean reports whether the value was recognized.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.RGBA{}, false
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
	}
	c, ok := namedColors[s]
	return c, ok
}

func parseColorOr(s string, fallback color.RGBA) color.RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}
