package luvatrix

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit-per-channel RGBA color with straight (non-premultiplied)
// alpha. It is the pixel format of the render surface.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// WithOpacity scales the alpha channel by opacity, clamped to [0, 1].
// Values >= 1 return the color unchanged.
func (c Color) WithOpacity(opacity float64) Color {
	if opacity >= 1.0 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// ParseColor parses a CSS-style color value.
// Supported forms: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA" and
// "rgb(r,g,b)" (alpha defaults to opaque). "none", empty and unparseable
// values return ok=false, meaning "no color": the shape simply does not
// draw that channel.
func ParseColor(value string) (c Color, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return Color{}, false
	}
	if value[0] == '#' {
		return parseHexColor(value[1:])
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBFunc(value)
	}
	return Color{}, false
}

// ParseBackground parses a page background color, which must be a strict
// "#RRGGBB" or "#RRGGBBAA" hex string. Anything else is a ConfigError.
func ParseBackground(value string) (Color, error) {
	raw := strings.TrimSpace(value)
	if !strings.HasPrefix(raw, "#") {
		return Color{}, Configf("background %q must use hex color format", value)
	}
	hex := raw[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, Configf("background %q must be #RRGGBB or #RRGGBBAA", value)
	}
	c, ok := parseHexColor(hex)
	if !ok {
		return Color{}, Configf("background %q has non-hex digits", value)
	}
	return c, nil
}

// parseHexColor parses the digits of a hex color (no leading '#').
// Short forms expand by digit duplication: #abc == #aabbcc.
func parseHexColor(hex string) (Color, bool) {
	var r, g, b uint32
	a := uint32(255)
	var ok bool

	switch len(hex) {
	case 3: // RGB
		r, ok = parseHex(hex[0:1])
		if !ok {
			return Color{}, false
		}
		g, ok = parseHex(hex[1:2])
		if !ok {
			return Color{}, false
		}
		b, ok = parseHex(hex[2:3])
		if !ok {
			return Color{}, false
		}
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		r, ok = parseHex(hex[0:1])
		if !ok {
			return Color{}, false
		}
		g, ok = parseHex(hex[1:2])
		if !ok {
			return Color{}, false
		}
		b, ok = parseHex(hex[2:3])
		if !ok {
			return Color{}, false
		}
		a, ok = parseHex(hex[3:4])
		if !ok {
			return Color{}, false
		}
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		r, ok = parseHex(hex[0:2])
		if !ok {
			return Color{}, false
		}
		g, ok = parseHex(hex[2:4])
		if !ok {
			return Color{}, false
		}
		b, ok = parseHex(hex[4:6])
		if !ok {
			return Color{}, false
		}
	case 8: // RRGGBBAA
		r, ok = parseHex(hex[0:2])
		if !ok {
			return Color{}, false
		}
		g, ok = parseHex(hex[2:4])
		if !ok {
			return Color{}, false
		}
		b, ok = parseHex(hex[4:6])
		if !ok {
			return Color{}, false
		}
		a, ok = parseHex(hex[6:8])
		if !ok {
			return Color{}, false
		}
	default:
		return Color{}, false
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, true
}

// parseHex parses one or two hex digits.
func parseHex(s string) (uint32, bool) {
	var val uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}

// parseRGBFunc parses "rgb(r, g, b)" with integer components.
func parseRGBFunc(value string) (Color, bool) {
	open := strings.IndexByte(value, '(')
	close := strings.IndexByte(value, ')')
	if open < 0 || close < open {
		return Color{}, false
	}
	parts := strings.Split(value[open+1:close], ",")
	if len(parts) < 3 {
		return Color{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return Color{}, false
		}
		ch[i] = uint8(n)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: 255}, true
}
