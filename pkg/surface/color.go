package surface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Color is a straight (non premultiplied) RGBA color
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// WithAlpha returns c with the alpha channel set from a [0, 1] opacity
func (c Color) WithAlpha(opacity float64) Color {
	c.A = uint8(clamp01(opacity)*255 + 0.5)
	return c
}

// String renders the color as #rrggbbaa
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) drawing() drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// MustParseColor is ParseColor for package level defaults; it panics on bad input
func MustParseColor(raw string) Color {
	c, err := ParseColor(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) and
// rgba(r, g, b, a) with a in [0, 1]
func ParseColor(raw string) (Color, error) {
	s := strings.TrimSpace(strings.ToLower(raw))

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[5:len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[4:len(s)-1], 3)
	default:
		return Color{}, fmt.Errorf("unsupported color %q", raw)
	}
}

func parseHex(hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color #%s", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color #%s: %w", hex, err)
	}

	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func parseFunc(args string, want int) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != want {
		return Color{}, fmt.Errorf("expected %d color components, got %d", want, len(parts))
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("invalid color component %q", parts[i])
		}
		channels[i] = uint8(v)
	}

	c := RGB(channels[0], channels[1], channels[2])
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha %q: %w", parts[3], err)
		}
		c = c.WithAlpha(a)
	}

	return c, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
