// pkg/render/color.go
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/crazy3lf/colorconv"
)

// ParseHex разбирает цвет вида "#rrggbb" или "#rgb".
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || strings.Trim(strings.ToLower(hex), "0123456789abcdef") != "" {
		return color.RGBA{}, fmt.Errorf("bad hex colour %q", s)
	}
	r, g, b, err := colorconv.HexToRGB("#" + hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex colour %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Brighten сдвигает цвет к белому: насыщенность падает, яркость растёт.
// При t = 0 цвет не меняется, при t = 1 получается белый.
func Brighten(c color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return c
	}
	if t > 1 {
		t = 1
	}
	h, s, v := colorconv.RGBToHSV(c.R, c.G, c.B)
	r, g, b, err := colorconv.HSVToRGB(h, s*(1-t), v+(1-v)*t)
	if err != nil {
		return c
	}
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
