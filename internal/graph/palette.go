package graph

import (
	"fmt"
	"image/color"
	"math"
)

// goldenHue spreads successive hues so that the first few curves stay
// far apart however many are added later.
const goldenHue = 0.618033988749895

// palette returns n distinct curve colours. The i-th colour does not
// depend on n.
func palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := range colors {
		_, h := math.Modf(0.6 + float64(i)*goldenHue)
		colors[i] = hsl(h, 0.65, 0.45)
	}
	return colors
}

// hsl converts hue, saturation and lightness in [0, 1] to an opaque colour.
func hsl(h, s, l float64) color.RGBA {
	if s == 0 {
		v := channel(l)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}
	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return color.RGBA{
		R: channel(hueChannel(p, q, h+1.0/3)),
		G: channel(hueChannel(p, q, h)),
		B: channel(hueChannel(p, q, h-1.0/3)),
		A: 255,
	}
}

func hueChannel(p, q, t float64) float64 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// hexColor formats c as #rrggbb for the HTML back end.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
