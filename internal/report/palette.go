package report

import (
	"fmt"
	"image/color"
)

// egoColor is reserved for the ego vehicle in every chart.
var egoColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}

// Object series differ only in hue.
const (
	objectSaturation = 0.7
	objectLightness  = 0.5
)

// generateColors returns n object colours with hues spread evenly around the
// wheel, in object order.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = hslToRGB(float64(i)/float64(n), objectSaturation, objectLightness)
	}
	return colors
}

// hexColor formats c as #rrggbb for echarts item styles.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// hslToRGB converts hue, saturation and lightness, each in [0,1], to an
// opaque RGBA colour.
func hslToRGB(h, s, l float64) color.RGBA {
	if s == 0 {
		v := uint8(l * 255)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}

	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	channel := func(t float64) uint8 {
		return uint8(hueToRGB(p, q, t) * 255)
	}
	return color.RGBA{R: channel(h + 1.0/3.0), G: channel(h), B: channel(h - 1.0/3.0), A: 255}
}

// hueToRGB evaluates one RGB channel at hue offset t, wrapped into [0,1].
func hueToRGB(p, q, t float64) float64 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
