package overlay

import "image/color"

// Color is a straight-alpha 8-bit RGBA quad.
type Color struct {
	R, G, B, A uint8
}

// White is the default text color.
var White = Color{255, 255, 255, 255}

// Transparent is what ClearFrame fills the target with.
var Transparent = Color{}

// RGBA builds a Color.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

// FromColor converts any image/color value, un-premultiplying alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// ColorF is the normalized float form a brush is built from. Layout matches D2D1_COLOR_F.
type ColorF struct {
	R, G, B, A float32
}

// Float normalizes each channel to [0,1].
func (c Color) Float() ColorF {
	return ColorF{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}
