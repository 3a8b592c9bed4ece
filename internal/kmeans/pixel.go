package kmeans

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Pixel is an RGB triple with each channel normalized to [0, 1].
type Pixel [3]float64

// PixelFromColor converts a colorful.Color to a Pixel.
func PixelFromColor(c colorful.Color) Pixel {
	return Pixel{c.R, c.G, c.B}
}

// PixelFromRGB8 converts 8-bit channels to a Pixel.
func PixelFromRGB8(r, g, b uint8) Pixel {
	return Pixel{float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0}
}

// Color returns the pixel as a colorful.Color.
func (p Pixel) Color() colorful.Color {
	return colorful.Color{R: p[0], G: p[1], B: p[2]}
}

// RGB8 quantizes the pixel to 8-bit channels, rounding v*255 to the nearest
// integer after clamping to [0, 1].
func (p Pixel) RGB8() (r, g, b uint8) {
	return p.Color().Clamped().RGB255()
}

func (p Pixel) add(o Pixel) Pixel {
	return Pixel{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}
