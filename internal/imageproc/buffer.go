// Package imageproc converts between decoded images and the flat pixel
// buffers clustered by package kmeans, and reports on finished palettes.
package imageproc

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"kquant/internal/kmeans"
)

// Pixels flattens img into a row-major buffer of normalized pixels.
// Alpha is dropped; fully transparent pixels read as black.
func Pixels(img image.Image) (pixels []kmeans.Pixel, width, height int) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]kmeans.Pixel, 0, width*height)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := rgba.RGBAAt(x, y)
				if c.A == 0xff {
					pixels = append(pixels, kmeans.PixelFromRGB8(c.R, c.G, c.B))
					continue
				}
				pixels = append(pixels, pixelFromColor(c))
			}
		}
		return pixels, width, height
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, pixelFromColor(img.At(x, y)))
		}
	}
	return pixels, width, height
}

func pixelFromColor(c color.Color) kmeans.Pixel {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return kmeans.Pixel{}
	}
	return kmeans.PixelFromColor(col)
}
