package imageproc

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"kquant/internal/kmeans"
)

// LabelSwatches writes each centroid's hex code centered on its swatch in a
// palette strip rendered with the given tile size. Swatches too narrow for
// the text are left alone.
func LabelSwatches(img *image.RGBA, centroids kmeans.Centroids, tile int) {
	face := basicfont.Face7x13
	for i, avg := range centroids.Colors() {
		col := avg.Color().Clamped()
		hex := col.Hex()

		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(inkFor(avg)),
			Face: face,
		}
		width := d.MeasureString(hex).Ceil()
		if width+4 > tile || face.Height+4 > tile {
			continue
		}
		x := i*tile + (tile-width)/2
		y := (tile-face.Height)/2 + face.Ascent
		d.Dot = fixed.P(x, y)
		d.DrawString(hex)
	}
}

// inkFor picks black or white text, whichever reads better on p.
func inkFor(p kmeans.Pixel) color.Color {
	l, _, _ := p.Color().Clamped().Lab()
	if l > 0.6 {
		return color.Black
	}
	return color.White
}
