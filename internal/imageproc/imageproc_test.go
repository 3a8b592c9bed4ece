package imageproc

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kquant/internal/kmeans"
)

func gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: uint8(y), B: 255 - v, A: 255})
		}
	}
	return img
}

func toImage(pixels []kmeans.Pixel, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		r, g, b := p.RGB8()
		img.SetRGBA(i%width, i/width, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return img
}

func TestPixels_RoundTrip(t *testing.T) {
	img := gradient(16, 4)
	pixels, w, h := Pixels(img)
	require.Equal(t, 16, w)
	require.Equal(t, 4, h)
	require.Len(t, pixels, 64)

	assert.Equal(t, kmeans.Pixel{0, 0, 1}, pixels[0])
	assert.Equal(t, img.Pix, toImage(pixels, w, h).Pix)
}

func TestPixels_NonRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	pixels, _, _ := Pixels(img)
	assert.InDelta(t, 1.0, pixels[0][0], 0.01, "alpha is divided out")
	assert.Equal(t, kmeans.Pixel{}, pixels[1], "transparent reads as black")
}

func TestEncodeDecode(t *testing.T) {
	img := gradient(8, 8)

	for _, name := range []string{"out.png", "out.tiff", "out.bmp", "out.gif", "out.jpg", "out.unknown"} {
		t.Run(name, func(t *testing.T) {
			data, err := Encode(img, name)
			require.NoError(t, err)

			got, _, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds(), got.Bounds())
		})
	}

	data, err := Encode(img, "lossless.PNG")
	require.NoError(t, err)
	got, format, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	pixels, _, _ := Pixels(got)
	want, _, _ := Pixels(img)
	assert.Equal(t, want, pixels)
}

func TestDecode_Invalid(t *testing.T) {
	_, _, err := Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("a.png"))
	assert.Equal(t, "image/jpeg", ContentType("a.JPEG"))
	assert.Equal(t, "image/tiff", ContentType("a.tif"))
	assert.Equal(t, "application/json", ContentType("report.json"))
}

func TestAnalyzePalette(t *testing.T) {
	ctx := context.Background()
	pixels := []kmeans.Pixel{
		{0, 0, 0},
		{1, 1, 1}, {1, 1, 1}, {0.9, 0.9, 0.9},
	}
	cs := kmeans.Centroids{kmeans.Seed(kmeans.Pixel{0, 0, 0}), kmeans.Seed(kmeans.Pixel{1, 0, 0})}

	report, err := AnalyzePalette(ctx, pixels, cs, kmeans.SquaredEuclidean, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.K)
	assert.Equal(t, 4, report.Pixels)
	require.Len(t, report.Swatches, 2)

	top := report.Swatches[0]
	assert.Equal(t, 1, top.Index)
	assert.Equal(t, "#ff0000", top.Hex)
	assert.Equal(t, [3]uint8{255, 0, 0}, top.RGB)
	assert.Equal(t, uint64(3), top.Count)
	assert.InDelta(t, 0.75, top.Proportion, 1e-12)
	assert.InDelta(t, 0, top.Hue, 1e-9)
	assert.InDelta(t, 1, top.Saturation, 1e-9)

	assert.Equal(t, "#000000", report.Swatches[1].Hex)

	data, err := report.JSON()
	require.NoError(t, err)
	var decoded PaletteReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report, decoded)
}

func TestAnalyzePalette_Empty(t *testing.T) {
	_, err := AnalyzePalette(context.Background(), nil, kmeans.Centroids{kmeans.Seed(kmeans.Pixel{})}, kmeans.SquaredEuclidean, 1)
	assert.ErrorIs(t, err, kmeans.ErrEmptyImage)
}

func TestLabelSwatches(t *testing.T) {
	ctx := context.Background()
	cs := kmeans.Centroids{kmeans.Seed(kmeans.Pixel{0, 0, 0}), kmeans.Seed(kmeans.Pixel{1, 1, 1})}

	img, err := kmeans.Render(ctx, image.Point{}, nil, cs, kmeans.ModePalette, kmeans.RenderOptions{TileSize: 100})
	require.NoError(t, err)
	before := append([]uint8(nil), img.Pix...)

	LabelSwatches(img, cs, 100)
	assert.NotEqual(t, before, img.Pix)

	// White text on the black swatch, black text on the white one.
	var sawWhite, sawBlack bool
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := 0; x < 100; x++ {
			if img.RGBAAt(x, y).R > 128 {
				sawWhite = true
			}
			if img.RGBAAt(x+100, y).R < 128 {
				sawBlack = true
			}
		}
	}
	assert.True(t, sawWhite)
	assert.True(t, sawBlack)
}

func TestLabelSwatches_TooSmall(t *testing.T) {
	ctx := context.Background()
	cs := kmeans.Centroids{kmeans.Seed(kmeans.Pixel{0.2, 0.4, 0.6})}
	img, err := kmeans.Render(ctx, image.Point{}, nil, cs, kmeans.ModePalette, kmeans.RenderOptions{TileSize: 10})
	require.NoError(t, err)
	before := append([]uint8(nil), img.Pix...)

	LabelSwatches(img, cs, 10)
	assert.Equal(t, before, img.Pix)
}
