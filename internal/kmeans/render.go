package kmeans

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"kquant/internal/worker"
)

// Mode selects what Render produces.
type Mode int

const (
	// ModeImage recolors every pixel with its nearest centroid.
	ModeImage Mode = iota
	// ModePalette draws one swatch per centroid.
	ModePalette
)

// DefaultTileSize is the edge length of a palette swatch in pixels.
const DefaultTileSize = 100

func (m Mode) String() string {
	switch m {
	case ModeImage:
		return "image"
	case ModePalette:
		return "palette"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMode parses "image" or "palette".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return ModeImage, nil
	case "palette":
		return ModePalette, nil
	default:
		return 0, &ParamError{Name: "mode", Value: s, Reason: "want image or palette"}
	}
}

// RenderOptions configures Render.
type RenderOptions struct {
	// Dist is the assignment metric for ModeImage. Nil means SquaredEuclidean.
	Dist Func
	// Workers bounds row parallelism for ModeImage.
	Workers int
	// TileSize is the swatch edge for ModePalette. Zero means DefaultTileSize.
	TileSize int
}

// Render draws the final centroids. In ModeImage size must match the pixel
// buffer; in ModePalette the pixels are not read.
func Render(ctx context.Context, size image.Point, pixels []Pixel, centroids Centroids, mode Mode, opts RenderOptions) (*image.RGBA, error) {
	if len(centroids) == 0 {
		return nil, &ParamError{Name: "k", Value: 0, Reason: "must be positive"}
	}
	switch mode {
	case ModeImage:
		return renderImage(ctx, size, pixels, centroids, opts)
	case ModePalette:
		return renderPalette(centroids, opts.TileSize)
	default:
		return nil, &ParamError{Name: "mode", Value: mode}
	}
}

func renderImage(ctx context.Context, size image.Point, pixels []Pixel, centroids Centroids, opts RenderOptions) (*image.RGBA, error) {
	if len(pixels) == 0 {
		return nil, ErrEmptyImage
	}
	if size.X <= 0 || size.Y <= 0 || size.X*size.Y != len(pixels) {
		return nil, &DimensionMismatchError{What: "pixel count", Expected: size.X * size.Y, Actual: len(pixels)}
	}
	dist := opts.Dist
	if dist == nil {
		dist = SquaredEuclidean
	}

	colors := centroids.Colors()
	rgba := swatchColors(colors)
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))

	workers := opts.Workers
	if workers <= 0 {
		workers = worker.DefaultWorkers()
	}
	rows := worker.Split(size.Y, workers)
	err := worker.Run(ctx, rows, workers, func(r worker.Range) {
		for y := r.Start; y < r.End; y++ {
			for x := 0; x < size.X; x++ {
				c := rgba[Assign(pixels[y*size.X+x], colors, dist)]
				off := dst.PixOffset(x, y)
				dst.Pix[off+0] = c.R
				dst.Pix[off+1] = c.G
				dst.Pix[off+2] = c.B
				dst.Pix[off+3] = c.A
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

func renderPalette(centroids Centroids, tile int) (*image.RGBA, error) {
	if tile < 0 {
		return nil, &ParamError{Name: "tile", Value: tile, Reason: "must not be negative"}
	}
	if tile == 0 {
		tile = DefaultTileSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, len(centroids)*tile, tile))
	for i, c := range swatchColors(centroids.Colors()) {
		r := image.Rect(i*tile, 0, (i+1)*tile, tile)
		draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
	return dst, nil
}

func swatchColors(colors []Pixel) []color.RGBA {
	out := make([]color.RGBA, len(colors))
	for i, p := range colors {
		r, g, b := p.RGB8()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}
