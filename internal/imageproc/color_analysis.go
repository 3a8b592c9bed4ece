package imageproc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"kquant/internal/kmeans"
)

// Swatch describes one final centroid.
type Swatch struct {
	Index      int      `json:"index"`
	RGB        [3]uint8 `json:"rgb"`
	Hex        string   `json:"hex"`
	Count      uint64   `json:"count"`
	Proportion float64  `json:"proportion"`
	Hue        float64  `json:"hue"`
	Saturation float64  `json:"saturation"`
	Lightness  float64  `json:"lightness"`
}

// PaletteReport summarizes a quantization run.
type PaletteReport struct {
	K        int      `json:"k"`
	Pixels   int      `json:"pixels"`
	Swatches []Swatch `json:"swatches"`
}

// AnalyzePalette counts how many pixels each centroid claims and returns
// the swatches sorted by proportion, largest first. Equal proportions keep
// centroid order.
func AnalyzePalette(ctx context.Context, pixels []kmeans.Pixel, centroids kmeans.Centroids, dist kmeans.Func, workers int) (PaletteReport, error) {
	merged, err := kmeans.Fold(ctx, pixels, centroids, dist, workers)
	if err != nil {
		return PaletteReport{}, fmt.Errorf("error counting palette pixels: %w", err)
	}

	total := float64(len(pixels))
	swatches := make([]Swatch, len(centroids))
	for i, avg := range centroids.Colors() {
		col := avg.Color().Clamped()
		r, g, b := avg.RGB8()
		h, s, l := col.Hsl()
		swatches[i] = Swatch{
			Index:      i,
			RGB:        [3]uint8{r, g, b},
			Hex:        col.Hex(),
			Count:      merged[i].Count,
			Proportion: float64(merged[i].Count) / total,
			Hue:        h,
			Saturation: s,
			Lightness:  l,
		}
	}

	sort.SliceStable(swatches, func(i, j int) bool {
		return swatches[i].Proportion > swatches[j].Proportion
	})

	return PaletteReport{
		K:        len(centroids),
		Pixels:   len(pixels),
		Swatches: swatches,
	}, nil
}

// JSON returns the report as indented JSON.
func (r PaletteReport) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling palette report: %w", err)
	}
	return data, nil
}
