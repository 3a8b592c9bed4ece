package kmeans

import (
	"math/rand/v2"
)

// randomPixels returns n reproducible pixels.
func randomPixels(n int, seed uint64) []Pixel {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	pixels := make([]Pixel, n)
	for i := range pixels {
		pixels[i] = Pixel{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	return pixels
}

func countDistinct(pix []uint8) int {
	seen := make(map[[4]uint8]struct{})
	for i := 0; i+3 < len(pix); i += 4 {
		seen[[4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}] = struct{}{}
	}
	return len(seen)
}
