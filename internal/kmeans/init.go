package kmeans

import (
	"math/rand/v2"
)

// Init seeds k buckets from pixels sampled uniformly at random with
// replacement. Two centroids may start on the same pixel.
func Init(pixels []Pixel, k int, rng *rand.Rand) (Centroids, error) {
	if k <= 0 {
		return nil, &ParamError{Name: "k", Value: k, Reason: "must be positive"}
	}
	if len(pixels) == 0 {
		return nil, ErrEmptyImage
	}
	if rng == nil {
		rng = newRand()
	}

	centroids := make(Centroids, k)
	for i := range centroids {
		centroids[i] = Seed(pixels[rng.IntN(len(pixels))])
	}
	return centroids, nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic random source for Init.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
