package kmeans

import (
	"context"
	"math"

	"kquant/internal/worker"
)

// Assign returns the index of the color nearest to p. Ties go to the lowest
// index.
func Assign(p Pixel, colors []Pixel, dist Func) int {
	best := 0
	minDist := math.Inf(1)
	for i, c := range colors {
		if d := dist(p, c); d < minDist {
			minDist = d
			best = i
		}
	}
	return best
}

// accumulate folds pixels into fresh zero buckets, one per color.
func accumulate(pixels []Pixel, colors []Pixel, dist Func) []Bucket {
	buckets := make([]Bucket, len(colors))
	for _, px := range pixels {
		buckets[Assign(px, colors, dist)].Add(px)
	}
	return buckets
}

// reduce merges shard results pairwise, adjacent shards first, until one
// set remains. The first set of every pair is reused as the destination.
func reduce(parts [][]Bucket) []Bucket {
	for len(parts) > 1 {
		next := make([][]Bucket, 0, (len(parts)+1)/2)
		for i := 0; i+1 < len(parts); i += 2 {
			mergeInto(parts[i], parts[i+1])
			next = append(next, parts[i])
		}
		if len(parts)%2 == 1 {
			next = append(next, parts[len(parts)-1])
		}
		parts = next
	}
	return parts[0]
}

// Fold assigns every pixel to its nearest centroid and returns the merged
// per-centroid sums and counts. The counts always add up to len(pixels).
//
// The pixels are split into one contiguous shard per worker. Each shard is
// folded into its own buckets against the centroid averages fixed at entry;
// the input centroids are never written.
func Fold(ctx context.Context, pixels []Pixel, centroids Centroids, dist Func, workers int) ([]Bucket, error) {
	if len(pixels) == 0 {
		return nil, ErrEmptyImage
	}
	if len(centroids) == 0 {
		return nil, &ParamError{Name: "k", Value: 0, Reason: "must be positive"}
	}
	if dist == nil {
		return nil, &ParamError{Name: "metric", Value: nil}
	}
	if workers <= 0 {
		workers = worker.DefaultWorkers()
	}

	colors := centroids.Colors()
	shards := worker.Split(len(pixels), workers)
	parts, err := worker.Map(ctx, shards, workers, func(r worker.Range) []Bucket {
		return accumulate(pixels[r.Start:r.End], colors, dist)
	})
	if err != nil {
		return nil, err
	}
	return reduce(parts), nil
}

// Iterate performs one refinement pass and returns a new centroid set of the
// same size. Every returned bucket has Count 1 and holds the mean of the
// pixels assigned to it. A centroid that received no pixels keeps its
// previous average.
func Iterate(ctx context.Context, pixels []Pixel, centroids Centroids, dist Func, workers int) (Centroids, error) {
	merged, err := Fold(ctx, pixels, centroids, dist, workers)
	if err != nil {
		return nil, err
	}
	next, _ := settle(merged, centroids)
	return next, nil
}

// settle averages the merged buckets and reports how many were empty.
func settle(merged []Bucket, prev Centroids) (Centroids, int) {
	next := make(Centroids, len(merged))
	empty := 0
	for i, b := range merged {
		if b.Empty() {
			next[i] = Seed(prev[i].Average())
			empty++
			continue
		}
		next[i] = Seed(b.Average())
	}
	return next, empty
}
