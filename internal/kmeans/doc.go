// Package kmeans implements k-means color quantization over normalized RGB
// pixels.
//
// A run seeds K buckets from randomly sampled pixels (Init), refines them a
// fixed number of times (Iterate) and renders either a recolored image or a
// palette strip (Render). Each iteration folds the image in parallel shards
// into private buckets and merges them pairwise, so workers never share
// mutable state. There is no convergence check: Run always performs exactly
// the configured number of iterations.
package kmeans
