package kmeans

// Bucket accumulates the channel sums of the pixels assigned to one cluster.
//
// The zero Bucket is the identity for Merge.
type Bucket struct {
	Sum   Pixel
	Count uint64
}

// Seed returns a bucket holding exactly one pixel.
func Seed(p Pixel) Bucket {
	return Bucket{Sum: p, Count: 1}
}

// Add folds a pixel into the bucket.
func (b *Bucket) Add(p Pixel) {
	b.Sum = b.Sum.add(p)
	b.Count++
}

// Merge returns the elementwise sum of two buckets.
func (b Bucket) Merge(o Bucket) Bucket {
	return Bucket{Sum: b.Sum.add(o.Sum), Count: b.Count + o.Count}
}

// Empty reports whether no pixel has been folded in.
func (b Bucket) Empty() bool {
	return b.Count == 0
}

// Average returns Sum/Count per channel. An empty bucket averages to black.
func (b Bucket) Average() Pixel {
	if b.Count == 0 {
		return Pixel{}
	}
	n := float64(b.Count)
	return Pixel{b.Sum[0] / n, b.Sum[1] / n, b.Sum[2] / n}
}

// Centroids is an ordered set of buckets; the index is the cluster id.
type Centroids []Bucket

// Colors returns the average color of every centroid in index order.
func (cs Centroids) Colors() []Pixel {
	out := make([]Pixel, len(cs))
	for i, c := range cs {
		out[i] = c.Average()
	}
	return out
}

// Counts returns the pixel count of every bucket in index order.
func (cs Centroids) Counts() []uint64 {
	out := make([]uint64, len(cs))
	for i, c := range cs {
		out[i] = c.Count
	}
	return out
}

// mergeInto adds src into dst elementwise.
func mergeInto(dst, src []Bucket) {
	for i := range dst {
		dst[i] = dst[i].Merge(src[i])
	}
}
