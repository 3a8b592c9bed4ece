package worker

// Range is the half-open index span [Start, End) of one shard.
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split partitions n items into at most parts contiguous ranges whose
// lengths differ by at most one. Empty ranges are never returned.
func Split(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	base, extra := n/parts, n%parts
	ranges := make([]Range, parts)
	start := 0
	for i := range ranges {
		size := base
		if i < extra {
			size++
		}
		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}
	return ranges
}
