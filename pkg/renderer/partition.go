package renderer

// RowRange is the half-open span of image rows [Start, End) owned by one worker
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.End - r.Start
}

// PartitionRows splits height rows into contiguous, disjoint ranges that cover
// every row exactly once. Range sizes differ by at most one row; the earlier
// ranges take the remainder. The worker count is capped at height.
func PartitionRows(height, workers int) []RowRange {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	base := height / workers
	remainder := height % workers

	ranges := make([]RowRange, 0, workers)
	start := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < remainder {
			size++
		}
		ranges = append(ranges, RowRange{Start: start, End: start + size})
		start += size
	}
	return ranges
}
