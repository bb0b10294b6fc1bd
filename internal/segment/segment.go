// Package segment collapses lists of possibly overlapping or
// near-adjacent ranges into a minimal sorted, disjoint set. Endpoints
// are float64 so fractional boundaries (seconds as well as whole
// frames) merge correctly.
package segment

import "sort"

// Range is an inclusive span on a continuous timeline, Start <= End.
type Range struct {
	Start float64
	End   float64
}

// Merge returns the minimal sorted, disjoint set covering ranges,
// joining any pair whose gap is at most gap. The input slice is not
// modified and may be in any order. Ranges contained in an already
// merged span are absorbed.
func Merge(ranges []Range, gap float64) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := make([]Range, 0, len(sorted))
	merged = append(merged, sorted[0])
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start-last.End <= gap {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
