package util

import "sort"

// InsertSorted inserts v into s, which must already be sorted according to
// less, and returns the resulting slice truncated to at most maxSize
// elements. It backs the aggregator's bounded per-period top list
// (MaxCorrValuesPerPeriod): every offset candidate for a period is
// inserted in sorted order and the list is capped so memory stays
// proportional to the configured limit rather than to the period's
// offset count.
func InsertSorted[T any](s []T, v T, less func(a, b T) bool, maxSize int) []T {
	i := sort.Search(len(s), func(i int) bool { return less(v, s[i]) })
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v

	if maxSize >= 0 && len(s) > maxSize {
		s = s[:maxSize]
	}
	return s
}
