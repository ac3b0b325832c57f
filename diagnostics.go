package bitsync

// StatEntry pairs a stream offset with the correlation value observed
// there, used throughout FalsePositiveStats's bounded top-K windows.
type StatEntry struct {
	Offset uint64
	Value  float32
}

// FalsePositiveStats is the Diagnostics collaborator's output (spec
// §4.4): c's values sorted against a ground-truth offset set into four
// bounded buckets built from top-K/bottom-K windows, not from a
// local-maximum scan. The buckets are not disjoint: a false position can
// appear in both FalseMaxima and FalsePositivesAtTruePositions, and a
// true position can appear in both TrueMinima and SavedTrueValues.
type FalsePositiveStats struct {
	// FalseMaxima holds up to statArrsSize entries: the largest
	// correlation values occurring at positions outside trueOffsets -
	// the false-positive risk, sorted descending.
	FalseMaxima []StatEntry
	// TrueMinima holds up to statArrsSize entries: the smallest
	// correlation values occurring at positions inside trueOffsets -
	// the missed-detection risk, sorted ascending. The source's own
	// array keeps growing ascending and evicts its largest entry on
	// overflow, the mirror image of FalseMaxima's descending eviction.
	TrueMinima []StatEntry
	// FalsePositivesAtTruePositions holds up to statArrsSize entries:
	// the global top-K values across every position, true or false,
	// with any slot that landed on a true position zeroed out
	// afterward - the false entries that rank inside the window a
	// perfect detector would have filled with true positions alone.
	FalsePositivesAtTruePositions []StatEntry
	// SavedTrueValues holds the true-position entries evicted from the
	// global top-K window (the one backing
	// FalsePositivesAtTruePositions) as stronger entries pushed them
	// out - preserved here rather than discarded, though the source
	// does not restore them back into the window it trims to make
	// room; ported as-is.
	SavedTrueValues []StatEntry
	// TrueNum is the number of stream positions classified as true.
	TrueNum uint64
}

// FalsePositiveStatsAt computes FalsePositiveStats for c against
// trueOffsets, bounding each of the three maintained windows to
// statArrsSize entries. A zero-valued correlation entry is
// indistinguishable from an empty slot in any window, matching the
// source's own sentinel convention.
func FalsePositiveStatsAt(c []float32, trueOffsets []uint64, statArrsSize int) FalsePositiveStats {
	isTrue := make(map[uint64]bool, len(trueOffsets))
	for _, o := range trueOffsets {
		isTrue[o] = true
	}

	falseMaxVal := make([]float32, statArrsSize)
	falseMaxIdx := make([]uint64, statArrsSize)

	trueMinVal := make([]float32, statArrsSize)
	trueMinIdx := make([]uint64, statArrsSize)

	globalVal := make([]float32, statArrsSize)
	globalIdx := make([]uint64, statArrsSize)

	var saved []StatEntry
	var trueNum uint64

	for i := 0; i < len(c); i++ {
		v := c[i]
		idx := uint64(i)

		if isTrue[idx] {
			trueNum++
			boundedInsertAsc(trueMinVal, trueMinIdx, v, idx)
		} else {
			boundedInsertDesc(falseMaxVal, falseMaxIdx, v, idx)
		}

		if evictedVal, evictedIdx, evicted := boundedInsertDescEvict(globalVal, globalIdx, v, idx); evicted && evictedVal != 0 && isTrue[evictedIdx] {
			saved = append(saved, StatEntry{Offset: evictedIdx, Value: evictedVal})
		}
	}

	// drop true positions that survived inside the global top-K window -
	// what remains is the false entries ranking inside it.
	for j := range globalVal {
		if globalVal[j] != 0 && isTrue[globalIdx[j]] {
			globalVal[j] = 0
			globalIdx[j] = 0
		}
	}

	// the source clears this many trailing slots rather than backfilling
	// them with the next-ranked false entries; ported literally.
	for i, j := 0, len(globalVal)-1; i < len(saved) && j >= 0; i, j = i+1, j-1 {
		globalVal[j] = 0
		globalIdx[j] = 0
	}

	return FalsePositiveStats{
		FalseMaxima:                   toEntries(falseMaxVal, falseMaxIdx),
		TrueMinima:                    toEntries(trueMinVal, trueMinIdx),
		FalsePositivesAtTruePositions: toEntries(globalVal, globalIdx),
		SavedTrueValues:               saved,
		TrueNum:                       trueNum,
	}
}

// boundedInsertDesc inserts v at its sorted-descending position among a
// fixed-size window, shifting weaker entries right and discarding
// whatever falls off the end. A value of 0 never displaces anything (0
// is the window's "empty" sentinel).
func boundedInsertDesc(vals []float32, idx []uint64, v float32, i uint64) {
	n := len(vals)
	for j := 0; j < n; j++ {
		if vals[j] < v {
			copy(vals[j+1:], vals[j:n-1])
			copy(idx[j+1:], idx[j:n-1])
			vals[j] = v
			idx[j] = i
			return
		}
	}
}

// boundedInsertDescEvict is boundedInsertDesc but also reports the
// entry (if any) pushed off the end of the window by this insertion.
func boundedInsertDescEvict(vals []float32, idx []uint64, v float32, i uint64) (evictedVal float32, evictedIdx uint64, evicted bool) {
	n := len(vals)
	for j := 0; j < n; j++ {
		if vals[j] < v {
			if vals[n-1] != 0 {
				evictedVal, evictedIdx, evicted = vals[n-1], idx[n-1], true
			}
			copy(vals[j+1:], vals[j:n-1])
			copy(idx[j+1:], idx[j:n-1])
			vals[j] = v
			idx[j] = i
			return
		}
	}
	return 0, 0, false
}

// boundedInsertAsc inserts v at its sorted-ascending position among a
// fixed-size window, shifting larger entries right and discarding
// whatever falls off the end - the window ends up holding the
// statArrsSize smallest values seen, the mirror of boundedInsertDesc.
func boundedInsertAsc(vals []float32, idx []uint64, v float32, i uint64) {
	n := len(vals)
	for j := 0; j < n; j++ {
		if vals[j] == 0 || vals[j] > v {
			copy(vals[j+1:], vals[j:n-1])
			copy(idx[j+1:], idx[j:n-1])
			vals[j] = v
			idx[j] = i
			return
		}
	}
}

func toEntries(vals []float32, idx []uint64) []StatEntry {
	var out []StatEntry
	for j, v := range vals {
		if v == 0 {
			continue
		}
		out = append(out, StatEntry{Offset: idx[j], Value: v})
	}
	return out
}
