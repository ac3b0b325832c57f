package bitsync

import (
	"math"

	"github.com/thesyncim/bitsync/util"
)

// meanOffsetAgg is the per-offset accumulator walked along
// i, i+period, i+2*period, ... while sweeping a single period.
type meanOffsetAgg struct {
	corrMean float32 // running sum, then mean once num_corr qualifies
	numCorr  uint32
	offset   uint64
}

// candidateRecordBytes approximates sizeof(SyncseqCorrMean) from the
// source for MaxCorrMeanBytes accounting: two float32 fields and three
// uint32 fields, word-aligned.
const candidateRecordBytes = 24

// aggregateMean implements impl_max_weighted_sum_of_corr_mean (spec
// §4.3.A): per-period bounded top lists of offset/mean pairs, flushed
// into a global set and then rolled up by the weighted-sum post-pass.
func aggregateMean(c []float32, in InParams, n uint64, minPeriod, maxPeriod uint64, minRepeat, maxRepeat uint32, out *OutParams) []MeanCandidate {
	var all []MeanCandidate

	var numValuesIter, numMeansCalc, numMeansIter uint64
	minMean := float32(math.MaxFloat32)
	maxMean := float32(0)
	var usedBytes, accumBytes uint64

	maxPerPeriod := int(in.MaxCorrValuesPerPeriod)
	top := make([]meanOffsetAgg, 0, maxPerPeriod+1)

	less := func(a, b meanOffsetAgg) bool { return a.corrMean > b.corrMean }

	for period := maxPeriod; period >= minPeriod; period-- {
		top = top[:0]

	offsetLoop:
		for i := uint64(0); i < n-1; i++ {
			if in.MaxPeriodsInOffset != NoLimit {
				if in.MaxPeriodsInOffset != 0 {
					if i/period >= uint64(in.MaxPeriodsInOffset) && i%period != 0 {
						break
					}
				} else if i/period >= 1 {
					break
				}
			}

			if uint64(minRepeat) >= (n-i+period-1)/period {
				break
			}

			first := c[i]
			if in.SkipCalcOnFilteredCorrValueUse && first == 0 {
				continue
			}

			agg := meanOffsetAgg{corrMean: first, offset: i}
			if first != 0 {
				agg.numCorr = 1
			}
			numValuesIter++

			repeat := uint32(0)
			for j := i + period; j < n && repeat < maxRepeat; j += period {
				next := c[j]
				if in.SkipCalcOnFilteredCorrValueUse && next == 0 {
					continue offsetLoop
				}
				if next != 0 {
					agg.corrMean += next
					agg.numCorr++
				}
				numValuesIter++
				repeat++
			}

			if agg.numCorr >= 1+minRepeat {
				agg.corrMean /= float32(agg.numCorr)

				if agg.corrMean >= in.CorrMeanMin {
					top = util.InsertSorted(top, agg, less, maxPerPeriod)
					numMeansCalc++
				}
			}

			numMeansIter++

			if agg.corrMean != 0 && agg.numCorr != 0 {
				if agg.corrMean < minMean {
					minMean = agg.corrMean
				}
				if agg.corrMean > maxMean {
					maxMean = agg.corrMean
				}
			}
		}

		for _, a := range top {
			all = append(all, MeanCandidate{
				Offset:   uint32(a.offset),
				Period:   uint32(period),
				NumCorr:  a.numCorr,
				CorrMean: a.corrMean,
			})
		}

		used := uint64(len(all)) * candidateRecordBytes
		if used > usedBytes {
			usedBytes = used
		}
		if used > accumBytes {
			accumBytes = used
		}
		if accumBytes >= in.MaxCorrMeanBytes {
			out.AccumCorrMeanQuit = true
			break
		}

		if period == 0 { // guard against uint64 underflow on the final decrement
			break
		}
	}

	out.MinCorrMean = minMean
	out.MaxCorrMean = maxMean
	out.NumCorrValuesIterated = numValuesIter
	out.NumCorrMeansCalc = numMeansCalc
	out.NumCorrMeansIterated = numMeansIter
	out.UsedCorrMeanBytes = usedBytes
	out.AccumCorrMeanBytes = accumBytes

	if len(all) == 0 {
		return all
	}

	if !in.SkipWeightedSumPostPass {
		weightedSumPostPass(all)
	} else {
		for i := range all {
			all[i].CorrMeanSum = all[i].CorrMean
		}
	}

	if in.ReturnSorted {
		sortMeanCandidates(all)
		return all
	}

	return []MeanCandidate{bestMeanCandidate(all)}
}

// weightedSumPostPass runs the three-phase roll-up described in spec
// §4.3.A: sort by offset then (within an offset run) by period
// descending; forward pass accumulates corr_mean_sum for offsets sharing
// a period multiple; reverse pass propagates the minimal period's sum
// back across the run. firstRit is re-anchored to each offset run's
// minimal-period entry at every offset boundary, and every entry of the
// run whose period is a multiple of that period has its own forward-pass
// sum overwritten by the minimal-period entry's sum. A regression test
// pins this (see aggregate_mean_test.go).
func weightedSumPostPass(all []MeanCandidate) {
	sortByOffsetThenPeriodDesc(all)

	// forward pass: accumulate corr_mean_sum
	firstIdx := 0
	for i := 1; i < len(all); i++ {
		prev, cur := i-1, i
		if all[prev].Offset == all[cur].Offset {
			all[prev].CorrMeanSum = all[prev].CorrMean * float32(all[prev].NumCorr-1)
		} else {
			all[prev].CorrMeanSum = all[prev].CorrMean
			for k := firstIdx; k < prev; k++ {
				if all[k].Period%all[prev].Period == 0 {
					all[prev].CorrMeanSum += all[k].CorrMeanSum / float32(all[prev].NumCorr-1)
				}
			}
			firstIdx = cur
		}
	}

	last := len(all) - 1
	all[last].CorrMeanSum = all[last].CorrMean
	for k := firstIdx; k < last; k++ {
		if all[k].Period%all[last].Period == 0 {
			all[last].CorrMeanSum += all[k].CorrMeanSum / float32(all[last].NumCorr-1)
		}
	}

	// reverse pass: propagate the minimal-period run's sum back
	firstRit := last
	for i := last - 1; i >= 0; i-- {
		prev, cur := i+1, i // "prev" in iteration order == the element closer to the end
		if all[prev].Offset == all[cur].Offset {
			if all[cur].Period%all[firstRit].Period == 0 {
				all[cur].CorrMeanSum = all[firstRit].CorrMeanSum
			} else {
				all[cur].CorrMeanSum = all[cur].CorrMean
			}
		} else {
			firstRit = cur
		}
	}
}

// sortByOffsetThenPeriodDesc sorts by Offset ascending; within each
// equal-offset run, by Period descending.
func sortByOffsetThenPeriodDesc(all []MeanCandidate) {
	sortMeanByOffsetAsc(all)

	start := 0
	for i := 1; i <= len(all); i++ {
		if i == len(all) || all[i].Offset != all[start].Offset {
			sortMeanByPeriodDesc(all[start:i])
			start = i
		}
	}
}
