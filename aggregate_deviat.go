package bitsync

import (
	"math"

	"github.com/thesyncim/bitsync/util"
)

// deviatOffsetAgg is the per-offset accumulator for impl B: first the
// mean along i, i+period, i+2*period, ..., then a second walk of the
// same positions summing |mean - c_j|.
type deviatOffsetAgg struct {
	corrMean       float32
	corrMeanDeviat float32
	numCorr        uint32
	offset         uint64
}

// aggregateDeviat implements impl_min_sum_of_corr_mean_deviat (spec
// §4.3.B): same sweep and filters as impl A, but the per-period top list
// ranks by deviation sum (ascending) unless SortAtFirstByMaxCorrMean
// ranks by mean instead - a documented trade-off where truncation by
// MaxCorrValuesPerPeriod may then drop low-deviation candidates. There
// is no weighted-sum roll-up for this strategy: the final sort/argmin
// runs directly on the swept set.
func aggregateDeviat(c []float32, in InParams, n uint64, minPeriod, maxPeriod uint64, minRepeat, maxRepeat uint32, out *OutParams) []DeviationCandidate {
	var all []DeviationCandidate

	var numValuesIter, numMeansCalc, numMeansIter uint64
	minMean, maxMean := float32(math.MaxFloat32), float32(0)
	minDeviat, maxDeviat := float32(math.MaxFloat32), float32(0)
	var usedBytes, accumBytes uint64

	maxPerPeriod := int(in.MaxCorrValuesPerPeriod)
	top := make([]deviatOffsetAgg, 0, maxPerPeriod+1)

	var less func(a, b deviatOffsetAgg) bool
	if in.SortAtFirstByMaxCorrMean {
		less = func(a, b deviatOffsetAgg) bool { return a.corrMean > b.corrMean }
	} else {
		less = func(a, b deviatOffsetAgg) bool { return a.corrMeanDeviat < b.corrMeanDeviat }
	}

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

			agg := deviatOffsetAgg{corrMean: first, offset: i}
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
					if first != 0 {
						d := util.Abs(agg.corrMean - first)
						agg.corrMeanDeviat += d
						if d < minDeviat {
							minDeviat = d
						}
						if d > maxDeviat {
							maxDeviat = d
						}
					}

					repeat = 0
					for j := i + period; j < n && repeat < maxRepeat; j += period {
						next := c[j]
						if next != 0 {
							d := util.Abs(agg.corrMean - next)
							agg.corrMeanDeviat += d
							if d < minDeviat {
								minDeviat = d
							}
							if d > maxDeviat {
								maxDeviat = d
							}
						}
						repeat++
					}

					agg.corrMeanDeviat /= float32(agg.numCorr)

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
			all = append(all, DeviationCandidate{
				Offset:            uint32(a.offset),
				Period:            uint32(period),
				NumCorr:           a.numCorr,
				CorrMean:          a.corrMean,
				CorrMeanDeviatSum: a.corrMeanDeviat,
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

		if period == 0 {
			break
		}
	}

	out.MinCorrMean = minMean
	out.MaxCorrMean = maxMean
	out.MinCorrMeanDeviat = minDeviat
	out.MaxCorrMeanDeviat = maxDeviat
	out.NumCorrValuesIterated = numValuesIter
	out.NumCorrMeansCalc = numMeansCalc
	out.NumCorrMeansIterated = numMeansIter
	out.UsedCorrMeanBytes = usedBytes
	out.AccumCorrMeanBytes = accumBytes

	if len(all) == 0 {
		return all
	}

	if in.ReturnSorted {
		sortDeviationCandidates(all)
		return all
	}

	return []DeviationCandidate{bestDeviationCandidate(all)}
}
