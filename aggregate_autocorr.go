package bitsync

// aggregateAutocorr implements impl_max_weighted_autocorr_of_corr_values
// (spec §4.3.C): for each candidate shift s in [minShift, maxShift], score
// the autocorrelation of c against itself shifted by s. Offset is always
// 0 for this strategy - only the period axis is discriminated.
//
// Unlike the per-position correlator, every shift here is normalized by
// the SAME constant (totalNumShifts), not by a per-shift-varying factor:
// the source computes totalNumShifts once, then shrinks the numerator
// and denominator window by exactly 1 element per shift as the shift
// grows from minShift to maxShift. Using a per-shift-varying normalizer
// instead would bias ranking away from large periods relative to the
// source.
//
//	numerator(s)  = sum_{j=0}^{L(s)-1} c[j]*c[j+s], counting only
//	                nonzero terms into num_corr
//	L(s)          = numOffsetShiftsInitial - (s - minShift), the window
//	                shrinks by one element per shift
//	denom(s)      = max(prefix sum of c[0:L(s))^2, suffix sum of the
//	                last L(s) elements of c[0:numOffsetShiftsInitial)^2)
//	score(s)      = numerator(s) * totalNumShifts / denom(s)
//
// Both halves of denom(s) are drawn from the fixed head window
// c[0:numOffsetShiftsInitial) - the same window the source bounds its
// square-value table to - and are maintained via prefix/suffix
// accumulators for O(1) amortized lookup per shift.
func aggregateAutocorr(c []float32, in InParams, n uint64, minPeriod, maxPeriod uint64, minRepeat, maxRepeat uint32, out *OutParams) []AutocorrCandidate {
	if n < 2 {
		return nil
	}

	minShift := minPeriod
	if minShift > n-1 {
		minShift = n - 1
	}
	maxShift := n - 1
	if maxRepeat != NoLimit {
		shiftCap := maxPeriod * uint64(maxRepeat)
		if shiftCap < maxShift {
			maxShift = shiftCap
		}
	}

	numShiftsInitial := maxShift + 1
	if minShift+1 > numShiftsInitial {
		numShiftsInitial = minShift + 1
	}

	// Autocorrelation shrinks the effective window; recheck the caller's
	// raw bounds against the shrunk window, exactly as the source does
	// (using the raw InParams fields, not the already-derived effective
	// bounds this function was called with).
	if n < minPeriod+numShiftsInitial {
		numShiftsInitial = n - minPeriod

		rawMinPeriod, rawMaxPeriod, rawMinRepeat := uint64(in.MinPeriod), uint64(in.MaxPeriod), uint64(in.MinRepeat)

		if rawMinRepeat != 0 {
			if (rawMaxPeriod != uint64(NoLimit) && rawMaxPeriod*rawMinRepeat >= numShiftsInitial) ||
				(rawMinPeriod != 0 && rawMinPeriod != uint64(NoLimit) && rawMinPeriod*rawMinRepeat >= numShiftsInitial) {
				out.InputInconsistency = true
			}
		} else {
			if (rawMaxPeriod != uint64(NoLimit) && rawMaxPeriod >= numShiftsInitial) ||
				(rawMinPeriod != 0 && rawMinPeriod != uint64(NoLimit) && rawMinPeriod >= numShiftsInitial) {
				out.InputInconsistency = true
			}
		}
	}

	if out.InputInconsistency {
		return nil
	}

	totalNumShifts := minShift + numShiftsInitial

	headLen := numShiftsInitial
	if headLen > n {
		headLen = n
	}

	// prefixSq[L] = sum of c[0:L)^2 within the fixed head window.
	prefixSq := make([]float64, headLen+1)
	for i := uint64(0); i < headLen; i++ {
		v := float64(c[i])
		prefixSq[i+1] = prefixSq[i] + v*v
	}

	var all []AutocorrCandidate
	var numIter uint64

	windowLen := numShiftsInitial
	for shift := minPeriod; shift <= maxShift && windowLen >= minShift; shift++ {
		if shift+windowLen > n {
			break
		}

		var num float64
		var numCorr uint32
		for j := uint64(0); j < windowLen; j++ {
			v := float64(c[j]) * float64(c[j+shift])
			if v != 0 {
				num += v
				numCorr++
			}
			numIter++
		}

		prefix := prefixSq[windowLen]
		suffix := prefixSq[headLen] - prefixSq[headLen-windowLen]

		denom := prefix
		if suffix > denom {
			denom = suffix
		}

		if denom != 0 {
			score := num * float64(totalNumShifts) / denom
			all = append(all, AutocorrCandidate{
				Offset:    0,
				Period:    uint32(shift),
				NumCorr:   numCorr,
				CorrValue: float32(score),
			})
		}

		if windowLen == 0 {
			break
		}
		windowLen--
	}

	out.NumCorrValuesIterated = numIter

	if len(all) == 0 {
		return all
	}

	if in.ReturnSorted {
		sortAutocorrCandidates(all)
		return all
	}

	return []AutocorrCandidate{bestAutocorrCandidate(all)}
}
