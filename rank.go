package bitsync

import "sort"

// sortMeanByOffsetAsc sorts by Offset ascending only (stable, since
// ties are broken by a subsequent targeted sort of each offset run).
func sortMeanByOffsetAsc(s []MeanCandidate) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Offset < s[j].Offset })
}

// sortMeanByPeriodDesc sorts a (sub)slice by Period descending.
func sortMeanByPeriodDesc(s []MeanCandidate) {
	sort.Slice(s, func(i, j int) bool { return s[i].Period > s[j].Period })
}

// sortMeanCandidates orders by (CorrMeanSum desc, Offset asc, Period asc).
func sortMeanCandidates(s []MeanCandidate) {
	sort.Slice(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if a.CorrMeanSum != b.CorrMeanSum {
			return a.CorrMeanSum > b.CorrMeanSum
		}
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		return a.Period < b.Period
	})
}

// bestMeanCandidate reproduces the source's std::max_element-over-an-
// inverted-predicate single-result extraction: prefer higher sum; on
// tie, lower offset; on tie, lower period. Returns the first element of
// s if there are no further ties to break (s must be non-empty).
func bestMeanCandidate(s []MeanCandidate) MeanCandidate {
	best := s[0]
	for _, cur := range s[1:] {
		if best.CorrMeanSum < cur.CorrMeanSum ||
			(best.CorrMeanSum == cur.CorrMeanSum && (best.Offset > cur.Offset ||
				(best.Offset == cur.Offset && best.Period > cur.Period))) {
			best = cur
		}
	}
	return best
}

// sortDeviationCandidates orders by (CorrMeanDeviatSum asc, Offset asc, Period asc).
func sortDeviationCandidates(s []DeviationCandidate) {
	sort.Slice(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if a.CorrMeanDeviatSum != b.CorrMeanDeviatSum {
			return a.CorrMeanDeviatSum < b.CorrMeanDeviatSum
		}
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		return a.Period < b.Period
	})
}

// bestDeviationCandidate mirrors the source's argmin-via-max_element
// trick: prefer lower deviation sum; on tie, lower offset; on tie, lower
// period. This is the semantically intended tie-break documented in the
// spec (the source's literal comparator reads as "higher deviation
// wins" but resolves, by construction, to the argmin).
func bestDeviationCandidate(s []DeviationCandidate) DeviationCandidate {
	best := s[0]
	for _, cur := range s[1:] {
		if best.CorrMeanDeviatSum > cur.CorrMeanDeviatSum ||
			(best.CorrMeanDeviatSum == cur.CorrMeanDeviatSum && (best.Offset > cur.Offset ||
				(best.Offset == cur.Offset && best.Period > cur.Period))) {
			best = cur
		}
	}
	return best
}

// sortAutocorrCandidates orders by (CorrValue desc, Offset asc, Period asc).
func sortAutocorrCandidates(s []AutocorrCandidate) {
	sort.Slice(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if a.CorrValue != b.CorrValue {
			return a.CorrValue > b.CorrValue
		}
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		return a.Period < b.Period
	})
}

// bestAutocorrCandidate prefers higher correlation; on tie, lower offset;
// on tie, lower period.
func bestAutocorrCandidate(s []AutocorrCandidate) AutocorrCandidate {
	best := s[0]
	for _, cur := range s[1:] {
		if best.CorrValue < cur.CorrValue ||
			(best.CorrValue == cur.CorrValue && (best.Offset > cur.Offset ||
				(best.Offset == cur.Offset && best.Period > cur.Period))) {
			best = cur
		}
	}
	return best
}
