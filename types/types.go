// Package types defines shared types used across bitsync packages.
// This package exists to break import cycles between packages.
package types

// ImplToken selects one of the three interchangeable aggregation
// strategies the correlation engine supports.
type ImplToken uint8

const (
	// ImplMaxWeightedSumOfCorrMean ranks (offset, period) candidates by a
	// weighted sum of correlation means rolled up across period multiples.
	ImplMaxWeightedSumOfCorrMean ImplToken = iota
	// ImplMinSumOfCorrMeanDeviat ranks candidates by the minimum sum of
	// deviations of each correlation value from its offset/period mean.
	ImplMinSumOfCorrMeanDeviat
	// ImplMaxWeightedAutocorrOfCorrValues ranks candidates by the shifted
	// self-correlation (autocorrelation) of the correlation array itself.
	ImplMaxWeightedAutocorrOfCorrValues
)

// String returns the canonical lowercase spelling of the impl token.
func (t ImplToken) String() string {
	switch t {
	case ImplMaxWeightedSumOfCorrMean:
		return "max_weighted_sum_of_corr_mean"
	case ImplMinSumOfCorrMeanDeviat:
		return "min_sum_of_corr_mean_deviat"
	case ImplMaxWeightedAutocorrOfCorrValues:
		return "max_weighted_autocorr_of_corr_values"
	default:
		return "unknown"
	}
}

// MultiplyMode selects the dispersion multiplier's bit-comparison map.
type MultiplyMode uint8

const (
	// MultiplyInvXorPrime rewards matched bits with a weighted sum of the
	// prime table entries at the positions where a XOR b is zero.
	MultiplyInvXorPrime MultiplyMode = iota
	// MultiplyDispersedPrime widens the dispersion between near-matches by
	// multiplying per-bit prime-or-fallback values from both operands.
	MultiplyDispersedPrime
)

// String returns the canonical lowercase spelling of the multiply mode.
func (m MultiplyMode) String() string {
	switch m {
	case MultiplyInvXorPrime:
		return "inv_xor_prime"
	case MultiplyDispersedPrime:
		return "dispersed_prime"
	default:
		return "unknown"
	}
}
