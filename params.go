package bitsync

import (
	"math"
	"time"

	"github.com/thesyncim/bitsync/types"
)

// NoLimit is the sentinel meaning "no limit" for InParams.MaxPeriod and
// InParams.MaxPeriodsInOffset.
const NoLimit = math.MaxUint32

// InParams snapshots the caller's scoring and aggregation configuration
// for a single Calculate call. It is read-only for the duration of the
// call.
type InParams struct {
	Impl     types.ImplToken
	Multiply types.MultiplyMode

	// StreamBitSize is N, the bit stream's logical length. Calculate does
	// not read it; it takes N from the BitStream's Len.
	StreamBitSize uint64
	// SyncseqBitSize is M, 1 <= M <= 32, M < StreamBitSize.
	SyncseqBitSize uint32

	// CorrMin is the noise-floor cutoff applied to each c(i); values
	// below it are zeroed. Must be in [0, 1].
	CorrMin float32
	// CorrMeanMin is the minimum accepted correlation mean for impl A/B.
	CorrMeanMin float32

	// MinPeriod/MaxPeriod bound the period search. Zero MinPeriod and
	// NoLimit MaxPeriod request the engine's defaults (2M and 2N
	// respectively, both further clamped to N-1).
	MinPeriod uint32
	MaxPeriod uint32

	// MinRepeat/MaxRepeat bound the number of repeats accumulated past
	// the first occurrence. MinRepeat 0 is normalized to 1.
	MinRepeat uint32
	MaxRepeat uint32

	// MaxPeriodsInOffset bounds how many periods may fit after an offset
	// before that offset is skipped for the current period. NoLimit
	// means unbounded; 0 means one full period excluding the first bit
	// of the second; 1 means one period including that bit; k>1 means k
	// periods including the first bit of the (k+1)-th.
	MaxPeriodsInOffset uint32

	// MaxCorrValuesPerPeriod bounds the size of the per-period top list
	// kept by impl A/B before the global roll-up.
	MaxCorrValuesPerPeriod uint32
	// MaxCorrMeanBytes bounds accumulated candidate memory; breaching it
	// triggers OutParams.AccumCorrMeanQuit.
	MaxCorrMeanBytes uint64

	// UseLinearCorr takes the square root of each ratio in the
	// correlator, returning to a linear rather than quadratic value.
	UseLinearCorr bool
	// SkipCalcOnFilteredCorrValueUse aborts an (offset, period) candidate
	// as soon as a zeroed (filtered) c-value is encountered along it.
	SkipCalcOnFilteredCorrValueUse bool
	// SkipWeightedSumPostPass returns impl A's raw per-period top lists
	// without running the weighted-sum roll-up post-pass (supplemental
	// debug option, ported from the original's
	// skip_max_weighted_sum_of_corr_mean_calc).
	SkipWeightedSumPostPass bool
	// SortAtFirstByMaxCorrMean changes impl B's per-period top-list
	// ordering from ascending deviation to descending mean, which may
	// cause the truncation by MaxCorrValuesPerPeriod to drop low-
	// deviation candidates - a documented trade-off, not a bug.
	SortAtFirstByMaxCorrMean bool
	// ReturnSorted requests the full ranked candidate list; false
	// requests only the single best candidate under the impl's
	// documented tie-break.
	ReturnSorted bool
}

// PhaseTiming records one named phase's wall-clock share of a Calculate
// call.
type PhaseTiming struct {
	Name     string
	Duration time.Duration
	Fraction float32 // [0, 1], this phase's share of the summed duration of all recorded phases
}

// OutParams reports diagnostics and derived bounds from a Calculate call.
type OutParams struct {
	PhaseTimings []PhaseTiming

	MinCorrValue float32
	MaxCorrValue float32

	MinCorrMean float32
	MaxCorrMean float32

	MinCorrMeanDeviat float32
	MaxCorrMeanDeviat float32

	// MinPeriod/MaxPeriod are the effective (derived) period bounds
	// actually used for the sweep.
	MinPeriod uint32
	MaxPeriod uint32

	NumCorrValuesCalc      uint64
	NumCorrValuesIterated  uint64
	NumCorrMeansCalc       uint64
	NumCorrMeansIterated   uint64
	UsedCorrMeanBytes      uint64
	AccumCorrMeanBytes     uint64

	// InputInconsistency is set when the caller's search bounds
	// contradict the derived effective bounds; all result collections
	// are empty. When the derived-bounds check sets it, no further
	// phases ran; when impl C's shrunk-window recheck sets it, the
	// aggregation phase returns no candidates.
	InputInconsistency bool
	// AccumCorrMeanCalc indicates phases 2/3 (mean/deviation
	// calculation) ran at all (impl A/B only).
	AccumCorrMeanCalc bool
	// AccumCorrMeanQuit indicates the sweep stopped early because
	// accumulated candidate memory reached MaxCorrMeanBytes.
	AccumCorrMeanQuit bool
}

// MeanCandidate is an impl-A (max-weighted-sum-of-corr-mean) result
// entry.
type MeanCandidate struct {
	Offset      uint32
	Period      uint32
	NumCorr     uint32
	CorrMean    float32
	CorrMeanSum float32
}

// DeviationCandidate is an impl-B (min-sum-of-corr-mean-deviation)
// result entry.
type DeviationCandidate struct {
	Offset            uint32
	Period            uint32
	NumCorr           uint32
	CorrMean          float32
	CorrMeanDeviatSum float32
}

// AutocorrCandidate is an impl-C (max-weighted-autocorrelation) result
// entry. Offset is always 0: this strategy only discriminates period.
type AutocorrCandidate struct {
	Offset    uint32
	Period    uint32
	NumCorr   uint32
	CorrValue float32
}

// Result holds whichever one of the three candidate collections the
// configured impl populated.
type Result struct {
	Impl               types.ImplToken
	MeanCandidates     []MeanCandidate
	DeviatCandidates   []DeviationCandidate
	AutocorrCandidates []AutocorrCandidate
}

// effectiveBounds derives the period/repeat bounds the aggregator sweeps
// over, mirroring the source's precedence: minimum repeat count, then
// caller bounds, then the (2M, 2N) defaults, all clamped to N-1.
func effectiveBounds(in InParams, n uint64, m uint32) (minPeriod, maxPeriod uint64, minRepeat, maxRepeat uint32, inconsistent bool) {
	minRepeat = in.MinRepeat
	if minRepeat == 0 {
		minRepeat = 1
	}
	maxRepeat = in.MaxRepeat
	if maxRepeat < minRepeat {
		maxRepeat = minRepeat
	}

	var defaultMin uint64
	if in.MinPeriod != 0 {
		defaultMin = uint64(in.MinPeriod)
		if defaultMin < uint64(m)+1 {
			defaultMin = uint64(m) + 1
		}
	} else {
		defaultMin = uint64(m) * 2
	}
	minPeriod = defaultMin
	if minPeriod > n-1 {
		minPeriod = n - 1
	}

	var defaultMax uint64
	if in.MaxPeriod != NoLimit {
		defaultMax = uint64(in.MaxPeriod)
		if defaultMax < uint64(m)+1 {
			defaultMax = uint64(m) + 1
		}
	} else {
		defaultMax = n * 2
	}
	maxPeriod = defaultMax
	if maxPeriod > n-1 {
		maxPeriod = n - 1
	}

	if maxPeriod < minPeriod {
		maxPeriod = minPeriod
	}

	repeatDiv := uint64(minRepeat)
	if repeatDiv == 0 {
		repeatDiv = 1
	}
	maxForMinRepeat := (n - 1) / repeatDiv

	if minPeriod > maxForMinRepeat {
		minPeriod = maxForMinRepeat
	}
	if maxPeriod > maxForMinRepeat {
		maxPeriod = maxForMinRepeat
	}

	if in.MinPeriod != 0 && in.MinPeriod != NoLimit && uint64(in.MinPeriod) < minPeriod {
		inconsistent = true
	}
	if in.MaxPeriod != NoLimit && maxPeriod < uint64(in.MaxPeriod) {
		inconsistent = true
	}
	if in.MinRepeat != 0 && maxPeriod*uint64(in.MinRepeat) >= n {
		inconsistent = true
	}
	if uint64(m) >= minPeriod {
		inconsistent = true
	}

	return
}
