package bitsync

import "github.com/thesyncim/bitsync/types"

// ImplToken and MultiplyMode are re-exported from the types package so
// callers need not import it directly, mirroring how gopus re-exports
// types.Signal and types.Bandwidth.
type (
	ImplToken    = types.ImplToken
	MultiplyMode = types.MultiplyMode
)

const (
	ImplMaxWeightedSumOfCorrMean        = types.ImplMaxWeightedSumOfCorrMean
	ImplMinSumOfCorrMeanDeviat          = types.ImplMinSumOfCorrMeanDeviat
	ImplMaxWeightedAutocorrOfCorrValues = types.ImplMaxWeightedAutocorrOfCorrValues

	MultiplyInvXorPrime    = types.MultiplyInvXorPrime
	MultiplyDispersedPrime = types.MultiplyDispersedPrime
)
