// Package bitsync locates a known short synchronization pattern (a
// "syncseq") embedded periodically inside a noisy binary bit stream, and
// reports the bit-offset and repetition period at which it occurs.
//
// The engine tolerates stochastic single-bit-inversion noise that may
// corrupt a significant fraction of each syncseq occurrence. Given a bit
// stream of N bits and a syncseq of M bits (M <= 32, M << N), Calculate
// computes a normalized similarity score for every bit position and
// aggregates those scores across candidate (offset, period) pairs using
// one of three interchangeable strategies, returning a ranked candidate
// list.
//
// # Strategies
//
// Three aggregation strategies are selectable via types.ImplToken:
//   - ImplMaxWeightedSumOfCorrMean: max weighted sum of correlation means
//   - ImplMinSumOfCorrMeanDeviat: min sum of correlation mean deviations
//   - ImplMaxWeightedAutocorrOfCorrValues: max weighted autocorrelation
//     of the correlation array
//
// # Scope
//
// This package does not recover message content, does not detect an
// inverted syncseq, does not perform frequency-domain analysis, and makes
// no guarantees when noise exceeds roughly two-thirds of the syncseq
// length per occurrence. Noise injection, syncseq insertion, CLI
// dispatch, and bit-granular buffer manipulation live outside this
// package, in the caller.
package bitsync
