// errors.go defines public error types for the bitsync package.
//
// These cover only contract violations (spec error kind 3): programming
// errors the engine refuses to compute from rather than silently
// misbehave on. Input inconsistency and resource exhaustion are not
// errors - they are reported through OutParams flags alongside a valid,
// possibly partial or empty, result. See OutParams.InputInconsistency
// and OutParams.AccumCorrMeanQuit.

package bitsync

import "errors"

// Public error types for Calculate's precondition checks.
var (
	// ErrInvalidSyncseqSize indicates a syncseq bit length outside [1, 32].
	ErrInvalidSyncseqSize = errors.New("bitsync: invalid syncseq bit size (must be 1-32)")

	// ErrStreamTooShort indicates the stream bit size does not strictly
	// exceed the syncseq bit size.
	ErrStreamTooShort = errors.New("bitsync: stream bit size must exceed syncseq bit size")

	// ErrBufferTooSmall indicates the stream byte buffer is smaller than
	// the minimum needed to hold the declared bit length plus the padded
	// tail required for unaligned 64-bit window reads.
	ErrBufferTooSmall = errors.New("bitsync: stream buffer too small for the declared bit length")
)
