package bitsync

import "math"

// correlate computes the per-position correlation array c[0..N) between
// syncseq (masked to m bits) and every m-bit window of stream. For each
// position the ratio num/den is taken where den = max of the dispersion
// multiplier applied to each operand against itself (Cauchy-Schwarz style
// normalization: fa*fb <= max(fa*fa, fb*fb) for strictly positive f, g),
// guaranteeing the ratio lands in (0, 1]. Positions below corrMin are
// zeroed. minC/maxC reflect the un-zeroed ratio, matching the source's
// observation of min/max before the noise-floor cutoff is applied.
func correlate(stream *BitStream, syncseq uint32, m uint32, mode MultiplyMode, corrMin float32, useLinear bool) (c []float32, minC, maxC float32, numCalc uint64) {
	n := stream.Len()
	c = make([]float32, n)

	selfSyncseq := multiply(mode, syncseq, syncseq, m)

	minC = math.MaxFloat32
	maxC = 0

	for i := uint64(0); i < n; i++ {
		window := stream.Window(i, m)
		selfWindow := multiply(mode, window, window, m)

		den := selfSyncseq
		if selfWindow > den {
			den = selfWindow
		}

		cv := multiply(mode, syncseq, window, m) / den
		if useLinear {
			cv = float32(math.Sqrt(float64(cv)))
		}

		if cv < minC {
			minC = cv
		}
		if cv > maxC {
			maxC = cv
		}

		if cv >= corrMin {
			c[i] = cv
			numCalc++
		}
	}

	return c, minC, maxC, numCalc
}
