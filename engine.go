package bitsync

import "time"

// Calculate runs the full correlation-and-aggregation pipeline: it scores
// syncseq against every m-bit window of stream, then ranks (offset,
// period) candidates using the strategy named by in.Impl. It never reads
// or writes any byte of stream beyond NewBitStream's declared bit length
// and padded tail.
func Calculate(stream *BitStream, syncseq uint32, in InParams) (Result, OutParams, error) {
	var out OutParams

	m := in.SyncseqBitSize
	if m < 1 || m > 32 {
		return Result{}, out, ErrInvalidSyncseqSize
	}
	n := stream.Len()
	if n <= uint64(m) {
		return Result{}, out, ErrStreamTooShort
	}

	phases := newPhaseClock()

	minPeriod, maxPeriod, minRepeat, maxRepeat, inconsistent := effectiveBounds(in, n, m)
	out.MinPeriod = uint32(minPeriod)
	out.MaxPeriod = uint32(maxPeriod)
	phases.mark("bounds")

	if inconsistent {
		out.InputInconsistency = true
		out.PhaseTimings = phases.finish()
		return Result{Impl: in.Impl}, out, nil
	}

	syncseq &= uint32(uint64(1)<<m - 1)

	c, minC, maxC, numCalc := correlate(stream, syncseq, m, in.Multiply, in.CorrMin, in.UseLinearCorr)
	out.MinCorrValue = minC
	out.MaxCorrValue = maxC
	out.NumCorrValuesCalc = numCalc
	phases.mark("correlate")

	res := Result{Impl: in.Impl}

	switch in.Impl {
	case ImplMaxWeightedSumOfCorrMean:
		out.AccumCorrMeanCalc = true
		res.MeanCandidates = aggregateMean(c, in, n, minPeriod, maxPeriod, minRepeat, maxRepeat, &out)
	case ImplMinSumOfCorrMeanDeviat:
		out.AccumCorrMeanCalc = true
		res.DeviatCandidates = aggregateDeviat(c, in, n, minPeriod, maxPeriod, minRepeat, maxRepeat, &out)
	case ImplMaxWeightedAutocorrOfCorrValues:
		res.AutocorrCandidates = aggregateAutocorr(c, in, n, minPeriod, maxPeriod, minRepeat, maxRepeat, &out)
	}
	phases.mark("aggregate")

	out.PhaseTimings = phases.finish()
	return res, out, nil
}

// phaseClock times named phases against a monotonic clock, per spec's
// phase-timing diagnostics. time.Since is always monotonic in Go, but a
// negative duration is still clamped to zero defensively - the source
// guards against this on platforms where the underlying clock can appear
// to step backward.
type phaseClock struct {
	last   time.Time
	start  time.Time
	phases []PhaseTiming
}

func newPhaseClock() *phaseClock {
	now := time.Now()
	return &phaseClock{last: now, start: now}
}

func (p *phaseClock) mark(name string) {
	now := time.Now()
	d := now.Sub(p.last)
	if d < 0 {
		d = 0
	}
	p.phases = append(p.phases, PhaseTiming{Name: name, Duration: d})
	p.last = now
}

func (p *phaseClock) finish() []PhaseTiming {
	total := time.Duration(0)
	for _, ph := range p.phases {
		total += ph.Duration
	}
	if total <= 0 {
		for i := range p.phases {
			p.phases[i].Fraction = 0
		}
		return p.phases
	}
	for i := range p.phases {
		p.phases[i].Fraction = float32(p.phases[i].Duration) / float32(total)
	}
	return p.phases
}
