package onset

// noveltyTracker carries prev_log_mag across frames and turns each frame's
// log-magnitude spectrum into a scalar spectral-flux descriptor.
type noveltyTracker struct {
	bins    int
	hfRamp  []float64
	prevMag []float64
}

func newNoveltyTracker(bins int) *noveltyTracker {
	hf := make([]float64, bins)
	for k := 0; k < bins; k++ {
		hf[k] = float64(k) / float64(bins)
	}
	return &noveltyTracker{
		bins:    bins,
		hfRamp:  hf,
		prevMag: make([]float64, bins),
	}
}

// step consumes one frame's log-magnitude spectrum, in frame order, and
// returns its novelty descriptor. It mutates prevMag for the next call.
func (nt *noveltyTracker) step(logMag []float64) float64 {
	var descriptor float64
	for k := 0; k < nt.bins; k++ {
		d := logMag[k] - nt.prevMag[k]
		if d < 0 {
			d = 0
		}
		descriptor += d * nt.hfRamp[k]
	}
	copy(nt.prevMag, logMag)
	return descriptor
}

// descriptors runs step over every frame's log-magnitude spectrum, in
// order, producing the descriptor array the peak picker operates on.
func (nt *noveltyTracker) descriptors(logMags [][]float64) []float64 {
	out := make([]float64, len(logMags))
	for i, lm := range logMags {
		out[i] = nt.step(lm)
	}
	return out
}
