package onset

import "math"

// rawPeak is a peak-picker hit before any post-filtering, carrying enough
// state to build an AudioOnset once the carrying frame is known.
type rawPeak struct {
	frameIndex           int
	descriptor           float64
	thresholdAtDetection float64
	descriptorNormalized float64
}

// pickPeaks runs the centered adaptive-threshold local-maximum detector
// over the full descriptor array. A flat descriptor (dMax <= dMin) yields
// no peaks, which is the documented non-error silence/steady-state case.
func pickPeaks(descriptor []float64, halfWindow int, sensitivity float64, refractoryFrames int) []rawPeak {
	f := len(descriptor)
	if f < 3 {
		return nil
	}

	dMin, dMax := descriptor[0], descriptor[0]
	for _, d := range descriptor {
		if !isFinite(d) {
			continue
		}
		if d < dMin {
			dMin = d
		}
		if d > dMax {
			dMax = d
		}
	}
	if dMax <= dMin {
		return nil
	}

	var peaks []rawPeak
	lastOnsetFrame := math.Inf(-1)

	for i := 1; i < f-1; i++ {
		lo := max(0, i-halfWindow)
		hi := min(f, i+halfWindow+1)

		windowSum := 0.0
		for k := lo; k < hi; k++ {
			windowSum += descriptor[k]
		}
		windowCount := max((hi-lo)-1, 1)
		localMean := (windowSum - descriptor[i]) / float64(windowCount)
		threshold := localMean * sensitivity

		cur, prev, next := descriptor[i], descriptor[i-1], descriptor[i+1]
		if !isFinite(cur) || !isFinite(prev) || !isFinite(next) || !isFinite(threshold) {
			continue
		}

		if cur > threshold && cur > prev && cur > next && (float64(i)-lastOnsetFrame) > float64(refractoryFrames) {
			lastOnsetFrame = float64(i)
			peaks = append(peaks, rawPeak{
				frameIndex:           i,
				descriptor:           cur,
				thresholdAtDetection: threshold,
				descriptorNormalized: (cur - dMin) / (dMax - dMin),
			})
		}
	}

	return peaks
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
