package onset

import "sort"

// estimateTempo computes a single BPM value from the median inter-onset
// interval of kept onset frame indices, octave-normalized into [60, 180].
func estimateTempo(frameIndices []int, fps float64) float64 {
	if len(frameIndices) <= 1 || fps <= 0 {
		return 0
	}

	intervals := make([]float64, 0, len(frameIndices)-1)
	for k := 0; k < len(frameIndices)-1; k++ {
		dt := float64(frameIndices[k+1]-frameIndices[k]) / fps
		if !isFinite(dt) || dt < 60.0/300.0 {
			continue
		}
		intervals = append(intervals, dt)
	}
	if len(intervals) == 0 {
		return 0
	}

	sort.Float64s(intervals)
	median := intervals[len(intervals)/2]
	if median <= 0 {
		return 0
	}

	bpm := 60 / median
	for bpm > 180 {
		bpm *= 0.5
	}
	for bpm < 60 {
		bpm *= 2
	}

	if !isFinite(bpm) {
		return 0
	}
	return bpm
}
