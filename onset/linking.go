package onset

import "github.com/dsprails/onsetrace/algorithms/common"

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	return common.Clamp(v, 0, 1)
}

// linkOnsets sets next_onset_frame/distance_to_next_onset on every onset
// but the last, and loudness_normalized using the fixed [-60, 0] dB map.
func linkOnsets(onsets []*AudioOnset) {
	for k := 0; k < len(onsets); k++ {
		onsets[k].LoudnessNormalized = clamp01((onsets[k].LoudnessDB + 60) / 60)
		if k < len(onsets)-1 {
			onsets[k].NextOnsetFrame = onsets[k+1].FrameIndex
			onsets[k].DistanceToNextOnset = onsets[k+1].FrameIndex - onsets[k].FrameIndex
		}
	}
}

// normalizeFrames fills in rms_normalized, loudness_normalized, and
// relative_loudness_normalized on every frame, given the source-wide
// max RMS and max loudness already computed over all frames.
func normalizeFrames(frames []*AudioFrame, maxRMS, maxLoudnessDB float64) {
	denom := maxLoudnessDB - loudnessFloorDB

	for _, f := range frames {
		if maxRMS > 0 {
			f.RMSNormalized = f.RMS / maxRMS
		} else {
			f.RMSNormalized = 0
		}
		f.LoudnessNormalized = clamp01((f.LoudnessDB + 60) / 60)
		if denom > 0 {
			f.RelativeLoudnessNorm = (f.LoudnessDB - loudnessFloorDB) / denom
		} else {
			f.RelativeLoudnessNorm = 0
		}
	}
}

// sourceAverages computes the AudioSource-level summary scalars: average
// RMS, average loudness, max loudness, and average loudness restricted to
// onset-carrying frames.
func sourceAverages(frames []*AudioFrame) (avgRMS, avgLoudnessDB, maxLoudnessDB, avgOnsetLoudness float64) {
	if len(frames) == 0 {
		return 0, loudnessFloorDB, loudnessFloorDB, 0
	}

	rmsValues := make([]float64, len(frames))
	loudnessValues := make([]float64, len(frames))
	maxLoudnessDB = loudnessFloorDB

	var onsetLoudness []float64
	for i, f := range frames {
		rmsValues[i] = f.RMS
		loudnessValues[i] = f.LoudnessDB
		if f.LoudnessDB > maxLoudnessDB {
			maxLoudnessDB = f.LoudnessDB
		}
		if f.Onset != nil {
			onsetLoudness = append(onsetLoudness, f.Onset.LoudnessDB)
		}
	}

	avgRMS = common.Mean(rmsValues)
	avgLoudnessDB = common.Mean(loudnessValues)
	if len(onsetLoudness) > 0 {
		avgOnsetLoudness = common.Mean(onsetLoudness)
	}

	return avgRMS, avgLoudnessDB, maxLoudnessDB, avgOnsetLoudness
}

// maxRMS returns the largest frame RMS, 0 for an empty frame list.
func maxRMS(frames []*AudioFrame) float64 {
	var m float64
	for _, f := range frames {
		if f.RMS > m {
			m = f.RMS
		}
	}
	return m
}
