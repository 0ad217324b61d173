// Package onset implements the offline onset-detection and feature-extraction
// pipeline: mono reduction, framed spectral analysis, a spectral-flux novelty
// function, adaptive peak picking, hysteresis/min-gap post-filtering, tempo
// estimation, and per-source normalization.
package onset

// AudioSource is the pipeline's aggregate result for one decoded signal. It
// is built once by Process, which fills every field except ID and URI; those
// are left for the caller to set.
type AudioSource struct {
	ID         string        `json:"id"`
	SampleRate int           `json:"sample_rate"`
	Duration   float64       `json:"duration"`
	FPS        float64       `json:"fps"`
	Channels   int           `json:"channels"`
	Frames     []*AudioFrame `json:"frames"`

	AverageBPM        float64 `json:"average_bpm"`
	AverageRMS        float64 `json:"average_rms"`
	AverageLoudnessDB float64 `json:"average_loudness_db"`
	MaxLoudnessDB     float64 `json:"max_loudness_db"`
	AverageOnsetLoud  float64 `json:"average_onset_loudness_db"`

	URI string `json:"uri,omitempty"`
}

// AudioFrame is one analysis step of an AudioSource.
type AudioFrame struct {
	Index int     `json:"index"`
	Time  float64 `json:"time"`

	// Samples holds the exact (non-padded) hop-length slice used for RMS.
	// The FFT-sized padded analysis window is transient and not retained.
	Samples []float64 `json:"-"`

	BPM float64 `json:"bpm"`

	RMS           float64 `json:"rms"`
	RMSNormalized float64 `json:"rms_normalized"`

	LoudnessDB           float64 `json:"loudness_db"`
	LoudnessNormalized   float64 `json:"loudness_normalized"`
	RelativeLoudnessNorm float64 `json:"relative_loudness_normalized"`

	Onset  *AudioOnset   `json:"onset,omitempty"`
	Onsets []*AudioOnset `json:"onsets,omitempty"`
}

// AudioOnset is a single detected transient event.
type AudioOnset struct {
	Time       float64 `json:"time"`
	FrameIndex int     `json:"frame_index"`

	Descriptor           float64 `json:"descriptor"`
	ThresholdAtDetection float64 `json:"threshold_at_detection"`
	DescriptorNormalized float64 `json:"descriptor_normalized"`

	RMS                float64 `json:"rms"`
	LoudnessDB         float64 `json:"loudness_db"`
	LoudnessNormalized float64 `json:"loudness_normalized"`

	DistanceToNextOnset int `json:"distance_to_next_onset"`
	NextOnsetFrame      int `json:"next_onset_frame"`
}

func (f *AudioFrame) attachOnset(o *AudioOnset) {
	f.Onset = o
	f.Onsets = []*AudioOnset{o}
}

func (f *AudioFrame) clearOnset() {
	f.Onset = nil
	f.Onsets = nil
}
