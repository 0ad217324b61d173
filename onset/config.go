package onset

import "github.com/dsprails/onsetrace/algorithms/common"

// Config holds the tunables for Process. Start from DefaultConfig and
// override individual fields rather than constructing one from scratch.
type Config struct {
	// FFTSize is the analysis window length in samples. Must be a power of
	// two.
	FFTSize int

	// Sensitivity multiplies the centered local mean to form the adaptive
	// threshold in the peak picker.
	Sensitivity float64

	// RefractorySeconds is the minimum time after an accepted onset before
	// another onset may be accepted.
	RefractorySeconds float64

	// ThresholdHalfWindow is the number of frames on each side of the
	// current frame used to compute the centered local mean.
	ThresholdHalfWindow int

	// ApplyHysteresis enables the Schmitt-trigger post-filter.
	ApplyHysteresis bool
	HysteresisHigh  float64
	HysteresisLow   float64

	// ApplyMinHitGap enables the minimum-gap dedup post-filter.
	ApplyMinHitGap  bool
	MinHitGapFrames int
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() *Config {
	return &Config{
		FFTSize:             2048,
		Sensitivity:         1.2,
		RefractorySeconds:   0.06,
		ThresholdHalfWindow: 8,
		ApplyHysteresis:     false,
		HysteresisHigh:      0.24,
		HysteresisLow:       0.17,
		ApplyMinHitGap:      true,
		MinHitGapFrames:     2,
	}
}

// Validate checks the configuration and the caller-supplied parameters that
// govern framing (sampleRate, channels, fps). It returns ErrInvalidConfig
// wrapped with a specific reason on failure.
func (c *Config) Validate(sampleRate, channels int, fps float64) error {
	if sampleRate <= 0 {
		return wrapInvalidConfig("sample rate must be positive, got %d", sampleRate)
	}
	if channels <= 0 {
		return wrapInvalidConfig("channel count must be positive, got %d", channels)
	}
	if fps <= 0 {
		return wrapInvalidConfig("fps must be positive, got %v", fps)
	}
	if c.FFTSize <= 0 || !common.IsPowerOfTwo(c.FFTSize) {
		return wrapInvalidConfig("fft_size must be a power of two, got %d", c.FFTSize)
	}
	if c.ThresholdHalfWindow < 0 {
		return wrapInvalidConfig("threshold_half_window must be non-negative, got %d", c.ThresholdHalfWindow)
	}
	if c.HysteresisHigh < c.HysteresisLow+0.01 {
		c.HysteresisHigh = c.HysteresisLow + 0.01
	}
	if c.MinHitGapFrames < 0 {
		c.MinHitGapFrames = 0
	}
	return nil
}

// withDefaults returns cfg, or a fresh DefaultConfig if cfg is nil. Unlike
// a partial merge, a non-nil cfg is used exactly as given: callers who want
// the defaults should start from DefaultConfig() and override fields on it.
func withDefaults(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}
