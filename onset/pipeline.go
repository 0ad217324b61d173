package onset

import (
	"github.com/dsprails/onsetrace/logging"
)

// Processor is the capability set this package exposes: the core detection
// pipeline plus the peripheral multi-track combine operation. Callers that
// only need one capability can depend on a narrower interface built from
// these two methods.
type Processor interface {
	Process(pcm []float64, sampleRate, channels int, fps float64, config *Config) (*AudioSource, error)
	Combine(urls []string, fps float64) (*AudioUri, error)
}

// DefaultProcessor is the concrete Processor backed by the in-package
// pipeline and an ffmpeg-based combine implementation.
type DefaultProcessor struct {
	logger logging.Logger
}

// NewDefaultProcessor creates a DefaultProcessor. A nil logger falls back
// to the global logger.
func NewDefaultProcessor(logger logging.Logger) *DefaultProcessor {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &DefaultProcessor{logger: logger.WithFields(logging.Fields{"component": "onset_processor"})}
}

// Process runs the full pipeline: mixdown, framing, spectral analysis,
// novelty, measurement, peak picking, post-filters, tempo estimation,
// linking, normalization, and assembly. It returns ErrInvalidConfig if fps
// is non-positive, fft_size isn't a power of two, or sampleRate/channels
// are non-positive. An empty pcm buffer is not an error: it yields zero
// frames, zero average RMS, BPM and onset loudness, and average and max
// loudness at the -140 dB floor.
func (p *DefaultProcessor) Process(pcm []float64, sampleRate, channels int, fps float64, config *Config) (*AudioSource, error) {
	cfg := withDefaults(config)
	if err := cfg.Validate(sampleRate, channels, fps); err != nil {
		return nil, err
	}

	mono := mixdown(pcm, channels)
	spans, hop := iterateFrames(len(mono), sampleRate, fps, cfg.FFTSize)

	frames := make([]*AudioFrame, len(spans))
	for i, span := range spans {
		exact := exactSamples(mono, span)
		rms, loudnessDB := measureFrame(exact)
		frames[i] = &AudioFrame{
			Index:      span.index,
			Time:       float64(span.index*hop) / float64(sampleRate),
			Samples:    exact,
			RMS:        rms,
			LoudnessDB: loudnessDB,
		}
	}

	analyzer := newSpectralAnalyzer(cfg.FFTSize)
	logMags := analyzer.computeAll(mono, spans, cfg.FFTSize)

	tracker := newNoveltyTracker(analyzer.bins)
	descriptor := tracker.descriptors(logMags)

	refractoryFrames := int(cfg.RefractorySeconds*fps + 0.5)
	peaks := pickPeaks(descriptor, cfg.ThresholdHalfWindow, cfg.Sensitivity, refractoryFrames)

	if cfg.ApplyHysteresis {
		peaks = applyHysteresisFilter(peaks, cfg.HysteresisHigh, cfg.HysteresisLow)
	}
	if cfg.ApplyMinHitGap {
		peaks = applyMinHitGapFilter(peaks, cfg.MinHitGapFrames)
	}

	onsets := make([]*AudioOnset, len(peaks))
	frameIndices := make([]int, len(peaks))
	for i, pk := range peaks {
		f := frames[pk.frameIndex]
		onset := &AudioOnset{
			Time:                 f.Time,
			FrameIndex:           pk.frameIndex,
			Descriptor:           pk.descriptor,
			ThresholdAtDetection: pk.thresholdAtDetection,
			DescriptorNormalized: pk.descriptorNormalized,
			RMS:                  f.RMS,
			LoudnessDB:           f.LoudnessDB,
		}
		onsets[i] = onset
		frameIndices[i] = pk.frameIndex
		f.attachOnset(onset)
	}

	linkOnsets(onsets)

	bpm := estimateTempo(frameIndices, fps)
	for _, f := range frames {
		f.BPM = bpm
	}

	mRMS := maxRMS(frames)
	avgRMS, avgLoudnessDB, maxLoudnessDB, avgOnsetLoudness := sourceAverages(frames)
	normalizeFrames(frames, mRMS, maxLoudnessDB)

	duration := 0.0
	if sampleRate > 0 {
		duration = float64(len(mono)) / float64(sampleRate)
	}

	source := &AudioSource{
		SampleRate:        sampleRate,
		Duration:          duration,
		FPS:               fps,
		Channels:          channels,
		Frames:            frames,
		AverageBPM:        bpm,
		AverageRMS:        avgRMS,
		AverageLoudnessDB: avgLoudnessDB,
		MaxLoudnessDB:     maxLoudnessDB,
		AverageOnsetLoud:  avgOnsetLoudness,
	}

	p.logger.Debug("processed audio source", logging.Fields{
		"frames":      len(frames),
		"onsets":      len(onsets),
		"average_bpm": bpm,
	})

	return source, nil
}
