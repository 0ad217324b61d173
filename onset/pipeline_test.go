package onset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSilenceProducesZeroOnsetsAndFloorLoudness(t *testing.T) {
	p := NewDefaultProcessor(nil)

	sampleRate := 48000
	fps := 60.0
	pcm := make([]float64, 2*sampleRate) // 2.0s of silence

	source, err := p.Process(pcm, sampleRate, 1, fps, nil)
	require.NoError(t, err)

	require.Len(t, source.Frames, 120)
	assert.Equal(t, 0.0, source.AverageBPM)

	for _, f := range source.Frames {
		assert.Equal(t, 0.0, f.RMS)
		assert.Equal(t, loudnessFloorDB, f.LoudnessDB)
		assert.Nil(t, f.Onset)
	}
}

func TestProcessEmptyPCMIsNotAnError(t *testing.T) {
	p := NewDefaultProcessor(nil)
	source, err := p.Process(nil, 48000, 1, 60, nil)
	require.NoError(t, err)
	assert.Empty(t, source.Frames)
	assert.Equal(t, 0.0, source.AverageBPM)
	assert.Equal(t, 0.0, source.AverageRMS)
}

func TestProcessShorterThanFFTSizeProducesOneFrameNoOnset(t *testing.T) {
	p := NewDefaultProcessor(nil)
	pcm := make([]float64, 100)
	pcm[50] = 1.0

	source, err := p.Process(pcm, 48000, 1, 60, nil)
	require.NoError(t, err)
	require.Len(t, source.Frames, 1)
	assert.Nil(t, source.Frames[0].Onset)
}

func TestProcessRejectsNonPositiveFPS(t *testing.T) {
	p := NewDefaultProcessor(nil)
	_, err := p.Process([]float64{0, 0}, 48000, 1, 0, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestProcessRejectsNonPowerOfTwoFFTSize(t *testing.T) {
	p := NewDefaultProcessor(nil)
	cfg := DefaultConfig()
	cfg.FFTSize = 100
	_, err := p.Process([]float64{0, 0}, 48000, 1, 60, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestProcessStereoSilenceMatchesMonoSilence(t *testing.T) {
	p := NewDefaultProcessor(nil)

	sampleRate := 48000
	fps := 60.0
	mono := make([]float64, 2*sampleRate)
	stereo := make([]float64, 0, len(mono)*2)
	for _, s := range mono {
		stereo = append(stereo, s, s)
	}

	monoSource, err := p.Process(mono, sampleRate, 1, fps, nil)
	require.NoError(t, err)
	stereoSource, err := p.Process(stereo, sampleRate, 2, fps, nil)
	require.NoError(t, err)

	require.Equal(t, len(monoSource.Frames), len(stereoSource.Frames))
	for i := range monoSource.Frames {
		assert.InDelta(t, monoSource.Frames[i].RMS, stereoSource.Frames[i].RMS, 1e-12)
		assert.InDelta(t, monoSource.Frames[i].LoudnessDB, stereoSource.Frames[i].LoudnessDB, 1e-12)
	}
}
