package onset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterateFramesCountMatchesCeilDiv(t *testing.T) {
	// sr=48000, fps=60 -> hop=800. N=96000 -> exactly 120 frames.
	spans, hop := iterateFrames(96000, 48000, 60, 2048)
	assert.Equal(t, 800, hop)
	assert.Len(t, spans, 120)
}

func TestIterateFramesStepIsConstant(t *testing.T) {
	spans, hop := iterateFrames(10000, 48000, 60, 2048)
	require.True(t, len(spans) > 2)
	for i := 1; i < len(spans); i++ {
		assert.Equal(t, hop, spans[i].start-spans[i-1].start)
	}
}

func TestIterateFramesEmptySignal(t *testing.T) {
	spans, _ := iterateFrames(0, 48000, 60, 2048)
	assert.Empty(t, spans)
}

func TestIterateFramesShorterThanFFTSizeProducesOneFrame(t *testing.T) {
	spans, _ := iterateFrames(100, 48000, 60, 2048)
	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].start)
	assert.Equal(t, 100, spans[0].exactEnd)
}

func TestAnalysisWindowZeroPads(t *testing.T) {
	mono := []float64{1, 2, 3}
	span := frameSpan{index: 0, start: 0, exactEnd: 3, fftEnd: 3}
	window := analysisWindow(mono, span, 8)
	require.Len(t, window, 8)
	assert.Equal(t, []float64{1, 2, 3, 0, 0, 0, 0, 0}, window)
}

func TestExactSamplesDoesNotPad(t *testing.T) {
	mono := []float64{1, 2, 3, 4, 5}
	span := frameSpan{index: 0, start: 1, exactEnd: 3, fftEnd: 5}
	assert.Equal(t, []float64{2, 3}, exactSamples(mono, span))
}
