package onset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickPeaksFlatDescriptorYieldsNone(t *testing.T) {
	descriptor := []float64{2, 2, 2, 2, 2}
	peaks := pickPeaks(descriptor, 2, 1.2, 0)
	assert.Empty(t, peaks)
}

func TestPickPeaksSingleSpike(t *testing.T) {
	descriptor := []float64{0, 0, 0, 0, 5, 0, 0, 0, 0}
	peaks := pickPeaks(descriptor, 2, 1.2, 0)
	require.Len(t, peaks, 1)
	assert.Equal(t, 4, peaks[0].frameIndex)
	assert.InDelta(t, 1.0, peaks[0].descriptorNormalized, 1e-12)
}

func TestPickPeaksRefractorySuppressesCloseSecondPeak(t *testing.T) {
	descriptor := []float64{0, 5, 0, 5, 0, 0, 0, 0, 0}
	peaks := pickPeaks(descriptor, 1, 1.0, 3)
	require.Len(t, peaks, 1)
	assert.Equal(t, 1, peaks[0].frameIndex)
}

func TestPickPeaksWithoutRefractoryAllowsBothSpikes(t *testing.T) {
	descriptor := []float64{0, 5, 0, 5, 0, 0, 0, 0, 0}
	peaks := pickPeaks(descriptor, 1, 1.0, 0)
	require.Len(t, peaks, 2)
	assert.Equal(t, 1, peaks[0].frameIndex)
	assert.Equal(t, 3, peaks[1].frameIndex)
}

func TestPickPeaksExcludesFirstAndLastFrame(t *testing.T) {
	descriptor := []float64{100, 0, 0, 0, 0}
	assert.Empty(t, pickPeaks(descriptor, 2, 1.2, 0))

	descriptor = []float64{0, 0, 0, 0, 100}
	assert.Empty(t, pickPeaks(descriptor, 2, 1.2, 0))
}

func TestPickPeaksShortDescriptorYieldsNone(t *testing.T) {
	assert.Empty(t, pickPeaks([]float64{1, 2}, 2, 1.2, 0))
	assert.Empty(t, pickPeaks(nil, 2, 1.2, 0))
}
