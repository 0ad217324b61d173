package onset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMinHitGapFilterKeepsStrongerOfCloseHits(t *testing.T) {
	peaks := []rawPeak{
		{frameIndex: 10, descriptorNormalized: 0.4},
		{frameIndex: 11, descriptorNormalized: 0.9},
	}
	kept := applyMinHitGapFilter(peaks, 2)
	require.Len(t, kept, 1)
	assert.Equal(t, 11, kept[0].frameIndex)
}

func TestApplyMinHitGapFilterKeepsBothWhenFarApart(t *testing.T) {
	peaks := []rawPeak{
		{frameIndex: 10, descriptorNormalized: 0.4},
		{frameIndex: 20, descriptorNormalized: 0.9},
	}
	kept := applyMinHitGapFilter(peaks, 2)
	assert.Len(t, kept, 2)
}

func TestApplyMinHitGapFilterDisabledIsPassthrough(t *testing.T) {
	peaks := []rawPeak{
		{frameIndex: 10, descriptorNormalized: 0.4},
		{frameIndex: 11, descriptorNormalized: 0.9},
	}
	kept := applyMinHitGapFilter(peaks, 0)
	assert.Len(t, kept, 2)
}

func TestApplyHysteresisFilterRequiresHighToOpenGate(t *testing.T) {
	peaks := []rawPeak{
		{frameIndex: 1, descriptorNormalized: 0.20},
		{frameIndex: 2, descriptorNormalized: 0.30},
		{frameIndex: 3, descriptorNormalized: 0.18},
		{frameIndex: 4, descriptorNormalized: 0.10},
	}
	kept := applyHysteresisFilter(peaks, 0.24, 0.17)
	require.Len(t, kept, 2)
	assert.Equal(t, []int{2, 3}, []int{kept[0].frameIndex, kept[1].frameIndex})
}

func TestApplyHysteresisFilterClosesGateBelowLow(t *testing.T) {
	peaks := []rawPeak{
		{frameIndex: 1, descriptorNormalized: 0.30},
		{frameIndex: 2, descriptorNormalized: 0.10},
		{frameIndex: 3, descriptorNormalized: 0.30},
	}
	kept := applyHysteresisFilter(peaks, 0.24, 0.17)
	require.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].frameIndex)
	assert.Equal(t, 3, kept[1].frameIndex)
}
