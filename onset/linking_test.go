package onset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkOnsetsSetsDistancesExceptLast(t *testing.T) {
	onsets := []*AudioOnset{
		{FrameIndex: 0},
		{FrameIndex: 50},
		{FrameIndex: 100},
	}
	linkOnsets(onsets)

	require.Equal(t, 50, onsets[0].NextOnsetFrame)
	assert.Equal(t, 50, onsets[0].DistanceToNextOnset)
	assert.Equal(t, 100, onsets[1].NextOnsetFrame)
	assert.Equal(t, 50, onsets[1].DistanceToNextOnset)
	assert.Equal(t, 0, onsets[2].NextOnsetFrame)
	assert.Equal(t, 0, onsets[2].DistanceToNextOnset)
}

func TestNormalizeFramesClampsAndScales(t *testing.T) {
	frames := []*AudioFrame{
		{RMS: 0.5, LoudnessDB: -6},
		{RMS: 1.0, LoudnessDB: 0},
		{RMS: 0.0, LoudnessDB: loudnessFloorDB},
	}
	normalizeFrames(frames, 1.0, 0)

	assert.InDelta(t, 0.5, frames[0].RMSNormalized, 1e-12)
	assert.InDelta(t, 1.0, frames[1].RMSNormalized, 1e-12)
	assert.InDelta(t, 0.0, frames[2].RMSNormalized, 1e-12)

	assert.InDelta(t, 0.9, frames[0].LoudnessNormalized, 1e-12)
	assert.InDelta(t, 1.0, frames[1].LoudnessNormalized, 1e-12)
	assert.InDelta(t, 0.0, frames[2].LoudnessNormalized, 1e-12)

	assert.InDelta(t, 0.0, frames[2].RelativeLoudnessNorm, 1e-12)
	assert.InDelta(t, 1.0, frames[1].RelativeLoudnessNorm, 1e-12)
}

func TestNormalizeFramesZeroMaxRMSIsZero(t *testing.T) {
	frames := []*AudioFrame{{RMS: 0, LoudnessDB: loudnessFloorDB}}
	normalizeFrames(frames, 0, loudnessFloorDB)
	assert.Equal(t, 0.0, frames[0].RMSNormalized)
	assert.Equal(t, 0.0, frames[0].RelativeLoudnessNorm)
}

func TestSourceAveragesEmptyFrameList(t *testing.T) {
	avgRMS, avgDB, maxDB, avgOnsetDB := sourceAverages(nil)
	assert.Equal(t, 0.0, avgRMS)
	assert.Equal(t, loudnessFloorDB, avgDB)
	assert.Equal(t, loudnessFloorDB, maxDB)
	assert.Equal(t, 0.0, avgOnsetDB)
}

func TestSourceAveragesNoOnsetsYieldsZero(t *testing.T) {
	frames := []*AudioFrame{{RMS: 0.2, LoudnessDB: -20}, {RMS: 0.4, LoudnessDB: -10}}
	_, _, _, avgOnsetDB := sourceAverages(frames)
	assert.Equal(t, 0.0, avgOnsetDB)
}

func TestSourceAveragesWithOnsets(t *testing.T) {
	frames := []*AudioFrame{
		{RMS: 0.2, LoudnessDB: -20, Onset: &AudioOnset{LoudnessDB: -20}},
		{RMS: 0.4, LoudnessDB: -10},
	}
	avgRMS, avgDB, maxDB, avgOnsetDB := sourceAverages(frames)
	assert.InDelta(t, 0.3, avgRMS, 1e-12)
	assert.InDelta(t, -15, avgDB, 1e-12)
	assert.Equal(t, -10.0, maxDB)
	assert.Equal(t, -20.0, avgOnsetDB)
}

func TestMaxRMSOfFrames(t *testing.T) {
	frames := []*AudioFrame{{RMS: 0.1}, {RMS: 0.9}, {RMS: 0.3}}
	assert.Equal(t, 0.9, maxRMS(frames))
}
