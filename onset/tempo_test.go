package onset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTempoPerfect120BPMTrain(t *testing.T) {
	frames := []int{0, 50, 100, 150, 200, 250, 300, 350}
	bpm := estimateTempo(frames, 100)
	assert.InDelta(t, 120.0, bpm, 1e-9)
}

func TestEstimateTempoOctaveNormalizesTooFastTrain(t *testing.T) {
	// 0.25s between onsets -> raw 240 BPM, halved into range.
	frames := []int{0, 25, 50, 75}
	bpm := estimateTempo(frames, 100)
	assert.InDelta(t, 120.0, bpm, 1e-9)
}

func TestEstimateTempoOctaveNormalizesTooSlowTrain(t *testing.T) {
	// 1.5s between onsets -> raw 40 BPM, doubled into range.
	frames := []int{0, 150, 300}
	bpm := estimateTempo(frames, 100)
	assert.InDelta(t, 80.0, bpm, 1e-9)
}

func TestEstimateTempoSingleOnsetIsZero(t *testing.T) {
	assert.Equal(t, 0.0, estimateTempo([]int{5}, 60))
	assert.Equal(t, 0.0, estimateTempo(nil, 60))
}

func TestEstimateTempoNonPositiveFPSIsZero(t *testing.T) {
	assert.Equal(t, 0.0, estimateTempo([]int{0, 10, 20}, 0))
}

func TestEstimateTempoDiscardsFasterThan300BPM(t *testing.T) {
	// 1-frame gap at fps=60 is far faster than 300 BPM and must be discarded,
	// leaving no usable interval.
	bpm := estimateTempo([]int{0, 1}, 60)
	assert.Equal(t, 0.0, bpm)
}
