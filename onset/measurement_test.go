package onset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasureFrameSilenceHitsFloor(t *testing.T) {
	rms, db := measureFrame([]float64{0, 0, 0, 0})
	assert.Equal(t, 0.0, rms)
	assert.Equal(t, loudnessFloorDB, db)
}

func TestMeasureFrameUnitSignal(t *testing.T) {
	rms, db := measureFrame([]float64{1, -1, 1, -1})
	assert.InDelta(t, 1.0, rms, 1e-12)
	assert.InDelta(t, 0.0, db, 1e-9)
}

func TestMeasureFrameMatchesDefinition(t *testing.T) {
	samples := []float64{0.5, 0.5, 0.5, 0.5}
	rms, db := measureFrame(samples)
	assert.InDelta(t, 0.5, rms, 1e-12)
	assert.InDelta(t, 20*math.Log10(0.5), db, 1e-9)
}
