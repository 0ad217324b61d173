package onset

import (
	"math"

	"github.com/dsprails/onsetrace/algorithms/common"
)

// loudnessFloorDB is the conventional lowest representable loudness,
// substituted for silence instead of propagating -Inf.
const loudnessFloorDB = -140.0

// measureFrame computes RMS and dB loudness from a frame's exact
// (non-padded) hop-length samples.
func measureFrame(exact []float64) (rms float64, loudnessDB float64) {
	rms = common.RMS(exact)
	if rms > 1e-7 {
		loudnessDB = 20 * math.Log10(rms)
	} else {
		loudnessDB = loudnessFloorDB
	}
	return rms, loudnessDB
}
