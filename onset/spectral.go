package onset

import (
	"math"
	"runtime"
	"sync"

	"github.com/dsprails/onsetrace/algorithms/spectral"
	"github.com/dsprails/onsetrace/algorithms/windowing"
	"github.com/dsprails/onsetrace/logging"
)

// spectralAnalyzer computes the log-compressed magnitude spectrum for every
// analysis frame. Frames have no cross-frame dependency at this stage (the
// novelty function's prev_log_mag recurrence is applied afterwards, in
// order), so computeAll fans frames out across a worker pool.
type spectralAnalyzer struct {
	fft    *spectral.FFT
	window *windowing.Hann
	bins   int
	logger logging.Logger
}

func newSpectralAnalyzer(fftSize int) *spectralAnalyzer {
	return &spectralAnalyzer{
		fft:    spectral.NewFFT(),
		window: windowing.NewHann(fftSize, false),
		bins:   fftSize / 2,
		logger: logging.WithFields(logging.Fields{"component": "onset_spectral_analyzer"}),
	}
}

// computeAll returns one log-magnitude vector of length bins per span,
// ordered by span index.
func (sa *spectralAnalyzer) computeAll(mono []float64, spans []frameSpan, fftSize int) [][]float64 {
	result := make([][]float64, len(spans))
	if len(spans) == 0 {
		return result
	}

	numWorkers := optimalWorkerCount(len(spans))

	jobs := make(chan int, len(spans))
	var wg sync.WaitGroup

	for n := 0; n < numWorkers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				span := spans[idx]
				windowed := analysisWindow(mono, span, fftSize)
				_ = sa.window.ApplyInPlace(windowed)

				fftResult := sa.fft.Compute(windowed)

				logMag := make([]float64, sa.bins)
				for k := 0; k < sa.bins; k++ {
					re := real(fftResult[k])
					im := imag(fftResult[k])
					mag2 := re*re + im*im
					logMag[k] = math.Log1p(mag2)
				}
				result[idx] = logMag
			}
		}()
	}

	for idx := range spans {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	sa.logger.Debug("computed log-magnitude spectra", logging.Fields{
		"frames": len(spans),
		"bins":   sa.bins,
	})

	return result
}

// optimalWorkerCount scales worker count to clip length so short clips
// don't oversubscribe the CPU with goroutines that have nothing to do.
func optimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()

	if numFrames < 100 {
		w := numCPU / 2
		if w < 1 {
			w = 1
		}
		return min(w, numFrames)
	}
	if numFrames < 1000 {
		return min(numCPU, 8)
	}
	return numCPU
}
