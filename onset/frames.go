package onset

// frameSpan describes one analysis step's sample ranges into the mono
// buffer: exact is the non-padded hop-length slice used for RMS, analysis
// is the (possibly shorter, to be zero-padded by the caller) slice used for
// the FFT.
type frameSpan struct {
	index    int
	start    int
	exactEnd int
	fftEnd   int
}

// iterateFrames computes the hop length from sampleRate/fps and enumerates
// every frame span covering mono. Each span carries two window lengths: the
// exact hop-length slice used for loudness measurement, and the
// zero-padded fft_size slice used for spectral analysis.
func iterateFrames(monoLen int, sampleRate int, fps float64, fftSize int) ([]frameSpan, int) {
	hop := max(1, int(float64(sampleRate)/fps+0.5))

	var spans []frameSpan
	for i := 0; i*hop < monoLen; i++ {
		start := i * hop
		exactEnd := min(start+hop, monoLen)
		fftEnd := min(start+fftSize, monoLen)
		spans = append(spans, frameSpan{
			index:    i,
			start:    start,
			exactEnd: exactEnd,
			fftEnd:   fftEnd,
		})
	}

	return spans, hop
}

// analysisWindow extracts the zero-padded fft_size window for a frame span.
func analysisWindow(mono []float64, span frameSpan, fftSize int) []float64 {
	out := make([]float64, fftSize)
	copy(out, mono[span.start:span.fftEnd])
	return out
}

// exactSamples extracts the non-padded hop-length slice for a frame span.
func exactSamples(mono []float64, span frameSpan) []float64 {
	out := make([]float64, span.exactEnd-span.start)
	copy(out, mono[span.start:span.exactEnd])
	return out
}
