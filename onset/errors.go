package onset

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when Process is called with a non-positive
// fps, sample rate or channel count, or an fft_size that isn't a power of
// two. An empty PCM buffer is not an error.
var ErrInvalidConfig = errors.New("onset: invalid config")

// ErrDecodeFailed is returned by Combine when the underlying ffmpeg concat
// fails to produce an output file.
var ErrDecodeFailed = errors.New("onset: decode failed")

func wrapInvalidConfig(format string, args ...any) error {
	return &configError{msg: fmt.Sprintf(format, args...)}
}

type configError struct {
	msg string
}

func (e *configError) Error() string { return e.msg }

func (e *configError) Unwrap() error { return ErrInvalidConfig }
