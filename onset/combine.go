package onset

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dsprails/onsetrace/logging"
)

// AudioUri is the handle Combine hands back: a single concatenated track
// plus the frame rate it was produced for.
type AudioUri struct {
	URI string  `json:"uri"`
	FPS float64 `json:"fps"`
}

// combineTimeout bounds how long the ffmpeg concat may run.
const combineTimeout = 5 * time.Minute

// Combine concatenates tracks, in order, into a single output file using
// ffmpeg's concat demuxer. It is a peripheral operation: not part of the
// detection pipeline, exposed because callers that decode with transcode
// also need to splice sources together before analysis.
func (p *DefaultProcessor) Combine(urls []string, fps float64) (*AudioUri, error) {
	if len(urls) == 0 {
		return nil, wrapInvalidConfig("combine requires at least one url")
	}

	workDir, err := os.MkdirTemp("", "onsetrace-combine-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create work dir: %v", ErrDecodeFailed, err)
	}
	defer os.RemoveAll(workDir)

	listPath := filepath.Join(workDir, "concat.txt")
	if err := writeConcatList(listPath, urls); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	outputPath := filepath.Join(os.TempDir(), "onsetrace-combined-"+strconv.FormatInt(time.Now().UnixNano(), 10)+".wav")

	ctx, cancel := context.WithTimeout(context.Background(), combineTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-vn", "-c:a", "pcm_s16le",
		"-y", outputPath,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		p.logger.Error(err, "ffmpeg concat failed", logging.Fields{"output": string(output)})
		return nil, fmt.Errorf("%w: ffmpeg concat: %v", ErrDecodeFailed, err)
	}

	return &AudioUri{URI: outputPath, FPS: fps}, nil
}

// writeConcatList writes ffmpeg's concat-demuxer list format: one "file"
// directive per input, in order.
func writeConcatList(listPath string, urls []string) error {
	f, err := os.Create(listPath)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, u := range urls {
		if _, err := fmt.Fprintf(f, "file '%s'\n", u); err != nil {
			return err
		}
	}
	return nil
}
