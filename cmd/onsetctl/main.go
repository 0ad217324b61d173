// CLI for offline onset detection and multi-track combine.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dsprails/onsetrace/logging"
	"github.com/dsprails/onsetrace/onset"
	"github.com/dsprails/onsetrace/transcode"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onsetctl",
	Short: "Offline onset detection and feature extraction",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Decode a file and run the onset detection pipeline over it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fps, _ := cmd.Flags().GetFloat64("fps")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return runAnalyze(args[0], fps, verbose)
	},
}

var combineCmd = &cobra.Command{
	Use:   "combine <file...>",
	Short: "Concatenate tracks, in order, into a single output file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fps, _ := cmd.Flags().GetFloat64("fps")
		return runCombine(args, fps)
	},
}

func init() {
	analyzeCmd.Flags().Float64("fps", 60, "analysis frame rate")
	analyzeCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	combineCmd.Flags().Float64("fps", 60, "frame rate recorded on the combined output")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(combineCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAnalyze(path string, fps float64, verbose bool) error {
	if verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	decoder := transcode.NewDecoder(nil)
	audio, err := decoder.DecodeFile(path)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	processor := onset.NewDefaultProcessor(nil)
	source, err := processor.Process(audio.PCM, audio.SampleRate, audio.Channels, fps, nil)
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}
	source.ID = path
	source.URI = path

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(source)
}

func runCombine(paths []string, fps float64) error {
	processor := onset.NewDefaultProcessor(nil)
	result, err := processor.Combine(paths, fps)
	if err != nil {
		return fmt.Errorf("combine: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
