package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/tgkit/internal/batch"
	"github.com/mgpai22/tgkit/internal/config"
	"github.com/spf13/cobra"
)

var vectorsCmd = &cobra.Command{
	Use:   "vectors [textgrid_file...]",
	Short: "Convert TextGrid files to columnar JSON",
	Long: `Convert one or more TextGrid files to flat parallel columns.

Each tier entry becomes one row with tmin, tmax, label, tier name and an
is_interval flag. Point entries repeat their time in tmin and tmax.
With several input files the rows are concatenated and a file_id column
holds each row's position in the argument list.

Examples:
  tgkit vectors speech.TextGrid
  tgkit vectors a.TextGrid b.TextGrid -o rows.json --strict
  tgkit vectors corpus/*.TextGrid --file-type short --keep-going`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVectors,
}

func init() {
	rootCmd.AddCommand(vectorsCmd)
	addBatchFlags(vectorsCmd)
}

func runVectors(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")

	logger.Infow("Vectorizing TextGrids",
		"files", len(args),
		"strict", cfg.Strict,
		"file_type", cfg.FileType,
		"concurrency", cfg.Concurrency,
	)

	results := newRunner(cfg).Vectors(context.Background(), args)
	if err := checkFailures(cfg, results); err != nil {
		return err
	}

	if len(args) == 1 {
		return writeJSON(outputPath, results[0].Vectors)
	}

	table := batch.Combine(results)
	logger.Infow("Vectorized TextGrids", "rows", table.Len())
	return writeJSON(outputPath, table)
}

func newRunner(cfg config.Config) *batch.Runner {
	return &batch.Runner{
		Strict:      cfg.Strict,
		FileType:    cfg.FileType,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}
}

// fails on the first bad file unless keep-going is set, in which case the
// failures are logged and only an all-failed batch is an error
func checkFailures[T interface{ Failure() error }](cfg config.Config, results []T) error {
	failures := batch.Failures(results)
	if len(failures) == 0 {
		return nil
	}
	if !cfg.KeepGoing || len(results) == 1 {
		return failures[0]
	}
	for _, err := range failures {
		logger.Errorw("Skipping file", "error", err)
	}
	if len(failures) == len(results) {
		return fmt.Errorf("all %d files failed", len(results))
	}
	return nil
}
