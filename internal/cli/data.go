package cli

import (
	"context"

	"github.com/mgpai22/tgkit/internal/textgrid"
	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data [textgrid_file...]",
	Short: "Convert TextGrid files to nested JSON",
	Long: `Convert one or more TextGrid files to the nested form:
{"tmin", "tmax", "tiers": [{"name", "is_interval", "entries": [{"start", "end", "label"}]}]}

Unlike the columnar form, tiers stay separated, so several tiers with the
same name round-trip unambiguously. With several input files the output is
a JSON array in argument order; with --keep-going failed files are null.

Examples:
  tgkit data speech.TextGrid
  tgkit data a.TextGrid b.TextGrid -o tiers.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runData,
}

func init() {
	rootCmd.AddCommand(dataCmd)
	addBatchFlags(dataCmd)
}

func runData(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")

	logger.Infow("Converting TextGrids",
		"files", len(args),
		"strict", cfg.Strict,
		"file_type", cfg.FileType,
	)

	results := newRunner(cfg).Data(context.Background(), args)
	if err := checkFailures(cfg, results); err != nil {
		return err
	}

	if len(args) == 1 {
		return writeJSON(outputPath, results[0].Data)
	}

	out := make([]*textgrid.Data, len(results))
	for i := range results {
		if results[i].Err == nil {
			out[i] = &results[i].Data
		}
	}
	return writeJSON(outputPath, out)
}
