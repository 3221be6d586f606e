package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/tgkit/internal/config"
	"github.com/mgpai22/tgkit/internal/textgrid"
	"github.com/spf13/cobra"
)

var fromVectorsCmd = &cobra.Command{
	Use:   "from-vectors [json_file]",
	Short: "Build a TextGrid from columnar JSON",
	Long: `Build a TextGrid from the columnar JSON written by "tgkit vectors".

The input holds equal-length tmins, tmaxs, labels, tier_names and
is_interval arrays. Each contiguous run of rows with the same tier name
becomes one tier; use "tgkit from-data" when several tiers share a name.
Use "-" to read from stdin.

Examples:
  tgkit from-vectors rows.json -o speech.TextGrid
  tgkit from-vectors rows.json --tmin 0 --tmax 3.2 -t short -o speech.TextGrid`,
	Args: cobra.ExactArgs(1),
	RunE: runFromVectors,
}

var fromDataCmd = &cobra.Command{
	Use:   "from-data [json_file]",
	Short: "Build a TextGrid from nested JSON",
	Long: `Build a TextGrid from the nested JSON written by "tgkit data".

The tmin and tmax keys are optional; --tmin and --tmax override them.
Use "-" to read from stdin.

Examples:
  tgkit from-data tiers.json -o speech.TextGrid
  tgkit from-data tiers.json --strict --utf16 -o speech.TextGrid`,
	Args: cobra.ExactArgs(1),
	RunE: runFromData,
}

func init() {
	rootCmd.AddCommand(fromVectorsCmd)
	rootCmd.AddCommand(fromDataCmd)

	for _, cmd := range []*cobra.Command{fromVectorsCmd, fromDataCmd} {
		addBoundFlags(cmd)
		addWriteFlags(cmd)
	}
}

// nested input with optional bounds
type dataInput struct {
	Tmin  *float64            `json:"tmin"`
	Tmax  *float64            `json:"tmax"`
	Tiers []textgrid.TierData `json:"tiers"`
}

func runFromVectors(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")

	raw, err := readInput(args[0])
	if err != nil {
		return err
	}
	var vectors textgrid.Vectors
	if err := json.Unmarshal(raw, &vectors); err != nil {
		return fmt.Errorf("failed to decode columns: %w", err)
	}

	opts := textgrid.BuildOptions{Name: cfg.Name, Strict: cfg.Strict}
	opts.Tmin, opts.Tmax = boundFlags(cmd)

	tg, err := textgrid.FromVectors(vectors, opts)
	if err != nil {
		return fmt.Errorf("failed to create TextGrid: %w", err)
	}
	return finishBuild(tg, outputPath, cfg)
}

func runFromData(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")

	input, err := decodeDataInput(args[0])
	if err != nil {
		return err
	}

	opts := textgrid.BuildOptions{
		Name:   cfg.Name,
		Tmin:   input.Tmin,
		Tmax:   input.Tmax,
		Strict: cfg.Strict,
	}
	tmin, tmax := boundFlags(cmd)
	if tmin != nil {
		opts.Tmin = tmin
	}
	if tmax != nil {
		opts.Tmax = tmax
	}

	tg, err := textgrid.FromData(input.Tiers, opts)
	if err != nil {
		return fmt.Errorf("failed to create TextGrid: %w", err)
	}
	return finishBuild(tg, outputPath, cfg)
}

func decodeDataInput(path string) (dataInput, error) {
	raw, err := readInput(path)
	if err != nil {
		return dataInput{}, err
	}
	var input dataInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return dataInput{}, fmt.Errorf("failed to decode tiers: %w", err)
	}
	return input, nil
}

func finishBuild(tg *textgrid.TextGrid, outputPath string, cfg config.Config) error {
	logger.Infow("Writing TextGrid",
		"output", outputPath,
		"file_type", cfg.FileType,
		"tiers", len(tg.Tiers),
		"entries", tg.Len(),
	)
	if err := writeTextGrid(tg, outputPath, cfg); err != nil {
		return fmt.Errorf("failed to write TextGrid: %w", err)
	}
	if outputPath != "" && outputPath != "-" {
		absOutput, _ := filepath.Abs(outputPath)
		fmt.Printf("TextGrid written successfully: %s\n", absOutput)
	}
	return nil
}
