package cli

import (
	"github.com/mgpai22/tgkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tgkit",
	Short: "Read, validate, and convert Praat TextGrid files",
	Long: `Tgkit is a CLI tool for Praat TextGrid annotation files.

It parses long and short TextGrid text, validates tier timing, and converts
between TextGrids and flat columnar or nested JSON for bulk processing.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path (default stdout)")
	rootCmd.PersistentFlags().
		String("config", "", "Path to a tgkit.toml config file (or set TGKIT_CONFIG)")
	rootCmd.PersistentFlags().
		Bool("strict", false, "Require interval tiers to cover their bounds without gaps")
	rootCmd.PersistentFlags().
		StringP("file-type", "t", "long", "TextGrid variant (long, short, auto)")
}
