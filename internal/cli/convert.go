package cli

import (
	"fmt"

	"github.com/mgpai22/tgkit/internal/textgrid"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [textgrid_file]",
	Short: "Rewrite a TextGrid in the long or short variant",
	Long: `Read a TextGrid and write it back in the requested variant.

The input variant comes from --file-type (use auto to detect it); the
output variant from --to. Values are written with full float precision,
so converting back and forth never changes the data.

Examples:
  tgkit convert speech.TextGrid --to short -o speech.short.TextGrid
  tgkit convert speech.TextGrid -t auto --to long --utf16 -o praat.TextGrid`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		String("to", "long", "Output TextGrid variant (long, short)")
	addWriteFlags(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")
	toStr, _ := cmd.Flags().GetString("to")

	to, err := textgrid.ParseFileType(toStr)
	if err != nil {
		return err
	}
	if to == textgrid.FileTypeAuto {
		return fmt.Errorf("output file type must be long or short")
	}

	logger.Infow("Converting TextGrid",
		"input", inputPath,
		"from", cfg.FileType,
		"to", to,
	)

	tg, err := textgrid.ReadFile(inputPath, cfg.Strict, cfg.FileType)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("name") {
		tg.Name = cfg.Name
	}

	cfg.FileType = to
	return finishBuild(tg, outputPath, cfg)
}
