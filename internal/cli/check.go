package cli

import (
	"fmt"

	"github.com/mgpai22/tgkit/internal/textgrid"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [textgrid_file...]",
	Short: "Report every timing problem in TextGrid files",
	Long: `Parse TextGrid files and list every validation problem found.

Overlapping intervals, reversed bounds and unordered points are always
reported. With --strict, gaps and intervals that do not reach their tier
bounds are reported too. Exits non-zero when any file has a problem.

Examples:
  tgkit check speech.TextGrid
  tgkit check corpus/*.TextGrid --strict -t auto`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		tg, err := textgrid.ReadFileUnchecked(path, cfg.FileType)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
			continue
		}

		problems := textgrid.Problems(tg, cfg.Strict)
		for _, p := range problems {
			fmt.Printf("%s: %v\n", path, p)
		}
		if len(problems) > 0 {
			failed++
		}
		logger.Debugw("Checked TextGrid",
			"file", path,
			"problems", len(problems),
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files have problems", failed, len(args))
	}
	fmt.Printf("%d files OK\n", len(args))
	return nil
}
