package cli

import (
	"fmt"
	"strings"

	"github.com/mgpai22/tgkit/internal/media"
	"github.com/mgpai22/tgkit/internal/textgrid"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty TextGrid for a recording",
	Long: `Create a TextGrid with empty tiers over a time domain.

The domain is [--tmin, --tmax], or [0, duration] of the --audio file
(probed with ffprobe, which must be on PATH). Interval tiers start with a
single empty interval covering the domain; add ":point" to a tier name to
make a point tier.

Examples:
  tgkit new --audio speech.wav --tier words --tier phones -o speech.TextGrid
  tgkit new --tmax 3.5 --tier words --tier tones:point -t short`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().
		String("audio", "", "Audio or video file whose duration sets the domain")
	newCmd.Flags().
		StringSlice("tier", []string{"words"}, "Tier to create, as name or name:point")
	addBoundFlags(newCmd)
	addWriteFlags(newCmd)
}

type tierSpec struct {
	name string
	kind textgrid.TierKind
}

func parseTierSpec(s string) (tierSpec, error) {
	name, kind, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return tierSpec{}, fmt.Errorf("empty tier name in %q", s)
	}
	if !found {
		return tierSpec{name: name, kind: textgrid.IntervalTier}, nil
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "interval":
		return tierSpec{name: name, kind: textgrid.IntervalTier}, nil
	case "point":
		return tierSpec{name: name, kind: textgrid.PointTier}, nil
	default:
		return tierSpec{}, fmt.Errorf(
			"unknown tier kind %q in %q: use interval or point",
			kind,
			s,
		)
	}
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")
	audioPath, _ := cmd.Flags().GetString("audio")
	tierStrs, _ := cmd.Flags().GetStringSlice("tier")

	specs := make([]tierSpec, 0, len(tierStrs))
	for _, s := range tierStrs {
		spec, err := parseTierSpec(s)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	tmin, tmax := 0.0, 0.0
	minFlag, maxFlag := boundFlags(cmd)
	if minFlag != nil {
		tmin = *minFlag
	}
	switch {
	case maxFlag != nil:
		tmax = *maxFlag
	case audioPath != "":
		duration, err := media.Duration(audioPath)
		if err != nil {
			return fmt.Errorf("failed to get audio duration: %w", err)
		}
		tmax = tmin + duration
		logger.Infow("Probed audio", "file", audioPath, "duration", duration)
	default:
		return fmt.Errorf("either --audio or --tmax is required")
	}

	tg := textgrid.New(cfg.Name, tmin, tmax)
	for _, spec := range specs {
		if spec.kind == textgrid.PointTier {
			tg.AddTier(textgrid.NewPointTier(spec.name, tmin, tmax))
		} else {
			tg.AddTier(textgrid.NewIntervalTier(spec.name, tmin, tmax))
		}
	}
	if err := textgrid.Validate(tg, true); err != nil {
		return err
	}

	// auto has nothing to detect when writing
	if cfg.FileType == textgrid.FileTypeAuto {
		cfg.FileType = textgrid.FileTypeLong
	}
	return finishBuild(tg, outputPath, cfg)
}
