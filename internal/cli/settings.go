package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mgpai22/tgkit/internal/config"
	"github.com/mgpai22/tgkit/internal/textgrid"
	"github.com/spf13/cobra"
)

// config file values overridden by flags the user set explicitly
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("file-type") {
		raw, _ := flags.GetString("file-type")
		ft, err := textgrid.ParseFileType(raw)
		if err != nil {
			return config.Config{}, err
		}
		cfg.FileType = ft
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
		if cfg.Concurrency <= 0 {
			return config.Config{}, fmt.Errorf(
				"concurrency must be positive, got %d",
				cfg.Concurrency,
			)
		}
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing, _ = flags.GetBool("keep-going")
	}
	if flags.Changed("name") {
		cfg.Name, _ = flags.GetString("name")
	}
	if flags.Changed("utf16") {
		cfg.UTF16, _ = flags.GetBool("utf16")
	}
	return cfg, nil
}

// optional domain bound flags; nil when not set
func boundFlags(cmd *cobra.Command) (tmin, tmax *float64) {
	if cmd.Flags().Changed("tmin") {
		v, _ := cmd.Flags().GetFloat64("tmin")
		tmin = &v
	}
	if cmd.Flags().Changed("tmax") {
		v, _ := cmd.Flags().GetFloat64("tmax")
		tmax = &v
	}
	return tmin, tmax
}

func addBoundFlags(cmd *cobra.Command) {
	cmd.Flags().
		Float64("tmin", 0, "Start of the time domain (default: earliest entry)")
	cmd.Flags().
		Float64("tmax", 0, "End of the time domain (default: latest entry)")
}

func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().
		String("name", "", "TextGrid object name")
	cmd.Flags().
		Bool("utf16", false, "Write UTF-16 with a byte order mark like Praat")
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().
		Int("concurrency", 4, "Number of files read in parallel")
	cmd.Flags().
		Bool("keep-going", false, "Report failed files and continue with the rest")
}

// reads path, or stdin for "-"
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// writes to path, or stdout when path is empty or "-"
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return writeOutput(path, append(data, '\n'))
}

// writes the TextGrid to path, or its text to stdout
func writeTextGrid(tg *textgrid.TextGrid, path string, cfg config.Config) error {
	if path == "" || path == "-" {
		return tg.Write(os.Stdout, cfg.FileType)
	}
	return tg.WriteFile(path, cfg.FileType, textgrid.WriteOptions{UTF16: cfg.UTF16})
}
