package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mgpai22/tgkit/internal/batch"
	"github.com/mgpai22/tgkit/internal/config"
	"github.com/mgpai22/tgkit/internal/logging"
	"github.com/mgpai22/tgkit/internal/textgrid"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func gridWithWords(n int) *textgrid.TextGrid {
	tg := textgrid.New("", 0, float64(n))
	tier := textgrid.Tier{Name: "words", Kind: textgrid.IntervalTier, Tmin: 0, Tmax: float64(n)}
	for i := 0; i < n; i++ {
		tier.Intervals = append(tier.Intervals, textgrid.Interval{
			Start: float64(i),
			End:   float64(i + 1),
			Label: strings.Repeat("w", i),
		})
	}
	tg.AddTier(tier)
	return tg
}

func decodeFile(t *testing.T, path string, v any) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
}

func TestCommandPipeline(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()

	// new + convert
	newPath := filepath.Join(dir, "new.TextGrid")
	if err := execute(t, "new", "--tmax", "3", "--tier", "words", "--tier", "tones:point",
		"-t", "short", "--strict=true", "-o", newPath); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	created, err := textgrid.ReadFile(newPath, true, textgrid.FileTypeShort)
	if err != nil {
		t.Fatalf("new wrote an unreadable file: %v", err)
	}
	if len(created.Tiers) != 2 || created.Tiers[1].Kind != textgrid.PointTier || created.Tmax != 3 {
		t.Errorf("unexpected TextGrid from new: %+v", created)
	}

	longPath := filepath.Join(dir, "long.TextGrid")
	if err := execute(t, "convert", newPath, "-t", "auto", "--strict=false",
		"--to", "long", "-o", longPath); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	converted, err := textgrid.ReadFile(longPath, true, textgrid.FileTypeLong)
	if err != nil {
		t.Fatalf("convert wrote an unreadable file: %v", err)
	}
	if diff := cmp.Diff(created, converted, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("convert changed the data (-want +got):\n%s", diff)
	}

	// vectors over a batch
	a, b := filepath.Join(dir, "a.TextGrid"), filepath.Join(dir, "b.TextGrid")
	if err := gridWithWords(2).WriteFile(a, textgrid.FileTypeLong, textgrid.WriteOptions{}); err != nil {
		t.Fatalf("failed to write a: %v", err)
	}
	if err := gridWithWords(3).WriteFile(b, textgrid.FileTypeLong, textgrid.WriteOptions{}); err != nil {
		t.Fatalf("failed to write b: %v", err)
	}

	rowsPath := filepath.Join(dir, "rows.json")
	if err := execute(t, "vectors", a, b, "-t", "long", "--strict=true", "-o", rowsPath); err != nil {
		t.Fatalf("vectors failed: %v", err)
	}
	var table batch.Table
	decodeFile(t, rowsPath, &table)
	if diff := cmp.Diff([]uint32{0, 0, 1, 1, 1}, table.FileID); diff != "" {
		t.Errorf("file_id mismatch (-want +got):\n%s", diff)
	}
	if len(table.Tmins) != 5 {
		t.Errorf("expected 5 rows, got %d", len(table.Tmins))
	}

	// single-file vectors back to a TextGrid
	onePath := filepath.Join(dir, "one.json")
	if err := execute(t, "vectors", a, "-t", "long", "--strict=true", "-o", onePath); err != nil {
		t.Fatalf("vectors failed: %v", err)
	}
	rebuiltPath := filepath.Join(dir, "rebuilt.TextGrid")
	if err := execute(t, "from-vectors", onePath, "-t", "short", "--strict=true",
		"--utf16", "-o", rebuiltPath); err != nil {
		t.Fatalf("from-vectors failed: %v", err)
	}
	rebuilt, err := textgrid.ReadFile(rebuiltPath, true, textgrid.FileTypeShort)
	if err != nil {
		t.Fatalf("from-vectors wrote an unreadable file: %v", err)
	}
	if diff := cmp.Diff(gridWithWords(2), rebuilt, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("vector round trip mismatch (-want +got):\n%s", diff)
	}

	// nested data back to a TextGrid
	dataPath := filepath.Join(dir, "data.json")
	if err := execute(t, "data", b, "-t", "long", "--strict=true", "-o", dataPath); err != nil {
		t.Fatalf("data failed: %v", err)
	}
	var d textgrid.Data
	decodeFile(t, dataPath, &d)
	if len(d.Tiers) != 1 || len(d.Tiers[0].Entries) != 3 {
		t.Errorf("unexpected data output: %+v", d)
	}
	fromDataPath := filepath.Join(dir, "from-data.TextGrid")
	if err := execute(t, "from-data", dataPath, "-t", "long", "--strict=true",
		"-o", fromDataPath); err != nil {
		t.Fatalf("from-data failed: %v", err)
	}
	fromData, err := textgrid.ReadFile(fromDataPath, true, textgrid.FileTypeLong)
	if err != nil {
		t.Fatalf("from-data wrote an unreadable file: %v", err)
	}
	if diff := cmp.Diff(gridWithWords(3), fromData, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("data round trip mismatch (-want +got):\n%s", diff)
	}

	// check enforces the requested policy
	gapped := gridWithWords(3)
	gapped.Tiers[0].Intervals[1].Start = 1.5
	gapPath := filepath.Join(dir, "gap.TextGrid")
	if err := gapped.WriteFile(gapPath, textgrid.FileTypeLong, textgrid.WriteOptions{}); err != nil {
		t.Fatalf("failed to write gap file: %v", err)
	}
	if err := execute(t, "check", gapPath, "-t", "long", "--strict=true"); err == nil {
		t.Error("expected strict check to fail on a gap")
	}
	if err := execute(t, "check", gapPath, "-t", "long", "--strict=false"); err != nil {
		t.Errorf("lenient check failed: %v", err)
	}
}

func TestVectorsFailsWithoutKeepGoing(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	good := filepath.Join(dir, "good.TextGrid")
	if err := gridWithWords(1).WriteFile(good, textgrid.FileTypeLong, textgrid.WriteOptions{}); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	missing := filepath.Join(dir, "missing.TextGrid")
	out := filepath.Join(dir, "rows.json")

	err := execute(t, "vectors", good, missing, "-t", "long", "--strict=false",
		"--keep-going=false", "-o", out)
	var ioErr *textgrid.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}

	if err := execute(t, "vectors", good, missing, "-t", "long", "--strict=false",
		"--keep-going=true", "-o", out); err != nil {
		t.Fatalf("vectors --keep-going failed: %v", err)
	}
	var table batch.Table
	decodeFile(t, out, &table)
	if diff := cmp.Diff([]uint32{0}, table.FileID); diff != "" {
		t.Errorf("file_id mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTierSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    tierSpec
		wantErr bool
	}{
		{"words", tierSpec{"words", textgrid.IntervalTier}, false},
		{"phones:interval", tierSpec{"phones", textgrid.IntervalTier}, false},
		{"tones:point", tierSpec{"tones", textgrid.PointTier}, false},
		{" tones : POINT ", tierSpec{"tones", textgrid.PointTier}, false},
		{":point", tierSpec{}, true},
		{"words:span", tierSpec{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTierSpec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTierSpec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTierSpec(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckFailures(t *testing.T) {
	logger = logging.Nop()
	boom := errors.New("boom")
	ok := batch.VectorsResult{}
	bad := batch.VectorsResult{Status: batch.Status{Index: 1, Err: boom}}

	tests := []struct {
		name      string
		keepGoing bool
		results   []batch.VectorsResult
		wantErr   bool
	}{
		{"all ok", false, []batch.VectorsResult{ok, ok}, false},
		{"fail fast", false, []batch.VectorsResult{ok, bad}, true},
		{"keep going", true, []batch.VectorsResult{ok, bad}, false},
		{"keep going all failed", true, []batch.VectorsResult{bad, bad}, true},
		{"single file", true, []batch.VectorsResult{bad}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.KeepGoing = tt.keepGoing
			err := checkFailures(cfg, tt.results)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkFailures() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLicenseCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	if err := execute(t, "license"); err != nil {
		t.Fatalf("license failed: %v", err)
	}
	if !strings.Contains(out.String(), "MIT License") {
		t.Errorf("expected license text, got %q", out.String())
	}
}
