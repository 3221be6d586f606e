package textgrid

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteFileReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	tg := fixtureTextGrid()

	tests := []struct {
		name string
		ft   FileType
		opts WriteOptions
	}{
		{"long utf8", FileTypeLong, WriteOptions{}},
		{"short utf8", FileTypeShort, WriteOptions{}},
		{"long utf16", FileTypeLong, WriteOptions{UTF16: true}},
		{"short utf16", FileTypeShort, WriteOptions{UTF16: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "nested", tt.name+".TextGrid")
			if err := tg.WriteFile(path, tt.ft, tt.opts); err != nil {
				t.Fatalf("WriteFile returned error: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read back: %v", err)
			}
			hasBOM := bytes.HasPrefix(raw, []byte{0xFE, 0xFF})
			if hasBOM != tt.opts.UTF16 {
				t.Errorf("UTF-16 BOM present = %v, want %v", hasBOM, tt.opts.UTF16)
			}

			got, err := ReadFile(path, true, tt.ft)
			if err != nil {
				t.Fatalf("ReadFile returned error: %v", err)
			}
			if diff := cmp.Diff(tg, got, equateEmpty); diff != "" {
				t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.TextGrid")
	_, err := ReadFile(path, false, FileTypeLong)

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T: %v", err, err)
	}
	if ioErr.Path != path {
		t.Errorf("expected path %q, got %q", path, ioErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected errors.Is(err, os.ErrNotExist)")
	}
}

func TestReadFileParseErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.TextGrid")
	if err := os.WriteFile(path, []byte(longFixture), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := ReadFile(path, false, FileTypeShort)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Path != path {
		t.Errorf("expected path %q, got %q", path, perr.Path)
	}
}
