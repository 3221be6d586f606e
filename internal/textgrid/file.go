package textgrid

import (
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// output encoding settings
type WriteOptions struct {
	// UTF-16 big endian with BOM, as Praat writes non-ASCII files
	UTF16 bool
}

// ReadFile parses a TextGrid file. UTF-16 files are recognized by their
// byte order mark; anything else is read as UTF-8.
func ReadFile(path string, strict bool, ft FileType) (*TextGrid, error) {
	text, err := readText(path)
	if err != nil {
		return nil, err
	}
	return parse(path, text, strict, ft)
}

// ReadFileUnchecked is ReadFile without validation.
func ReadFileUnchecked(path string, ft FileType) (*TextGrid, error) {
	text, err := readText(path)
	if err != nil {
		return nil, err
	}
	return parseStructure(path, text, ft)
}

func readText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	text, err := decode(raw)
	if err != nil {
		return "", &ParseError{Path: path, Msg: "undecodable text", Err: err}
	}
	return text, nil
}

func decode(raw []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// WriteFile serializes the TextGrid to path, creating parent directories.
func (tg *TextGrid) WriteFile(path string, ft FileType, opts WriteOptions) error {
	data := []byte(tg.Format(ft))
	if opts.UTF16 {
		enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
		encoded, _, err := transform.Bytes(enc, data)
		if err != nil {
			return &IOError{Op: "encode", Path: path, Err: err}
		}
		data = encoded
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
