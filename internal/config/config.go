package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mgpai22/tgkit/internal/textgrid"
)

// names a config file used when --config is not given
const EnvConfigPath = "TGKIT_CONFIG"

// Config holds processing defaults shared by all commands.
type Config struct {
	Strict      bool
	FileType    textgrid.FileType
	Concurrency int
	KeepGoing   bool
	Name        string
	UTF16       bool
}

// tgkit.toml key mapping
type fileConfig struct {
	Strict      bool   `toml:"strict"`
	FileType    string `toml:"file_type"`
	Concurrency int    `toml:"concurrency"`
	KeepGoing   bool   `toml:"keep_going"`
	Name        string `toml:"name"`
	UTF16       bool   `toml:"utf16"`
}

func Default() Config {
	return Config{
		Strict:      false,
		FileType:    textgrid.FileTypeLong,
		Concurrency: 4,
		Name:        textgrid.DefaultName,
	}
}

// Load overlays the keys defined in the TOML file at path onto the defaults.
// An empty path falls back to $TGKIT_CONFIG, and to plain defaults when that
// is unset too.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("file_type") {
		ft, err := textgrid.ParseFileType(raw.FileType)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg.FileType = ft
	}
	if meta.IsDefined("concurrency") {
		if raw.Concurrency <= 0 {
			return Config{}, fmt.Errorf(
				"load config: concurrency must be positive, got %d",
				raw.Concurrency,
			)
		}
		cfg.Concurrency = raw.Concurrency
	}
	if meta.IsDefined("keep_going") {
		cfg.KeepGoing = raw.KeepGoing
	}
	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("utf16") {
		cfg.UTF16 = raw.UTF16
	}

	return cfg, nil
}
