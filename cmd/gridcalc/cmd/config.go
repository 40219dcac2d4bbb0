package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the TOML-configurable defaults of the CLI.
type Config struct {
	Rows     int    `toml:"rows"`
	Columns  int    `toml:"columns"`
	FilePath string `toml:"file_path"`
	Database string `toml:"database"`
}

// DefaultConfig returns the built-in defaults used when no config file
// is present.
func DefaultConfig() Config {
	return Config{
		Rows:     10,
		Columns:  8,
		Database: "gridcalc.db",
	}
}

// LoadConfig reads the TOML config file. The --config flag names an
// explicit file and must exist; otherwise ./gridcalc.toml is used when
// present and the defaults apply when it is not.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := cfgFile
	explicit := path != ""
	if !explicit {
		path = "gridcalc.toml"
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.Rows < 1 || cfg.Columns < 1 {
		return Config{}, fmt.Errorf("config dimensions must be >= 1, got %dx%d", cfg.Rows, cfg.Columns)
	}
	return cfg, nil
}
