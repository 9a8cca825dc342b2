// Package config loads the optional epubtoc settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = ".epubtoc.yaml"

// Config holds the tunables of a run.
type Config struct {
	// LogFile is the append-only log file.
	LogFile string `yaml:"log_file"`

	// Extension selects which directory entries count as ePub files.
	Extension string `yaml:"extension"`

	// NavID is the manifest id of the NCX navigation item.
	NavID string `yaml:"nav_id"`

	// Untitled is printed for entries without a label.
	Untitled string `yaml:"untitled"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogFile:   "epub_scraper.log",
		Extension: ".epub",
		NavID:     "ncx",
		Untitled:  "Untitled",
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; fields left empty keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.Extension != "" {
		cfg.Extension = file.Extension
	}
	if file.NavID != "" {
		cfg.NavID = file.NavID
	}
	if file.Untitled != "" {
		cfg.Untitled = file.Untitled
	}
	return cfg, nil
}
