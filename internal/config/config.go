// Package config loads optional display preferences for the viewer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the resolved viewer settings. Flags override config file
// values, which override the built-in defaults.
type Config struct {
	DB       string        // database path ("" = auto-discover)
	Refresh  time.Duration // polling fallback interval
	Sort     string        // initial sort column name ("" = number)
	LateOnly bool          // start with the late-only filter on
}

// File mirrors the on-disk TOML layout.
type File struct {
	DB       string   `toml:"db"`
	Refresh  duration `toml:"refresh"`
	Sort     string   `toml:"sort"`
	LateOnly bool     `toml:"late_only"`
}

// duration wraps time.Duration so values like "5s" decode from TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Refresh: 2 * time.Second}
}

// DefaultPath returns the conventional config file location,
// ~/.config/ttv.toml, or "" when no home directory is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ttv.toml")
}

// Load reads the TOML file at path on top of the defaults. A missing file
// is only an error when the path was given explicitly; the conventional
// location may simply not exist.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if f.DB != "" {
		cfg.DB = f.DB
	}
	if f.Refresh.Duration > 0 {
		cfg.Refresh = f.Refresh.Duration
	}
	if f.Sort != "" {
		cfg.Sort = f.Sort
	}
	cfg.LateOnly = f.LateOnly
	return cfg, nil
}
