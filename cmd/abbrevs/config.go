package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type config struct {
	Addr          string        `yaml:"addr"`
	DictsDir      string        `yaml:"dicts_dir"`
	LogLevel      string        `yaml:"log_level"`
	MaxRuns       int           `yaml:"max_runs"`
	CheckInterval time.Duration `yaml:"check_interval"`
	SourcesDB     string        `yaml:"sources_db"`
}

func defaultConfig() config {
	return config{
		Addr:          ":8421",
		DictsDir:      "dicts",
		LogLevel:      "info",
		MaxRuns:       1024,
		CheckInterval: 24 * time.Hour,
	}
}

// loadConfig reads path over the defaults. A missing file is not an error;
// found reports whether one was read.
func loadConfig(path string) (cfg config, found bool, err error) {
	cfg = defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, true, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.MaxRuns <= 0 {
		return cfg, true, fmt.Errorf("config %s: max_runs must be positive", path)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return cfg, true, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, true, nil
}

// sourcesPath is the importer source table, next to the lists unless set.
func (c config) sourcesPath() string {
	if c.SourcesDB != "" {
		return c.SourcesDB
	}
	return filepath.Join(c.DictsDir, "sources.db")
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, err)
	}
	return lvl, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return nil
}
