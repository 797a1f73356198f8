// Package config loads tianav settings from a YAML file and the
// environment.
//
// Precedence, lowest first: DefaultConfig, the config file, TIANAV_*
// environment variables, command-line flags (applied by the CLI).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/tianav/internal/logging"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvDataDir     = "TIANAV_DATA_DIR"
	EnvLogLevel    = "TIANAV_LOG_LEVEL"
	EnvMetricsAddr = "TIANAV_METRICS_ADDR"
	EnvSnapshot    = "TIANAV_SNAPSHOT"
)

// FileName is the config file looked up in the data dir.
const FileName = "config.yaml"

// Config holds process settings.
type Config struct {
	// DataDir holds catalog.db and the default config file.
	DataDir string `yaml:"data_dir"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
	// Snapshot is a catalog name or a YAML file opened at startup.
	Snapshot string `yaml:"snapshot,omitempty"`
	// UngroupedGroupName heads the ungrouped devices section when the
	// project leaves that group unnamed.
	UngroupedGroupName string `yaml:"ungrouped_group_name,omitempty"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:            filepath.Join(home, ".tianav"),
		LogLevel:           "info",
		UngroupedGroupName: "UngroupedDevicesGroup",
	}
}

// DefaultPath is the config file inside the default data dir.
func DefaultPath() string {
	return filepath.Join(DefaultConfig().DataDir, FileName)
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error. Unknown keys are.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	return cfg, nil
}

// ApplyEnv overrides fields from the TIANAV_* variables that lookup
// reports as set. Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDataDir); ok {
		c.DataDir = expandHome(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		c.MetricsAddr = v
	}
	if v, ok := lookup(EnvSnapshot); ok {
		c.Snapshot = v
	}
}

// Validate checks the settings that have no safe fallback.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is required")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("config: log_level %q is not one of %s", c.LogLevel, strings.Join(logging.Levels, ", "))
	}
	return nil
}

// SnapshotIsFile reports whether Snapshot names a YAML file rather than a
// catalog entry.
func (c Config) SnapshotIsFile() bool {
	ext := strings.ToLower(filepath.Ext(c.Snapshot))
	return ext == ".yaml" || ext == ".yml"
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
