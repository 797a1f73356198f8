package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !strings.HasSuffix(cfg.DataDir, ".tianav") {
		t.Errorf("DataDir = %s, want a .tianav directory", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %s, want empty", cfg.MetricsAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// --- Load ---

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "data_dir: "+dir+"\nmetrics_addr: :9464\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, dir)
	}
	if cfg.MetricsAddr != ":9464" {
		t.Errorf("MetricsAddr = %s, want :9464", cfg.MetricsAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want the default info", cfg.LogLevel)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "log_levle: debug\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_CorruptYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "data_dir: [unclosed\n"))
	if err == nil {
		t.Fatal("expected error for corrupt YAML")
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg, err := Load(writeConfig(t, "data_dir: ~/plants\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, "plants"); cfg.DataDir != want {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, want)
	}
}

// --- ApplyEnv ---

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:    "debug",
		EnvMetricsAddr: "127.0.0.1:9464",
		EnvSnapshot:    "plant",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	dataDir := cfg.DataDir
	cfg.ApplyEnv(lookup)

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("MetricsAddr = %s", cfg.MetricsAddr)
	}
	if cfg.Snapshot != "plant" {
		t.Errorf("Snapshot = %s, want plant", cfg.Snapshot)
	}
	if cfg.DataDir != dataDir {
		t.Errorf("DataDir changed without %s set", EnvDataDir)
	}
}

// --- Validate ---

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = " " }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"warning alias", func(c *Config) { c.LogLevel = "warning" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotIsFile(t *testing.T) {
	tests := map[string]bool{
		"plant":              false,
		"exports/plant.yaml": true,
		"PLANT.YML":          true,
		"":                   false,
	}
	for in, want := range tests {
		cfg := Config{Snapshot: in}
		if got := cfg.SnapshotIsFile(); got != want {
			t.Errorf("SnapshotIsFile(%q) = %v, want %v", in, got, want)
		}
	}
}
