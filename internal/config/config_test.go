package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/snapp-dev/snapp/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Document != DefaultDocument {
		t.Errorf("Document = %q, want %q", cfg.Document, DefaultDocument)
	}
	if cfg.Target != DefaultTarget {
		t.Errorf("Target = %q, want %q", cfg.Target, DefaultTarget)
	}
	if cfg.Sweep.DelayMs != DefaultSweepDelayMs {
		t.Errorf("Sweep.DelayMs = %d, want %d", cfg.Sweep.DelayMs, DefaultSweepDelayMs)
	}
	if cfg.Sweep.Threshold != DefaultSweepThreshold {
		t.Errorf("Sweep.Threshold = %d, want %d", cfg.Sweep.Threshold, DefaultSweepThreshold)
	}
	if cfg.Preview.Port != DefaultPort {
		t.Errorf("Preview.Port = %d, want %d", cfg.Preview.Port, DefaultPort)
	}
	if cfg.SweepDelay() != 15*time.Second {
		t.Errorf("SweepDelay() = %v, want 15s", cfg.SweepDelay())
	}
	if !cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "S103") {
		t.Fatalf("Load() on empty dir = %v, want S103", err)
	}

	configJSON := `{
  "name": "counter",
  "target": "#app",
  "logLevel": "debug",
  "sweep": {"delayMs": 500},
  "preview": {"host": "0.0.0.0", "port": 8080, "metrics": false}
}
`
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "counter" {
		t.Errorf("Name = %q, want counter", cfg.Name)
	}
	if cfg.Target != "#app" {
		t.Errorf("Target = %q, want #app", cfg.Target)
	}
	if cfg.SweepDelay() != 500*time.Millisecond {
		t.Errorf("SweepDelay() = %v, want 500ms", cfg.SweepDelay())
	}
	if cfg.Sweep.Threshold != DefaultSweepThreshold {
		t.Errorf("Sweep.Threshold = %d, want default", cfg.Sweep.Threshold)
	}
	if cfg.PreviewAddress() != "0.0.0.0:8080" {
		t.Errorf("PreviewAddress() = %q", cfg.PreviewAddress())
	}
	if cfg.PreviewURL() != "http://0.0.0.0:8080" {
		t.Errorf("PreviewURL() = %q", cfg.PreviewURL())
	}
	if cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() = true, want false")
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
	if cfg.DocumentPath() != filepath.Join(tmpDir, DefaultDocument) {
		t.Errorf("DocumentPath() = %q", cfg.DocumentPath())
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v", level, err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "S100") {
		t.Fatalf("Load() = %v, want S100", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save() without a path should fail")
	}

	cfg.Name = "demo"
	cfg.Preview.Port = 4000
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("saved file should end with a newline")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Name != "demo" || loaded.Preview.Port != 4000 {
		t.Errorf("loaded = %+v", loaded)
	}

	loaded.Name = "renamed"
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	again, _ := LoadFile(path)
	if again.Name != "renamed" {
		t.Errorf("Name after Save() = %q", again.Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"negative delay", func(c *Config) { c.Sweep.DelayMs = -1 }, "S101"},
		{"negative threshold", func(c *Config) { c.Sweep.Threshold = -5 }, "S101"},
		{"port too high", func(c *Config) { c.Preview.Port = 70000 }, "S102"},
		{"port negative", func(c *Config) { c.Preview.Port = -1 }, "S102"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "S104"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.HasCode(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nested); !errors.HasCode(err, "S103") {
		t.Errorf("FindProjectRoot() without config = %v, want S103", err)
	}

	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	if !Exists(root) {
		t.Fatal("Exists() = false after SaveTo")
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
}

func TestValidatePublish(t *testing.T) {
	cfg := New()
	if err := cfg.ValidatePublish(); !errors.HasCode(err, "S105") {
		t.Errorf("ValidatePublish() = %v, want S105", err)
	}

	cfg.Publish.Bucket = "site"
	cfg.Publish.Region = "eu-west-1"
	if err := cfg.ValidatePublish(); err != nil {
		t.Errorf("ValidatePublish() = %v", err)
	}
}
