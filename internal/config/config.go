package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/snapp-dev/snapp/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "snapp.json"

	// DefaultDocument is the HTML shell the runtime renders into.
	DefaultDocument = "index.html"

	// DefaultTarget is the selector content is rendered into.
	DefaultTarget = "#snapp-body"

	// DefaultSweepDelayMs is the debounce applied to the lifecycle sweep.
	DefaultSweepDelayMs = 15000

	// DefaultSweepThreshold is the pending-removal count that forces an
	// immediate sweep.
	DefaultSweepThreshold = 30

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultLogLevel is used when logLevel is unset.
	DefaultLogLevel = "info"
)

// Config represents the complete snapp.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Document is the HTML file content is rendered into, relative to
	// the config directory.
	Document string `json:"document,omitempty"`

	// Target is the selector of the render target inside Document.
	Target string `json:"target,omitempty"`

	// Mode is the insertion mode used when mounting, e.g. "append".
	Mode string `json:"mode,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty"`

	// Sweep tunes the lifecycle sweeper.
	Sweep SweepConfig `json:"sweep,omitempty"`

	// Preview configures the preview server.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Publish configures uploads of rendered documents.
	Publish PublishConfig `json:"publish,omitempty"`

	configPath string
}

// SweepConfig tunes the debounced lifecycle sweep.
type SweepConfig struct {
	// DelayMs is the debounce in milliseconds.
	DelayMs int `json:"delayMs,omitempty"`

	// Threshold is the number of pending removals that triggers an
	// immediate sweep.
	Threshold int `json:"threshold,omitempty"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// Metrics exposes a Prometheus endpoint at /metrics.
	Metrics *bool `json:"metrics,omitempty"`
}

// PublishConfig names the S3 location rendered documents are uploaded to.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style bucket addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for snapp.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("S103").
				WithDetail("No snapp.json found in " + filepath.Dir(path))
		}
		return nil, errors.New("S100").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("S100").
			WithDetail("Failed to parse snapp.json: " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("S100").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("S100").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Document == "" {
		c.Document = DefaultDocument
	}
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Sweep.DelayMs == 0 {
		c.Sweep.DelayMs = DefaultSweepDelayMs
	}
	if c.Sweep.Threshold == 0 {
		c.Sweep.Threshold = DefaultSweepThreshold
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Sweep.DelayMs < 0 || c.Sweep.Threshold < 0 {
		return errors.New("S101").
			WithDetailf("sweep.delayMs=%d sweep.threshold=%d", c.Sweep.DelayMs, c.Sweep.Threshold)
	}
	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return errors.New("S102").
			WithDetailf("preview.port %d is outside 1-65535", c.Preview.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// ValidatePublish checks the settings required to publish.
func (c *Config) ValidatePublish() error {
	if c.Publish.Bucket == "" || c.Publish.Region == "" {
		return errors.New("S105").
			WithDetailf("bucket=%q region=%q", c.Publish.Bucket, c.Publish.Region)
	}
	return nil
}

// SweepDelay returns the sweep debounce as a duration.
func (c *Config) SweepDelay() time.Duration {
	return time.Duration(c.Sweep.DelayMs) * time.Millisecond
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, errors.New("S104").
			WithDetailf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// MetricsEnabled reports whether the preview server exposes /metrics.
// It defaults to true.
func (c *Config) MetricsEnabled() bool {
	return c.Preview.Metrics == nil || *c.Preview.Metrics
}

// PreviewAddress returns the listen address of the preview server.
func (c *Config) PreviewAddress() string {
	return net.JoinHostPort(c.Preview.Host, strconv.Itoa(c.Preview.Port))
}

// PreviewURL returns the full URL of the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// DocumentPath returns the absolute path of the HTML document.
func (c *Config) DocumentPath() string {
	if filepath.IsAbs(c.Document) {
		return c.Document
	}
	return filepath.Join(c.Dir(), c.Document)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory containing
// snapp.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("S103").
				WithDetail("No snapp.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest project root,
// falling back to defaults when none exists.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "S103") {
			return New(), nil
		}
		return nil, err
	}
	return Load(root)
}
