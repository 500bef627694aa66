// Package config handles configuration parsing for chance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/acolita/chance/internal/adapters/realfs"
	"github.com/acolita/chance/internal/ports"
	"gopkg.in/yaml.v3"
)

// Source names understood by the source registry.
const (
	SourceCrypto    = "crypto"
	SourceURandom   = "urandom"
	SourceRandom    = "random"
	SourceDevice    = "device"
	SourceRdRand    = "rdrand"
	SourceRdSeed    = "rdseed"
	SourceGetrandom = "getrandom"
	SourceChaCha20  = "chacha20"
)

// SourceNames lists every valid source name.
var SourceNames = []string{
	SourceCrypto,
	SourceURandom,
	SourceRandom,
	SourceDevice,
	SourceRdRand,
	SourceRdSeed,
	SourceGetrandom,
	SourceChaCha20,
}

// DefaultConfigPath returns the default config file path:
// $XDG_CONFIG_HOME/chance/config.yaml or ~/.config/chance/config.yaml
func DefaultConfigPath(fsys ...ports.FileSystem) string {
	f := fileSystem(fsys)
	dir := f.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := f.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "chance", "config.yaml")
}

// Config represents the top-level configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// SourceConfig selects and tunes the random source.
type SourceConfig struct {
	Name         string `yaml:"name"`           // one of SourceNames
	DevicePath   string `yaml:"device_path"`    // file read by the "device" source
	NonBlocking  bool   `yaml:"non_blocking"`   // getrandom: fail instead of waiting for entropy
	PanicOnError bool   `yaml:"panic_on_error"` // treat source failures as fatal
	StreamSeed   string `yaml:"stream_seed"`    // source keying chacha20 (default: crypto)
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // "debug", "info", "warn", "error"
	Sanitize bool   `yaml:"sanitize"` // redact key material from logs
}

// ServerConfig bounds what a single MCP tool call may request.
type ServerConfig struct {
	MaxBytes       int `yaml:"max_bytes"`
	MaxItems       int `yaml:"max_items"`
	BytesPerMinute int `yaml:"bytes_per_minute"` // 0 means unlimited
}

// Defaults for unset limits.
const (
	DefaultMaxBytes = 4096
	DefaultMaxItems = 1000
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Name:       SourceCrypto,
			StreamSeed: SourceCrypto,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Sanitize: true,
		},
		Server: ServerConfig{
			MaxBytes: DefaultMaxBytes,
			MaxItems: DefaultMaxItems,
		},
	}
}

// Load loads configuration from a YAML file.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
// A missing file yields the defaults.
func Load(path string, fsys ...ports.FileSystem) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := fileSystem(fsys).ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration and fills in defaults for unset limits.
func (c *Config) Validate() error {
	c.Source.Name = strings.ToLower(strings.TrimSpace(c.Source.Name))
	if c.Source.Name == "" {
		c.Source.Name = SourceCrypto
	}
	if !slices.Contains(SourceNames, c.Source.Name) {
		return fmt.Errorf("unknown source %q (valid: %s)", c.Source.Name, strings.Join(SourceNames, ", "))
	}
	if c.Source.Name == SourceDevice && c.Source.DevicePath == "" {
		return fmt.Errorf("source %q requires device_path", SourceDevice)
	}

	if c.Source.StreamSeed == "" {
		c.Source.StreamSeed = SourceCrypto
	}
	if c.Source.StreamSeed == SourceChaCha20 {
		return fmt.Errorf("stream_seed cannot be %q", SourceChaCha20)
	}
	if !slices.Contains(SourceNames, c.Source.StreamSeed) {
		return fmt.Errorf("unknown stream_seed %q", c.Source.StreamSeed)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}

	if c.Server.MaxBytes <= 0 {
		c.Server.MaxBytes = DefaultMaxBytes
	}
	if c.Server.MaxItems <= 0 {
		c.Server.MaxItems = DefaultMaxItems
	}
	if c.Server.BytesPerMinute < 0 {
		return fmt.Errorf("bytes_per_minute must not be negative")
	}

	return nil
}

// Save writes the configuration to a YAML file.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
func Save(cfg *Config, path string, fsys ...ports.FileSystem) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	f := fileSystem(fsys)
	if err := f.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return f.WriteFile(path, data, 0644)
}

func fileSystem(fsys []ports.FileSystem) ports.FileSystem {
	if len(fsys) > 0 && fsys[0] != nil {
		return fsys[0]
	}
	return realfs.New()
}
