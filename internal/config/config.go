// Package config provides configuration management for the sbk CLI.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sbkvault/sbk/internal/fileutil"
)

// Config represents the application configuration.
type Config struct {
	Version  int           `yaml:"version"`
	Home     string        `yaml:"home"`
	Vault    VaultConfig   `yaml:"vault"`
	Security SecurityConfig `yaml:"security"`
	Output   OutputConfig  `yaml:"output"`
	Logging  LoggingConfig `yaml:"logging"`

	// Warnings collects non-fatal problems noticed while applying
	// environment overrides, surfaced by the CLI after the command it
	// ran.
	Warnings []string `yaml:"-"`
}

// VaultConfig defines the default cost and scheme parameters `sbk
// generate` uses when a flag isn't given explicitly.
type VaultConfig struct {
	RawSaltLen        int           `yaml:"raw_salt_len"`
	RawBrainkeyLen    int           `yaml:"raw_brainkey_len"`
	DefaultThreshold  int           `yaml:"default_threshold"`
	DefaultShares     int           `yaml:"default_shares"`
	BaselineMemoryMiB int           `yaml:"baseline_memory_mib"`
	TargetDuration    time.Duration `yaml:"target_duration"`
}

// SecurityConfig defines security-relevant settings.
type SecurityConfig struct {
	MemoryLock           bool          `yaml:"memory_lock"`
	EntropyWaitTimeout   time.Duration `yaml:"entropy_wait_timeout"`
	RecoveryAttemptBurst int           `yaml:"recovery_attempt_burst"`
	RecoveryAttemptRate  float64       `yaml:"recovery_attempt_rate_per_sec"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file. The write is
// atomic: a crash or power loss mid-write leaves the previous config
// file intact rather than a truncated one.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the sbk home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// GetSecurity returns the security configuration.
func (c *Config) GetSecurity() SecurityConfig {
	return c.Security
}

// DefaultHome returns the default sbk home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sbk"
	}
	return filepath.Join(home, ".sbk")
}
