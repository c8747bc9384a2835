package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvHome              = "SBK_HOME"
	EnvDefaultThreshold  = "SBK_DEFAULT_THRESHOLD"
	EnvDefaultShares     = "SBK_DEFAULT_SHARES"
	EnvKDFMemoryMiB      = "SBK_KDF_MEMORY_MIB"
	EnvKDFTargetDuration = "SBK_KDF_TARGET_DURATION"
	EnvOutputFormat      = "SBK_OUTPUT_FORMAT"
	EnvVerbose           = "SBK_VERBOSE"
	EnvLogLevel          = "SBK_LOG_LEVEL"
	EnvNoColor           = "NO_COLOR"
	EnvMemoryLock        = "SBK_MEMORY_LOCK"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvDefaultThreshold); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Vault.DefaultThreshold = n
		} else {
			cfg.Warnings = append(cfg.Warnings, "SBK_DEFAULT_THRESHOLD: not a positive integer, ignoring")
		}
	}

	if v := os.Getenv(EnvDefaultShares); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Vault.DefaultShares = n
		} else {
			cfg.Warnings = append(cfg.Warnings, "SBK_DEFAULT_SHARES: not a positive integer, ignoring")
		}
	}

	if v := os.Getenv(EnvKDFMemoryMiB); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Vault.BaselineMemoryMiB = n
		} else {
			cfg.Warnings = append(cfg.Warnings, "SBK_KDF_MEMORY_MIB: not a positive integer, ignoring")
		}
	}

	if v := os.Getenv(EnvKDFTargetDuration); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Vault.TargetDuration = d
		} else {
			cfg.Warnings = append(cfg.Warnings, "SBK_KDF_TARGET_DURATION: not a valid duration, ignoring")
		}
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	if v := os.Getenv(EnvMemoryLock); v != "" {
		cfg.Security.MemoryLock = parseBool(v)
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
