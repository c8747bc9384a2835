package config

import "time"

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    DefaultHome(),
		Vault: VaultConfig{
			RawSaltLen:        13,
			RawBrainkeyLen:    8,
			DefaultThreshold:  2,
			DefaultShares:     3,
			BaselineMemoryMiB: 1024,
			TargetDuration:    2 * time.Second,
		},
		Security: SecurityConfig{
			MemoryLock:           true,
			EntropyWaitTimeout:   2 * time.Second,
			RecoveryAttemptBurst: 5,
			RecoveryAttemptRate:  0.5,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
		},
	}
}
