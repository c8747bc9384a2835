package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbkvault/sbk/internal/config"
	"github.com/sbkvault/sbk/internal/output"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

// errUnknownConfigKey reports that a dot-path does not name a known
// configuration field. It carries no detail map of its own; callers
// attach the offending path via sbkerrors.WithDetails.
var errUnknownConfigKey = sbkerrors.New("UNKNOWN_CONFIG_KEY", "unknown configuration key")

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify sbk configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.sbk/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.

Example:
  sbk config init
  sbk config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current configuration settings.

Example:
  sbk config show
  sbk config show -o json`,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.

Examples:
  sbk config get vault.default_threshold
  sbk config get output.default_format
  sbk config get logging.level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.
The configuration file will be updated immediately.

Examples:
  sbk config set vault.default_threshold 3
  sbk config set output.default_format json
  sbk config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return sbkerrors.WithSuggestion(
			sbkerrors.New("CONFIG_EXISTS", "configuration already exists"),
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	// Ensure directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Create default config
	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	// Write config file
	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - vault.default_threshold / vault.default_shares: default Shamir scheme")
	outln(w, "  - vault.baseline_memory_mib / vault.target_duration: KDF cost calibration")
	outln(w, "  - output.default_format: Output format (text/json)")
	outln(w, "  - logging.level: Log level (off/error/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	format := formatter.Format()

	if format == output.FormatJSON {
		return displayConfigJSON(w, cfg)
	}

	return displayConfigText(w, cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	value, err := getConfigValue(cfg, path)
	if err != nil {
		return sbkerrors.WithSuggestion(err, configSuggestion(path))
	}

	w := cmd.OutOrStdout()
	outln(w, value)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	value := args[1]

	// Validate the path exists
	if _, err := getConfigValue(cfg, path); err != nil {
		return sbkerrors.WithSuggestion(err, configSuggestion(path))
	}

	// Load current config from file
	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		// If file doesn't exist, start with defaults
		currentCfg = config.Defaults()
	}

	// Update the value
	if err := setConfigValue(currentCfg, path, value); err != nil {
		return fmt.Errorf("setting config value: %w", err)
	}

	// Save updated config
	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Set %s = %s\n", path, value)

	return nil
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, path string) (string, error) {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		switch parts[0] {
		case "home":
			return c.Home, nil
		default:
			return "", sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"key": parts[0]})
		}
	case 2:
		switch parts[0] {
		case "vault":
			return getVaultValue(c, parts[1])
		case "security":
			return getSecurityValue(c, parts[1])
		case "output":
			return getOutputValue(c, parts[1])
		case "logging":
			return getLoggingValue(c, parts[1])
		default:
			return "", sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": parts[0]})
		}
	default:
		return "", sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"path": path})
	}
}

func getVaultValue(c *config.Config, key string) (string, error) {
	switch key {
	case "raw_salt_len":
		return strconv.Itoa(c.Vault.RawSaltLen), nil
	case "raw_brainkey_len":
		return strconv.Itoa(c.Vault.RawBrainkeyLen), nil
	case "default_threshold":
		return strconv.Itoa(c.Vault.DefaultThreshold), nil
	case "default_shares":
		return strconv.Itoa(c.Vault.DefaultShares), nil
	case "baseline_memory_mib":
		return strconv.Itoa(c.Vault.BaselineMemoryMiB), nil
	case "target_duration":
		return c.Vault.TargetDuration.String(), nil
	default:
		return "", sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "vault", "key": key})
	}
}

func getSecurityValue(c *config.Config, key string) (string, error) {
	switch key {
	case "memory_lock":
		return strconv.FormatBool(c.Security.MemoryLock), nil
	case "entropy_wait_timeout":
		return c.Security.EntropyWaitTimeout.String(), nil
	case "recovery_attempt_burst":
		return strconv.Itoa(c.Security.RecoveryAttemptBurst), nil
	case "recovery_attempt_rate_per_sec":
		return strconv.FormatFloat(c.Security.RecoveryAttemptRate, 'g', -1, 64), nil
	default:
		return "", sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "security", "key": key})
	}
}

func getOutputValue(c *config.Config, key string) (string, error) {
	switch key {
	case "default_format":
		return c.Output.DefaultFormat, nil
	case "verbose":
		return strconv.FormatBool(c.Output.Verbose), nil
	case "color":
		return c.Output.Color, nil
	default:
		return "", sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "output", "key": key})
	}
}

func getLoggingValue(c *config.Config, key string) (string, error) {
	switch key {
	case "level":
		return c.Logging.Level, nil
	case "file":
		return c.Logging.File, nil
	default:
		return "", sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "logging", "key": key})
	}
}

// setConfigValue sets a value in the config using dot notation.
func setConfigValue(c *config.Config, path, value string) error {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		switch parts[0] {
		case "home":
			c.Home = value
			return nil
		default:
			return sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"key": parts[0]})
		}
	case 2:
		switch parts[0] {
		case "vault":
			return setVaultValue(c, parts[1], value)
		case "security":
			return setSecurityValue(c, parts[1], value)
		case "output":
			return setOutputValue(c, parts[1], value)
		case "logging":
			return setLoggingValue(c, parts[1], value)
		default:
			return sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": parts[0]})
		}
	default:
		return sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"path": path})
	}
}

func setVaultValue(c *config.Config, key, value string) error {
	switch key {
	case "raw_salt_len":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "positive integer"})
		}
		c.Vault.RawSaltLen = n
		return nil
	case "raw_brainkey_len":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "positive integer"})
		}
		c.Vault.RawBrainkeyLen = n
		return nil
	case "default_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "positive integer"})
		}
		c.Vault.DefaultThreshold = n
		return nil
	case "default_shares":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "positive integer"})
		}
		c.Vault.DefaultShares = n
		return nil
	case "baseline_memory_mib":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "positive integer"})
		}
		c.Vault.BaselineMemoryMiB = n
		return nil
	case "target_duration":
		d, err := time.ParseDuration(value)
		if err != nil {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "duration, e.g. 2s"})
		}
		c.Vault.TargetDuration = d
		return nil
	default:
		return sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "vault", "key": key})
	}
}

func setSecurityValue(c *config.Config, key, value string) error {
	switch key {
	case "memory_lock":
		c.Security.MemoryLock = value == "true"
		return nil
	case "entropy_wait_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "duration, e.g. 2s"})
		}
		c.Security.EntropyWaitTimeout = d
		return nil
	case "recovery_attempt_burst":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "positive integer"})
		}
		c.Security.RecoveryAttemptBurst = n
		return nil
	case "recovery_attempt_rate_per_sec":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "positive number"})
		}
		c.Security.RecoveryAttemptRate = f
		return nil
	default:
		return sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "security", "key": key})
	}
}

func setOutputValue(c *config.Config, key, value string) error {
	switch key {
	case "default_format":
		if value != "text" && value != "json" && value != "auto" {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "text, json, or auto"})
		}
		c.Output.DefaultFormat = value
		return nil
	case "verbose":
		c.Output.Verbose = value == "true"
		return nil
	case "color":
		if value != "auto" && value != "always" && value != "never" {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "auto, always, or never"})
		}
		c.Output.Color = value
		return nil
	default:
		return sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "output", "key": key})
	}
}

func setLoggingValue(c *config.Config, key, value string) error {
	switch key {
	case "level":
		validLevels := []string{"off", "error", "debug"}
		for _, l := range validLevels {
			if value == l {
				c.Logging.Level = value
				return nil
			}
		}
		return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"value": value, "valid": "off, error, or debug"})
	case "file":
		c.Logging.File = value
		return nil
	default:
		return sbkerrors.WithDetails(errUnknownConfigKey, map[string]string{"section": "logging", "key": key})
	}
}

// displayConfigText shows the config in text format.
func displayConfigText(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	outln(w)
	outln(w, "  Vault:")
	out(w, "    raw_salt_len: %d\n", c.Vault.RawSaltLen)
	out(w, "    raw_brainkey_len: %d\n", c.Vault.RawBrainkeyLen)
	out(w, "    default_threshold: %d\n", c.Vault.DefaultThreshold)
	out(w, "    default_shares: %d\n", c.Vault.DefaultShares)
	out(w, "    baseline_memory_mib: %d\n", c.Vault.BaselineMemoryMiB)
	out(w, "    target_duration: %s\n", c.Vault.TargetDuration)
	outln(w)
	outln(w, "  Security:")
	out(w, "    memory_lock: %t\n", c.Security.MemoryLock)
	out(w, "    entropy_wait_timeout: %s\n", c.Security.EntropyWaitTimeout)
	out(w, "    recovery_attempt_burst: %d\n", c.Security.RecoveryAttemptBurst)
	out(w, "    recovery_attempt_rate_per_sec: %g\n", c.Security.RecoveryAttemptRate)
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    verbose: %t\n", c.Output.Verbose)
	out(w, "    color: %s\n", c.Output.Color)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.Logging.File)

	return nil
}

// displayConfigJSON shows the config in JSON format.
func displayConfigJSON(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	type vaultJSON struct {
		RawSaltLen        int    `json:"raw_salt_len"`
		RawBrainkeyLen    int    `json:"raw_brainkey_len"`
		DefaultThreshold  int    `json:"default_threshold"`
		DefaultShares     int    `json:"default_shares"`
		BaselineMemoryMiB int    `json:"baseline_memory_mib"`
		TargetDuration    string `json:"target_duration"`
	}
	type securityJSON struct {
		MemoryLock           bool    `json:"memory_lock"`
		EntropyWaitTimeout   string  `json:"entropy_wait_timeout"`
		RecoveryAttemptBurst int     `json:"recovery_attempt_burst"`
		RecoveryAttemptRate  float64 `json:"recovery_attempt_rate_per_sec"`
	}
	type configJSON struct {
		Version  int          `json:"version"`
		Home     string       `json:"home"`
		Vault    vaultJSON    `json:"vault"`
		Security securityJSON `json:"security"`
		Output   struct {
			DefaultFormat string `json:"default_format"`
			Color         string `json:"color"`
			Verbose       bool   `json:"verbose"`
		} `json:"output"`
		Logging struct {
			Level string `json:"level"`
			File  string `json:"file"`
		} `json:"logging"`
	}

	outCfg := configJSON{
		Version: c.Version,
		Home:    c.Home,
		Vault: vaultJSON{
			RawSaltLen:        c.Vault.RawSaltLen,
			RawBrainkeyLen:    c.Vault.RawBrainkeyLen,
			DefaultThreshold:  c.Vault.DefaultThreshold,
			DefaultShares:     c.Vault.DefaultShares,
			BaselineMemoryMiB: c.Vault.BaselineMemoryMiB,
			TargetDuration:    c.Vault.TargetDuration.String(),
		},
		Security: securityJSON{
			MemoryLock:           c.Security.MemoryLock,
			EntropyWaitTimeout:   c.Security.EntropyWaitTimeout.String(),
			RecoveryAttemptBurst: c.Security.RecoveryAttemptBurst,
			RecoveryAttemptRate:  c.Security.RecoveryAttemptRate,
		},
	}
	outCfg.Output.DefaultFormat = c.Output.DefaultFormat
	outCfg.Output.Color = c.Output.Color
	outCfg.Output.Verbose = c.Output.Verbose
	outCfg.Logging.Level = c.Logging.Level
	outCfg.Logging.File = c.Logging.File

	return writeJSON(w, outCfg)
}
