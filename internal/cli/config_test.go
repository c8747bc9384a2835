package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbkvault/sbk/internal/config"
	"github.com/sbkvault/sbk/internal/output"
)

func TestGetConfigValue(t *testing.T) {
	testCfg := config.Defaults()
	testCfg.Home = "/test/home"
	testCfg.Vault.DefaultThreshold = 3
	testCfg.Vault.DefaultShares = 5
	testCfg.Output.DefaultFormat = "json"
	testCfg.Output.Verbose = true
	testCfg.Output.Color = "always"
	testCfg.Logging.Level = "debug"
	testCfg.Logging.File = "/var/log/sbk.log"

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "home", path: "home", want: "/test/home"},
		{name: "unknown single key", path: "unknown", wantErr: true},

		{name: "vault.default_threshold", path: "vault.default_threshold", want: "3"},
		{name: "vault.default_shares", path: "vault.default_shares", want: "5"},
		{name: "vault.unknown", path: "vault.unknown", wantErr: true},

		{name: "security.memory_lock", path: "security.memory_lock", want: "true"},
		{name: "security.unknown", path: "security.unknown", wantErr: true},

		{name: "output.default_format", path: "output.default_format", want: "json"},
		{name: "output.verbose true", path: "output.verbose", want: "true"},
		{name: "output.color", path: "output.color", want: "always"},
		{name: "output.unknown", path: "output.unknown", wantErr: true},

		{name: "logging.level", path: "logging.level", want: "debug"},
		{name: "logging.file", path: "logging.file", want: "/var/log/sbk.log"},
		{name: "logging.unknown", path: "logging.unknown", wantErr: true},

		{name: "unknown.key", path: "unknown.key", wantErr: true},
		{name: "too many parts", path: "a.b.c", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := getConfigValue(testCfg, tc.path)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		value   string
		wantErr bool
		check   func(t *testing.T, c *config.Config)
	}{
		{
			name:  "home",
			path:  "home",
			value: "/new/home",
			check: func(t *testing.T, c *config.Config) { assert.Equal(t, "/new/home", c.Home) },
		},
		{
			name:  "vault.default_threshold",
			path:  "vault.default_threshold",
			value: "4",
			check: func(t *testing.T, c *config.Config) { assert.Equal(t, 4, c.Vault.DefaultThreshold) },
		},
		{
			name:    "vault.default_threshold invalid",
			path:    "vault.default_threshold",
			value:   "not-a-number",
			wantErr: true,
		},
		{
			name:  "vault.target_duration",
			path:  "vault.target_duration",
			value: "5s",
			check: func(t *testing.T, c *config.Config) { assert.Equal(t, "5s", c.Vault.TargetDuration.String()) },
		},
		{
			name:    "vault.target_duration invalid",
			path:    "vault.target_duration",
			value:   "not-a-duration",
			wantErr: true,
		},
		{
			name:  "security.memory_lock",
			path:  "security.memory_lock",
			value: "false",
			check: func(t *testing.T, c *config.Config) { assert.False(t, c.Security.MemoryLock) },
		},
		{
			name:  "output.default_format",
			path:  "output.default_format",
			value: "json",
			check: func(t *testing.T, c *config.Config) { assert.Equal(t, "json", c.Output.DefaultFormat) },
		},
		{
			name:    "output.default_format invalid",
			path:    "output.default_format",
			value:   "xml",
			wantErr: true,
		},
		{
			name:  "logging.level",
			path:  "logging.level",
			value: "debug",
			check: func(t *testing.T, c *config.Config) { assert.Equal(t, "debug", c.Logging.Level) },
		},
		{
			name:    "logging.level invalid",
			path:    "logging.level",
			value:   "verbose",
			wantErr: true,
		},
		{
			name:    "unknown path",
			path:    "unknown.key",
			value:   "x",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := config.Defaults()
			err := setConfigValue(c, tc.path, tc.value)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, c)
			}
		})
	}
}

func TestDisplayConfigText(t *testing.T) {
	c := config.Defaults()
	var buf bytes.Buffer

	err := displayConfigText(&buf, c)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Vault:")
	assert.Contains(t, out, "Security:")
	assert.Contains(t, out, "Output:")
	assert.Contains(t, out, "Logging:")
}

func TestDisplayConfigJSON(t *testing.T) {
	c := config.Defaults()
	var buf bytes.Buffer

	err := displayConfigJSON(&buf, c)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"default_threshold"`)
}

func TestRunConfigInit_Success(t *testing.T) {
	tmpDir := t.TempDir()
	cfg = config.Defaults()
	cfg.Home = tmpDir
	formatter = output.NewFormatter(output.FormatText, &bytes.Buffer{})

	cmd := configInitCmd
	cmd.SetOut(&bytes.Buffer{})
	configForce = false

	err := runConfigInit(cmd, nil)
	require.NoError(t, err)

	_, statErr := os.Stat(config.Path(tmpDir))
	require.NoError(t, statErr)
}

func TestRunConfigInit_AlreadyExistsWithoutForce(t *testing.T) {
	tmpDir := t.TempDir()
	cfg = config.Defaults()
	cfg.Home = tmpDir
	formatter = output.NewFormatter(output.FormatText, &bytes.Buffer{})

	require.NoError(t, config.Save(config.Defaults(), config.Path(tmpDir)))

	cmd := configInitCmd
	cmd.SetOut(&bytes.Buffer{})
	configForce = false

	err := runConfigInit(cmd, nil)
	require.Error(t, err)
}

func TestRunConfigGet_InvalidPath(t *testing.T) {
	cfg = config.Defaults()
	cmd := configGetCmd
	cmd.SetOut(&bytes.Buffer{})

	err := runConfigGet(cmd, []string{"bogus.path"})
	require.Error(t, err)
}

func TestRunConfigSet_ValidValue(t *testing.T) {
	tmpDir := t.TempDir()
	cfg = config.Defaults()
	cfg.Home = tmpDir

	cmd := configSetCmd
	cmd.SetOut(&bytes.Buffer{})

	err := runConfigSet(cmd, []string{"vault.default_threshold", "4"})
	require.NoError(t, err)

	saved, err := config.Load(filepath.Join(tmpDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Vault.DefaultThreshold)
}
