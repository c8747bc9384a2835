package cli

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbkvault/sbk/internal/config"
	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/output"
)

func TestRunParamsShow_SaltHeader(t *testing.T) {
	origCfg, origFmt := cfg, formatter
	defer func() { cfg, formatter = origCfg, origFmt }()
	cfg = config.Defaults()

	p, err := header.NewParameters(2048, 8, 0, 2, 2)
	require.NoError(t, err)
	raw, err := header.Encode(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	formatter = output.NewFormatter(output.FormatText, &buf)

	cmd := paramsShowCmd
	cmd.SetOut(&buf)

	err = runParamsShow(cmd, []string{hex.EncodeToString(raw)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "kdf_memory_mib")
	assert.Contains(t, out, "kdf_time_iters")
}

func TestRunParamsShow_ShareHeader(t *testing.T) {
	origCfg, origFmt := cfg, formatter
	defer func() { cfg, formatter = origCfg, origFmt }()
	cfg = config.Defaults()

	p, err := header.NewParameters(2048, 8, 2, 3, 3)
	require.NoError(t, err)
	raw, err := header.Encode(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	formatter = output.NewFormatter(output.FormatText, &buf)

	cmd := paramsShowCmd
	cmd.SetOut(&buf)

	err = runParamsShow(cmd, []string{hex.EncodeToString(raw)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sss_x:")
	assert.Contains(t, out, "sss_t:")
}

func TestRunParamsShow_InvalidHex(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Defaults()

	cmd := paramsShowCmd
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runParamsShow(cmd, []string{"not-hex"})
	require.Error(t, err)
}

func TestRunParamsShow_WrongLength(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Defaults()

	cmd := paramsShowCmd
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runParamsShow(cmd, []string{"aabbccdd"})
	require.Error(t, err)
}

func TestRunParamsShow_JSON(t *testing.T) {
	origCfg, origFmt := cfg, formatter
	defer func() { cfg, formatter = origCfg, origFmt }()
	cfg = config.Defaults()

	p, err := header.NewParameters(2048, 8, 0, 2, 2)
	require.NoError(t, err)
	raw, err := header.Encode(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	formatter = output.NewFormatter(output.FormatJSON, &buf)

	cmd := &cobra.Command{Use: "show"}
	cmd.SetOut(&buf)

	err = runParamsShow(cmd, []string{hex.EncodeToString(raw)})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"kdf_memory_mib"`)
}
