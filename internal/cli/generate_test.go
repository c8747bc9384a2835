package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbkvault/sbk/internal/config"
	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/vault"
)

func TestResolveKDFParams_ExplicitFlags(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Defaults()

	p, err := resolveKDFParams(context.Background(), 64, 3, "")
	require.NoError(t, err)
	assert.Equal(t, 64, p.MemoryMiB)
	assert.Equal(t, 3, p.TimeIters)
	assert.Equal(t, header.KDFParallelism, p.Parallelism)
}

func TestResolveKDFParams_InvalidTargetDuration(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Defaults()

	_, err := resolveKDFParams(context.Background(), 0, 0, "not-a-duration")
	require.Error(t, err)
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	a := vault.Artifact{
		Intcodes: []string{"042-198", "337-004"},
		Mnemonic: []string{"apple", "zebra", "crane", "dusty"},
	}

	printArtifact(&buf, a)

	out := buf.String()
	assert.Contains(t, out, "042-198")
	assert.Contains(t, out, "apple zebra")
	assert.Contains(t, out, "337-004")
	assert.Contains(t, out, "crane dusty")
}

func TestPrintArtifact_MissingMnemonicPair(t *testing.T) {
	var buf bytes.Buffer
	a := vault.Artifact{
		Intcodes: []string{"042-198"},
		Mnemonic: []string{"apple"},
	}

	printArtifact(&buf, a)
	assert.Contains(t, buf.String(), "--")
}

func TestProgressPrinter_NonVerbose(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Defaults()
	cfg.Output.Verbose = false

	cmd := &cobra.Command{Use: "test"}
	assert.Nil(t, progressPrinter(cmd))
}

func TestProgressPrinter_Verbose(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Defaults()
	cfg.Output.Verbose = true

	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cmd.SetErr(&buf)

	fn := progressPrinter(cmd)
	require.NotNil(t, fn)
	fn("deriving", 50.0)
	fn("deriving", 100.0)

	assert.Contains(t, buf.String(), "deriving")
}
