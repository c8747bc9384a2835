package cli

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/kdf"
	"github.com/sbkvault/sbk/internal/metrics"
	"github.com/sbkvault/sbk/internal/output"
	"github.com/sbkvault/sbk/internal/secure"
	"github.com/sbkvault/sbk/internal/vault"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	genWalletName  string
	genSharesetID  string
	genThreshold   int
	genShares      int
	genKDFMemoryM  int
	genKDFTimeT    int
	genTargetDur   string
)

// generateCmd derives a fresh wallet seed from a memorized salt
// phrase and a newly drawn brainkey, splits the salt and brainkey
// together into Shamir shares, and prints every artifact's intcode and mnemonic forms.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new wallet seed and Shamir shares",
	Long: `Generate derives a wallet seed from a memorized salt phrase and a
freshly drawn brainkey, splits the salt and brainkey together into Shamir
shares under the given threshold scheme, and prints the salt, brainkey, and share artifacts
as intcode groups and mnemonic word pairs.

Write every artifact down. The salt phrase must also be memorized or
stored separately; losing it alongside the printed artifacts makes the
seed unrecoverable.

Example:
  sbk generate --wallet-name main --threshold 2 --shares 3`,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genWalletName, "wallet-name", "", "wallet name, mixed into seed derivation (required)")
	generateCmd.Flags().StringVar(&genSharesetID, "shareset-id", "default", "identifier mixed into the deterministic share-coefficient derivation")
	generateCmd.Flags().IntVar(&genThreshold, "threshold", 0, "number of shares required to recover (default: config vault.default_threshold)")
	generateCmd.Flags().IntVar(&genShares, "shares", 0, "total number of shares to generate (default: config vault.default_shares)")
	generateCmd.Flags().IntVar(&genKDFMemoryM, "kdf-m", 0, "KDF memory cost in MiB (default: calibrated)")
	generateCmd.Flags().IntVar(&genKDFTimeT, "kdf-t", 0, "KDF time cost in iterations (default: calibrated)")
	generateCmd.Flags().StringVar(&genTargetDur, "target-duration", "", "calibration target duration, e.g. 2s (default: config vault.target_duration)")
	_ = generateCmd.MarkFlagRequired("wallet-name")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	vcfg := vault.Config{
		RawSaltLen:         cfg.Vault.RawSaltLen,
		RawBrainkeyLen:     cfg.Vault.RawBrainkeyLen,
		EntropyWaitTimeout: cfg.Security.EntropyWaitTimeout,
	}

	threshold := genThreshold
	if threshold == 0 {
		threshold = cfg.Vault.DefaultThreshold
	}
	shares := genShares
	if shares == 0 {
		shares = cfg.Vault.DefaultShares
	}

	params, err := resolveKDFParams(ctx, genKDFMemoryM, genKDFTimeT, genTargetDur)
	if err != nil {
		return err
	}

	saltPhrase, err := promptSaltPhrase(true)
	if err != nil {
		return err
	}
	defer secure.Zero(saltPhrase)

	in := vault.GenerateInput{
		SaltPhrase: string(saltPhrase),
		WalletName: genWalletName,
		SharesetID: genSharesetID,
		Threshold:  threshold,
		Shares:     shares,
		KDFParams:  params,
		Progress:   progressPrinter(cmd),
	}

	result, err := vault.Generate(ctx, vcfg, in, rand.Reader)
	metrics.Global.RecordGenerateOp(err)
	if err != nil {
		return err
	}
	defer secure.Zero(result.Seed)
	defer secure.Zero(result.Brainkey.Body)

	w := cmd.OutOrStdout()
	outln(w, "\nSalt (write this down, and remember the salt phrase):")
	printArtifact(w, result.Salt)

	outln(w, "\nBrainkey:")
	printArtifact(w, result.Brainkey)

	for _, share := range result.Shares {
		outln(w, fmt.Sprintf("\nShare %d of %d (x=%d):", share.X, shares, share.X))
		printArtifact(w, share.Artifact)
	}

	outln(w, fmt.Sprintf("\nWallet seed derived (%d bytes); store downstream wallet software's own backup separately.", len(result.Seed)))

	return nil
}

func printArtifact(w io.Writer, a vault.Artifact) {
	table := output.NewTable("#", "Intcode", "Words")
	table.SetSeparator("  ")
	for i, group := range a.Intcodes {
		pair := "--"
		if i*2+1 < len(a.Mnemonic) {
			pair = fmt.Sprintf("%s %s", a.Mnemonic[i*2], a.Mnemonic[i*2+1])
		}
		table.AddRow(fmt.Sprintf("%2d", i+1), group, pair)
	}
	_ = table.Render(w)
}

func progressPrinter(cmd *cobra.Command) func(stage string, pct float64) {
	if !cfg.Output.Verbose {
		return nil
	}
	w := cmd.ErrOrStderr()
	return func(stage string, pct float64) {
		out(w, "\r%s: %5.1f%%", stage, pct)
		if pct >= 100 {
			outln(w)
		}
	}
}

// resolveKDFParams picks explicit --kdf-m/--kdf-t flags if given,
// otherwise calibrates against the configured or flagged target
// duration.
func resolveKDFParams(ctx context.Context, memoryMiB, timeIters int, targetDurFlag string) (kdf.Params, error) {
	if memoryMiB > 0 && timeIters > 0 {
		return kdf.Params{Parallelism: header.KDFParallelism, MemoryMiB: memoryMiB, TimeIters: timeIters}, nil
	}

	target := cfg.Vault.TargetDuration
	if targetDurFlag != "" {
		d, err := time.ParseDuration(targetDurFlag)
		if err != nil {
			return kdf.Params{}, sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"target-duration": targetDurFlag})
		}
		target = d
	}

	baseline := cfg.Vault.BaselineMemoryMiB
	if memoryMiB > 0 {
		baseline = memoryMiB
	}

	p, err := kdf.ParamsForDuration(ctx, baseline, target, kdf.DefaultMaxMeasurementTime)
	if err != nil {
		return kdf.Params{}, err
	}
	if timeIters > 0 {
		p.TimeIters = timeIters
	}
	return p, nil
}
