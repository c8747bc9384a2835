package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/metrics"
	"github.com/sbkvault/sbk/internal/secure"
	"github.com/sbkvault/sbk/internal/vault"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	recWalletName string
	recShareCount int
)

// recoverCmd is the parent command for the two recovery paths: from
// the original salt phrase and brainkey, or from a quorum of Shamir
// shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover a wallet seed from saved artifacts",
	Long:  `Recover re-derives a wallet seed from either a salt and brainkey, or a quorum of Shamir shares.`,
}

// recoverSaltBrainkeyCmd recovers directly from the salt and brainkey
// artifacts, without touching Shamir at all.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var recoverSaltBrainkeyCmd = &cobra.Command{
	Use:   "salt-brainkey",
	Short: "Recover using the salt and brainkey artifacts",
	Long: `Recover re-derives the wallet seed from the salt artifact (decoded to
read its header and recover the KDF parameters) and the brainkey artifact,
prompting interactively for each intcode group or mnemonic word pair.

Example:
  sbk recover salt-brainkey --wallet-name main`,
	RunE: runRecoverSaltBrainkey,
}

// recoverSharesCmd recovers by rejoining a quorum of Shamir shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var recoverSharesCmd = &cobra.Command{
	Use:   "shares",
	Short: "Recover using a quorum of Shamir shares",
	Long: `Recover rejoins the given number of share artifacts back into the
master key, splits it into the raw salt and raw brainkey, and re-derives
the wallet seed, prompting interactively for each share's groups.

Example:
  sbk recover shares --wallet-name main --count 2`,
	RunE: runRecoverShares,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(recoverCmd)
	recoverCmd.AddCommand(recoverSaltBrainkeyCmd)
	recoverCmd.AddCommand(recoverSharesCmd)

	recoverCmd.PersistentFlags().StringVar(&recWalletName, "wallet-name", "", "wallet name used during generation (required)")
	_ = recoverCmd.MarkPersistentFlagRequired("wallet-name")

	recoverSharesCmd.Flags().IntVar(&recShareCount, "count", 0, "number of shares to enter (default: config vault.default_threshold)")
}

// groupCount returns how many intcode groups a bodyLen-byte artifact
// body encodes to, matching intcode.EncodeMessage's padding rule.
func groupCount(bodyLen int) int {
	totalLen := bodyLen * 2
	for totalLen%4 != 0 {
		totalLen++
	}
	return totalLen / 2
}

// promptArtifactGroups interactively collects one vault.GroupEntry per
// group of an artifact with n groups, accepting either a six-digit
// intcode or a two-word mnemonic pair (blank skips the group, which
// the underlying Reed-Solomon decode tolerates up to a point).
func promptArtifactGroups(label string, n int) ([]vault.GroupEntry, error) {
	entries := make([]vault.GroupEntry, n)
	outln(os.Stderr, fmt.Sprintf("\n%s: enter %d groups (intcode like 012-345, or two words; blank to skip):", label, n))

	for i := 0; i < n; i++ {
		line, err := promptGroupLine(fmt.Sprintf("  group %d", i+1))
		if err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			g := fields[0]
			entries[i].Intcode = &g
		case 2:
			entries[i].Words = &[2]string{strings.ToLower(fields[0]), strings.ToLower(fields[1])}
		default:
			return nil, sbkerrors.WithDetails(sbkerrors.ErrUnknownWord, map[string]string{"group": strconv.Itoa(i + 1)})
		}
	}
	return entries, nil
}

func runRecoverSaltBrainkey(cmd *cobra.Command, _ []string) error {
	if err := waitRecoveryLimiter(cmd); err != nil {
		return err
	}

	saltBodyLen := header.SaltLen + cfg.Vault.RawSaltLen
	brainkeyBodyLen := header.BrainkeyLen + cfg.Vault.RawBrainkeyLen

	saltEntries, err := promptArtifactGroups("Salt", groupCount(saltBodyLen))
	if err != nil {
		return err
	}
	brainkeyEntries, err := promptArtifactGroups("Brainkey", groupCount(brainkeyBodyLen))
	if err != nil {
		return err
	}

	seed, err := vault.RecoverFromSaltBrainkey(cmd.Context(), saltEntries, brainkeyEntries, saltBodyLen, brainkeyBodyLen, recWalletName, progressPrinterPlain(cmd))
	metrics.Global.RecordRecoverOp(err)
	if err != nil {
		return err
	}
	defer secure.Zero(seed)

	w := cmd.OutOrStdout()
	outln(w, fmt.Sprintf("\nWallet seed recovered (%d bytes).", len(seed)))
	return nil
}

func runRecoverShares(cmd *cobra.Command, _ []string) error {
	if err := waitRecoveryLimiter(cmd); err != nil {
		return err
	}

	count := recShareCount
	if count == 0 {
		count = cfg.Vault.DefaultThreshold
	}

	shareBodyLen := header.ShareLen + cfg.Vault.RawSaltLen + cfg.Vault.RawBrainkeyLen
	shareEntries := make([][]vault.GroupEntry, count)
	for i := 0; i < count; i++ {
		entries, err := promptArtifactGroups(fmt.Sprintf("Share %d/%d", i+1, count), groupCount(shareBodyLen))
		if err != nil {
			return err
		}
		shareEntries[i] = entries
	}

	vcfg := vault.Config{RawSaltLen: cfg.Vault.RawSaltLen, RawBrainkeyLen: cfg.Vault.RawBrainkeyLen}
	seed, err := vault.RecoverFromShares(cmd.Context(), vcfg, shareEntries, shareBodyLen, recWalletName, progressPrinterPlain(cmd))
	metrics.Global.RecordRecoverOp(err)
	if err != nil {
		return err
	}
	defer secure.Zero(seed)

	w := cmd.OutOrStdout()
	outln(w, fmt.Sprintf("\nWallet seed recovered (%d bytes).", len(seed)))
	return nil
}

// waitRecoveryLimiter blocks until the command context's recovery
// rate limiter allows another attempt, returning ErrCancelled if the
// command's context is done first.
func waitRecoveryLimiter(cmd *cobra.Command) error {
	if cmdCtx == nil || cmdCtx.RecoveryLimiter == nil {
		return nil
	}
	if err := cmdCtx.RecoveryLimiter.Wait(cmd.Context()); err != nil {
		return sbkerrors.Wrap(sbkerrors.ErrCancelled, "waiting for recovery attempt slot: %v", err)
	}
	return nil
}

func progressPrinterPlain(cmd *cobra.Command) func(pct float64) {
	if !cfg.Output.Verbose {
		return nil
	}
	w := cmd.ErrOrStderr()
	return func(pct float64) {
		out(w, "\rderiving seed: %5.1f%%", pct)
		if pct >= 100 {
			outln(w)
		}
	}
}
