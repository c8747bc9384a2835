package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sbkvault/sbk/internal/kdf"
	"github.com/sbkvault/sbk/internal/output"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	calTargetDuration string
	calBaselineMemory int
)

// calibrateCmd measures the current machine's Argon2id throughput and
// reports the memory/time cost pair that should take roughly the
// target duration, without running a full generate or recover.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Measure KDF cost parameters for a target duration",
	Long: `Calibrate runs a short series of Argon2id measurements to find the
time-cost iteration count that, at the given memory cost, takes roughly
the target duration on this machine, then snaps both to the values the
bit-packed header can represent.

Example:
  sbk calibrate --target-duration 2s
  sbk calibrate --target-duration 5s --memory-mib 2048`,
	RunE: runCalibrate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateCmd.Flags().StringVar(&calTargetDuration, "target-duration", "", "target derivation duration, e.g. 2s (default: config vault.target_duration)")
	calibrateCmd.Flags().IntVar(&calBaselineMemory, "memory-mib", 0, "KDF memory cost in MiB to hold fixed while calibrating time cost (default: config vault.baseline_memory_mib)")
}

func runCalibrate(cmd *cobra.Command, _ []string) error {
	target := cfg.Vault.TargetDuration
	if calTargetDuration != "" {
		d, err := time.ParseDuration(calTargetDuration)
		if err != nil {
			return sbkerrors.WithDetails(sbkerrors.ErrInvalidScheme, map[string]string{"target-duration": calTargetDuration})
		}
		target = d
	}

	baseline := cfg.Vault.BaselineMemoryMiB
	if calBaselineMemory > 0 {
		baseline = calBaselineMemory
	}

	params, err := kdf.ParamsForDuration(cmd.Context(), baseline, target, kdf.DefaultMaxMeasurementTime)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter != nil && formatter.Format() == output.FormatJSON {
		type result struct {
			MemoryMiB   int    `json:"memory_mib"`
			TimeIters   int    `json:"time_iters"`
			Parallelism int    `json:"parallelism"`
			Target      string `json:"target_duration"`
		}
		return writeJSON(w, result{
			MemoryMiB:   params.MemoryMiB,
			TimeIters:   params.TimeIters,
			Parallelism: params.Parallelism,
			Target:      target.String(),
		})
	}

	out(w, "Calibrated KDF parameters for ~%s:\n", target)
	out(w, "  memory:      %d MiB\n", params.MemoryMiB)
	out(w, "  time_iters:  %d\n", params.TimeIters)
	out(w, "  parallelism: %d\n", params.Parallelism)
	outln(w)
	out(w, "Use with: sbk generate --kdf-m %d --kdf-t %d\n", params.MemoryMiB, params.TimeIters)

	return nil
}
