package cli

import (
	"encoding/hex"
	"errors"

	"github.com/spf13/cobra"

	"github.com/sbkvault/sbk/internal/header"
	"github.com/sbkvault/sbk/internal/output"
	"github.com/sbkvault/sbk/pkg/sbkerrors"
)

// paramsCmd is the parent command for inspecting a raw header.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect a bit-packed parameter header",
}

// paramsShowCmd decodes a header hex string and prints its fields.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var paramsShowCmd = &cobra.Command{
	Use:   "show <header-hex>",
	Short: "Decode and display a header's fields",
	Long: `Show decodes the given hex-encoded header bytes (2 bytes for a salt
header, 3 for a share header) and prints its version, KDF cost
parameters, and, for a share header, its x-coordinate and threshold.

Example:
  sbk params show a010`,
	Args: cobra.ExactArgs(1),
	RunE: runParamsShow,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.AddCommand(paramsShowCmd)
}

func runParamsShow(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return sbkerrors.WithDetails(sbkerrors.ErrUnsupportedVersion, map[string]string{"header": args[0]})
	}

	params, err := header.Decode(raw)
	if err != nil {
		switch {
		case errors.Is(err, header.ErrUnsupportedVersion):
			return sbkerrors.Wrap(sbkerrors.ErrUnsupportedVersion, "%v", err)
		default:
			return sbkerrors.Wrap(sbkerrors.ErrInvalidScheme, "%v", err)
		}
	}

	w := cmd.OutOrStdout()
	if formatter != nil && formatter.Format() == output.FormatJSON {
		type result struct {
			Version      int `json:"version"`
			KDFMemoryMiB int `json:"kdf_memory_mib"`
			KDFTimeIters int `json:"kdf_time_iters"`
			SSSX         int `json:"sss_x,omitempty"`
			SSST         int `json:"sss_t"`
			SSSN         int `json:"sss_n"`
		}
		return writeJSON(w, result{
			Version:      params.Version,
			KDFMemoryMiB: params.KDFMemoryMiB,
			KDFTimeIters: params.KDFTimeIters,
			SSSX:         params.SSSX,
			SSST:         params.SSST,
			SSSN:         params.SSSN,
		})
	}

	out(w, "version:       %d\n", params.Version)
	out(w, "kdf_memory_mib: %d\n", params.KDFMemoryMiB)
	out(w, "kdf_time_iters: %d\n", params.KDFTimeIters)
	if params.SSSX > 0 {
		out(w, "sss_x:         %d\n", params.SSSX)
	}
	out(w, "sss_t:         %d\n", params.SSST)
	out(w, "sss_n:         %d\n", params.SSSN)

	return nil
}
