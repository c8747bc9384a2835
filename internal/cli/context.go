package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/sbkvault/sbk/internal/config"
	"github.com/sbkvault/sbk/internal/output"
)

// contextKey is the type for context keys to avoid collisions.
type contextKey string

// cmdCtxKey is the key for storing CommandContext in cobra's context.
const cmdCtxKey contextKey = "sbk-cmd-ctx"

// SetCmdContext stores the CommandContext in the cobra command's context.
func SetCmdContext(cmd *cobra.Command, ctx *CommandContext) {
	cmd.SetContext(context.WithValue(cmd.Context(), cmdCtxKey, ctx))
}

// GetCmdContext retrieves the CommandContext from the cobra command's context.
// Returns nil if no context is set.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	if cmdCtx, ok := ctx.Value(cmdCtxKey).(*CommandContext); ok {
		return cmdCtx
	}
	return nil
}

// CommandContext holds dependencies for CLI commands.
// Uses interfaces where possible to enable testing with mocks.
type CommandContext struct {
	// Cfg provides configuration access (interface for testability).
	Cfg ConfigProvider

	// Log provides logging capabilities (interface for testability).
	Log LogWriter

	// Fmt provides output formatting (interface for testability).
	Fmt FormatProvider

	// RecoveryLimiter throttles recover attempts so an interactive or
	// scripted brute-force of a partially entered artifact can't spin
	// the KDF as fast as the machine allows.
	RecoveryLimiter *rate.Limiter
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(
	cfg *config.Config,
	logger *config.Logger,
	formatter *output.Formatter,
) *CommandContext {
	sec := cfg.GetSecurity()
	return &CommandContext{
		Cfg:             cfg,
		Log:             logger,
		Fmt:             formatter,
		RecoveryLimiter: rate.NewLimiter(rate.Limit(sec.RecoveryAttemptRate), sec.RecoveryAttemptBurst),
	}
}
