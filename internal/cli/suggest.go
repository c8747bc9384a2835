package cli

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// knownConfigPaths lists every dot-path getConfigValue/setConfigValue
// accept, used to suggest a correction when a user mistypes one.
//
//nolint:gochecknoglobals // static reference table, not mutated
var knownConfigPaths = []string{
	"home",
	"vault.raw_salt_len", "vault.raw_brainkey_len", "vault.default_threshold", "vault.default_shares",
	"vault.baseline_memory_mib", "vault.target_duration",
	"security.memory_lock", "security.entropy_wait_timeout", "security.recovery_attempt_burst",
	"security.recovery_attempt_rate_per_sec",
	"output.default_format", "output.verbose", "output.color",
	"logging.level", "logging.file",
}

// suggestConfigPath finds the known config path closest to path by
// edit distance, returning "" if nothing is within a plausible typo
// distance.
func suggestConfigPath(path string) string {
	best := ""
	bestDist := -1
	for _, known := range knownConfigPaths {
		d := levenshtein.ComputeDistance(path, known)
		if bestDist == -1 || d < bestDist {
			best, bestDist = known, d
		}
	}

	const maxTypoDistance = 4
	if bestDist < 0 || bestDist > maxTypoDistance {
		return ""
	}
	return best
}

// configSuggestion formats a "did you mean" hint for path, or a plain
// usage hint if no close match exists.
func configSuggestion(path string) string {
	if s := suggestConfigPath(path); s != "" {
		return fmt.Sprintf("did you mean '%s'? run 'sbk config show' to see all keys", s)
	}
	return "run 'sbk config show' to see all configuration keys"
}
