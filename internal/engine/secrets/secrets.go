// Package secrets implements the opt-in credential heuristic: lines that
// pair a secret-ish key with a long token are flagged.
//
// This is a best-effort heuristic by design. Short or obfuscated secrets
// are missed, and long non-secret tokens are false positives; callers
// should treat hits as pointers for a human reviewer, not verdicts.
package secrets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/garagon/yarara/internal/types"
)

// A secret-ish key, an optional separator, then 20+ token characters.
var secretRe = regexp.MustCompile(`(?i)(api_key|apikey|password|secret)\s*[:=]\s*["']?[A-Za-z0-9_-]{20,}["']?`)

// Scan flags lines that look like embedded credentials. Line numbers are
// 1-based.
func Scan(lines []string) []types.Warning {
	var warnings []types.Warning
	for i, line := range lines {
		if secretRe.MatchString(line) {
			warnings = append(warnings, types.Warning{
				Message:  fmt.Sprintf("potential secret on line %d: %s", i+1, strings.TrimSpace(line)),
				Line:     i + 1,
				Severity: types.SeverityWarning,
				Source:   types.SourceSecretScan,
			})
		}
	}
	return warnings
}
