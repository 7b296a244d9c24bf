// Package comments implements the line scanner for marker and staleness
// comments. It is a pure per-line classifier: no state carries across
// lines and no parsed structure is consulted.
package comments

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/garagon/yarara/internal/types"
)

// The two pattern classes are independent and both evaluated for every
// line, so one line can yield up to two warnings.
var (
	// Marker tokens are case-sensitive: "todo" in prose is not a marker.
	markerRe = regexp.MustCompile(`(#|//|/\*)\s*(TODO|FIXME|XXX)`)
	// Staleness words are matched case-insensitively.
	staleRe = regexp.MustCompile(`(?i)(#|//|/\*)\s*(deprecated|obsolete|old)`)
)

// Scan classifies each line against the marker and staleness patterns.
// Line numbers are 1-based. An empty input produces an empty result.
func Scan(lines []string) []types.Warning {
	var warnings []types.Warning
	for i, line := range lines {
		if markerRe.MatchString(line) {
			warnings = append(warnings, types.Warning{
				Message:  fmt.Sprintf("TODO/FIXME/XXX marker on line %d: %s", i+1, strings.TrimSpace(line)),
				Line:     i + 1,
				Severity: types.SeverityWarning,
				Source:   types.SourceCommentScan,
			})
		}
		if staleRe.MatchString(line) {
			warnings = append(warnings, types.Warning{
				Message:  fmt.Sprintf("possibly outdated comment on line %d: %s", i+1, strings.TrimSpace(line)),
				Line:     i + 1,
				Severity: types.SeverityWarning,
				Source:   types.SourceCommentScan,
			})
		}
	}
	return warnings
}
