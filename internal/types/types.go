// Package types defines the shared data structures (Warning, Severity,
// Source, Report) used across the analysis, engine, and output packages
// to prevent import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Severity represents the severity level of a warning.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a string to a Severity level.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return SeverityError, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "INFO":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity: %q", s)
	}
}

// MarshalJSON serializes a Severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a Severity from its string form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sev, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// Source identifies which stage of the pipeline produced a warning.
type Source string

const (
	SourceCommentScan    Source = "comment-scan"
	SourceRuleEngine     Source = "rule-engine"
	SourceExternalLinter Source = "external-linter"
	SourceSecretScan     Source = "secret-scan"
	SourceParseError     Source = "parse-error"
)

// Warning represents a single reported problem. Warnings are immutable
// values: created by exactly one producer, appended to a Report, never
// mutated afterwards.
type Warning struct {
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"` // 1-based; 0 means no line association
	Severity Severity `json:"severity"`
	Source   Source   `json:"source"`
}

// Report holds the complete result of analyzing one file. Warnings keep
// insertion order: comment-scan first, then rule-engine/parse findings,
// then external-linter, then secret-scan.
type Report struct {
	FilePath    string        `json:"file_path"`
	Format      string        `json:"format"`
	Warnings    []Warning     `json:"warnings"`
	RulesLoaded int           `json:"rules_loaded"`
	Duration    time.Duration `json:"-"`
}

// Clean reports whether the analysis produced no warnings. An empty
// warning list means "no issues found", which is distinct from a failed run.
func (r *Report) Clean() bool {
	return len(r.Warnings) == 0
}

// CountBySeverity tallies warnings per severity level.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := map[Severity]int{}
	for _, w := range r.Warnings {
		counts[w.Severity]++
	}
	return counts
}

// MaxSeverity returns the highest severity present and whether the report
// contains any warnings at all.
func (r *Report) MaxSeverity() (Severity, bool) {
	if len(r.Warnings) == 0 {
		return SeverityInfo, false
	}
	maxSev := SeverityInfo
	for _, w := range r.Warnings {
		if w.Severity > maxSev {
			maxSev = w.Severity
		}
	}
	return maxSev, true
}

// MarshalJSON implements custom JSON marshaling so Duration serializes as milliseconds.
func (r Report) MarshalJSON() ([]byte, error) {
	type Alias Report
	return json.Marshal(struct {
		Alias
		DurationMS int64 `json:"duration_ms"`
	}{
		Alias:      Alias(r),
		DurationMS: r.Duration.Milliseconds(),
	})
}
