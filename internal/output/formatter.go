// Package output formats analysis reports for terminal (ANSI), JSON,
// SARIF, Markdown, and HTML output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/garagon/yarara/internal/types"
)

// ToolVersion is the yarara version reported in SARIF and HTML output.
var ToolVersion = "dev"

// Formatter is the interface for outputting analysis reports.
type Formatter interface {
	Format(w io.Writer, report *types.Report) error
}

// ByName returns the formatter for a --format value. Unknown names fall
// back to the terminal formatter.
func ByName(name string, noColor, verbose bool) Formatter {
	switch strings.ToLower(name) {
	case "json":
		return &JSONFormatter{}
	case "sarif":
		return &SARIFFormatter{}
	case "markdown", "md":
		return &MarkdownFormatter{}
	case "html":
		return &HTMLFormatter{}
	default:
		return &TerminalFormatter{NoColor: noColor, Verbose: verbose}
	}
}

// sourceOrder is the fixed pipeline order warnings are emitted in; the
// terminal and markdown formatters group sections the same way.
var sourceOrder = []types.Source{
	types.SourceCommentScan,
	types.SourceParseError,
	types.SourceRuleEngine,
	types.SourceExternalLinter,
	types.SourceSecretScan,
}

func sourceTitle(s types.Source) string {
	switch s {
	case types.SourceCommentScan:
		return "COMMENT SCAN"
	case types.SourceRuleEngine:
		return "RULE ENGINE"
	case types.SourceExternalLinter:
		return "EXTERNAL LINTER"
	case types.SourceSecretScan:
		return "SECRET SCAN"
	case types.SourceParseError:
		return "PARSE ERRORS"
	default:
		return strings.ToUpper(string(s))
	}
}

func filterBySource(warnings []types.Warning, src types.Source) []types.Warning {
	var out []types.Warning
	for _, w := range warnings {
		if w.Source == src {
			out = append(out, w)
		}
	}
	return out
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func lineRef(w types.Warning) string {
	if w.Line > 0 {
		return fmt.Sprintf("L%d", w.Line)
	}
	return "-"
}
