package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/garagon/yarara/internal/types"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

const lineWidth = 72

// TerminalFormatter prints warnings grouped by pipeline stage, in the
// order they were produced.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, report *types.Report) error {
	if os.Getenv("NO_COLOR") != "" {
		f.NoColor = true
	}

	f.printHeader(w, report)

	if report.Clean() {
		fmt.Fprintf(w, "\n  %s No issues found.\n", f.color(cyan, "✔"))
	} else {
		for _, src := range sourceOrder {
			filtered := filterBySource(report.Warnings, src)
			if len(filtered) > 0 {
				f.printSourceSection(w, src, filtered)
			}
		}
	}

	f.printFooter(w, report)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	displayLen := utf8.RuneCountInString(prefix)
	remaining := max(lineWidth-displayLen, 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, report *types.Report) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "YARARA ANALYSIS"))

	parts := []string{}
	if report.FilePath != "" {
		parts = append(parts, fmt.Sprintf("Target: %s", report.FilePath))
	}
	parts = append(parts, fmt.Sprintf("format: %s", report.Format))
	parts = append(parts, fmt.Sprintf("%d rules", report.RulesLoaded))
	if report.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.2fs", report.Duration.Seconds()))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ·  "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) printSourceSection(w io.Writer, src types.Source, warnings []types.Warning) {
	title := fmt.Sprintf("%s (%d)", sourceTitle(src), len(warnings))
	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, f.sectionHeader(title)))

	for _, warning := range warnings {
		icon := f.severityIcon(warning.Severity)
		line := fmt.Sprintf("%-4s", lineRef(warning))
		fmt.Fprintf(w, "    %s %s %s\n", icon, f.color(cyan, line), warning.Message)
		if f.Verbose {
			fmt.Fprintf(w, "      %s %s\n", f.color(dim, "│"), f.color(dim, string(warning.Source)))
		}
	}
}

func (f *TerminalFormatter) printFooter(w io.Writer, report *types.Report) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))

	counts := report.CountBySeverity()
	parts := []string{fmt.Sprintf("%d warnings", len(report.Warnings))}
	if counts[types.SeverityError] > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", counts[types.SeverityError]))
	}
	if report.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.2fs", report.Duration.Seconds()))
	}

	fmt.Fprintf(w, "  %s\n", strings.Join(parts, " · "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) severityIcon(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return f.color(red+bold, "✖")
	case types.SeverityWarning:
		return f.color(yellow, "▲")
	case types.SeverityInfo:
		return f.color(cyan, "○")
	default:
		return "?"
	}
}
