package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/garagon/yarara/internal/types"
)

// MarkdownFormatter outputs warnings as GitHub-flavored markdown,
// designed for GitHub Actions Job Summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, report *types.Report) error {
	if report.Clean() {
		f.printClean(w, report)
		return nil
	}

	f.printSummary(w, report)
	f.printWarnings(w, report.Warnings)
	f.printFooter(w)
	return nil
}

func (f *MarkdownFormatter) printClean(w io.Writer, report *types.Report) {
	fmt.Fprintf(w, "### :white_check_mark: Yarara Config Audit — No issues found\n\n")
	fmt.Fprintf(w, "> `%s` · format %s · %d rules · %.2fs\n",
		report.FilePath, report.Format, report.RulesLoaded, report.Duration.Seconds())
}

func (f *MarkdownFormatter) printSummary(w io.Writer, report *types.Report) {
	fmt.Fprintf(w, "### :rotating_light: Yarara Config Audit — %d warnings\n\n", len(report.Warnings))
	fmt.Fprintf(w, "> **Target:** `%s` · format %s · %d rules · %.2fs\n\n",
		report.FilePath, report.Format, report.RulesLoaded, report.Duration.Seconds())

	counts := report.CountBySeverity()
	var badges []string
	for _, sev := range []types.Severity{types.SeverityError, types.SeverityWarning, types.SeverityInfo} {
		if c := counts[sev]; c > 0 {
			badges = append(badges, fmt.Sprintf("%s **%d %s**", severityEmoji(sev), c, sev.String()))
		}
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(badges, " · "))
}

func (f *MarkdownFormatter) printWarnings(w io.Writer, warnings []types.Warning) {
	for _, src := range sourceOrder {
		filtered := filterBySource(warnings, src)
		if len(filtered) == 0 {
			continue
		}

		fmt.Fprintf(w, "<details open>\n")
		fmt.Fprintf(w, "<summary><strong>%s (%d)</strong></summary>\n\n", sourceTitle(src), len(filtered))

		fmt.Fprintf(w, "| Severity | Line | Message |\n")
		fmt.Fprintf(w, "|----------|------|---------|\n")
		for _, warning := range filtered {
			fmt.Fprintf(w, "| %s %s | %s | %s |\n",
				severityEmoji(warning.Severity), warning.Severity.String(),
				lineRef(warning), escapeMarkdown(truncate(warning.Message, 120)))
		}

		fmt.Fprintf(w, "\n</details>\n\n")
	}
}

func (f *MarkdownFormatter) printFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "*Checked by [Yarara](https://github.com/garagon/yarara) %s*\n", ToolVersion)
}

func severityEmoji(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return ":red_circle:"
	case types.SeverityWarning:
		return ":yellow_circle:"
	case types.SeverityInfo:
		return ":white_circle:"
	default:
		return ":black_circle:"
	}
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
